package types

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Project statuses.
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

// ProjectStatuses lists all project statuses for enumeration.
var ProjectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusActive,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusArchived,
}

// validProjectStatuses is the set of recognized project status values.
var validProjectStatuses = map[string]bool{
	ProjectStatusPlanning:  true,
	ProjectStatusActive:    true,
	ProjectStatusOnHold:    true,
	ProjectStatusCompleted: true,
	ProjectStatusArchived:  true,
}

// Project groups tasks under an owner and a member list. The owner is
// always implicitly a member and cannot be removed.
//
// TaskCount and CompletedTaskCount are maintained by whoever mutates them;
// the core does not derive them from an actual task collection.
type Project struct {
	Meta
	Name               string  // Required, 1-100 characters.
	Description        string  // Optional, up to 1000 characters.
	OwnerID            int64   // Owning user; 0 when unowned.
	Status             string  // One of the ProjectStatus constants.
	Members            []int64 // Member user ids, owner included.
	TaskCount          int     // Caller-maintained counter.
	CompletedTaskCount int     // Caller-maintained counter.
}

// Validate implements Entity.
func (p *Project) Validate() (bool, string) {
	if strings.TrimSpace(p.Name) == "" {
		return false, "Project name is required"
	}
	if utf8.RuneCountInString(p.Name) > 100 {
		return false, "Project name cannot exceed 100 characters"
	}
	if utf8.RuneCountInString(p.Description) > 1000 {
		return false, "Description cannot exceed 1000 characters"
	}
	if !validProjectStatuses[p.Status] {
		return false, "Status must be one of: " + strings.Join(ProjectStatuses, ", ")
	}
	return true, ""
}

// AddMember adds a user to the member list. Returns false without change
// when the user is already a member.
func (p *Project) AddMember(userID int64) bool {
	for _, m := range p.Members {
		if m == userID {
			return false
		}
	}
	p.Members = append(p.Members, userID)
	p.UpdatedAt = time.Now()
	return true
}

// RemoveMember removes a user from the member list. Returns false without
// change when the user is the owner or not a member.
func (p *Project) RemoveMember(userID int64) bool {
	if userID == p.OwnerID {
		return false
	}
	for i, m := range p.Members {
		if m == userID {
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			p.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Activate sets the status to active.
func (p *Project) Activate() {
	p.Status = ProjectStatusActive
	p.UpdatedAt = time.Now()
}

// Archive sets the status to archived.
func (p *Project) Archive() {
	p.Status = ProjectStatusArchived
	p.UpdatedAt = time.Now()
}

// Progress returns completion as a percentage of the caller-maintained
// counters; zero when no tasks are counted.
func (p *Project) Progress() float64 {
	if p.TaskCount == 0 {
		return 0.0
	}
	return float64(p.CompletedTaskCount) / float64(p.TaskCount) * 100
}

// Serialize implements Entity.
func (p *Project) Serialize() map[string]any {
	members := make([]int64, len(p.Members))
	copy(members, p.Members)
	return map[string]any{
		"id":                   p.ID,
		"name":                 p.Name,
		"description":          p.Description,
		"owner_id":             p.OwnerID,
		"status":               p.Status,
		"members":              members,
		"task_count":           p.TaskCount,
		"completed_task_count": p.CompletedTaskCount,
		"progress":             p.Progress(),
		"created_at":           isoTime(p.CreatedAt),
		"updated_at":           isoTime(p.UpdatedAt),
	}
}
