// Package types defines the entity contract and the concrete record kinds
// managed by the taskboard core: Task, Project, Category, Tag, and
// Notification. Every entity carries a repository-assigned integer id,
// creation and update timestamps, a Validate method that reports pass/fail
// without raising, and a Serialize method producing a flat field map.
package types
