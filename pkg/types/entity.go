package types

import "time"

// Entity is the contract every record kind implements. Identity is the
// integer id assigned exactly once by the owning repository; two entities
// with the same id are considered identical regardless of other fields.
type Entity interface {
	// EntityID returns the repository-assigned id.
	EntityID() int64

	// Validate reports whether the entity is well-formed. On failure the
	// returned reason is a human-readable message. Validate never panics.
	Validate() (ok bool, reason string)

	// Serialize produces a flat field map: timestamps as RFC 3339 text,
	// enums as their lowercase string tag, absent optionals as explicit
	// nil values, nested collections as ordered slices.
	Serialize() map[string]any
}

// Meta holds the identity and lifecycle fields shared by all entities.
// ID is immutable after construction; UpdatedAt is bumped by every
// state-changing operation.
type Meta struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMeta constructs the shared fields for a new entity. The named fields
// keep id and timestamp from ever being transposed by a caller.
func NewMeta(id int64, now time.Time) Meta {
	return Meta{ID: id, CreatedAt: now, UpdatedAt: now}
}

// EntityID implements Entity.
func (m Meta) EntityID() int64 { return m.ID }

// Touch bumps UpdatedAt to the current time.
func (m *Meta) Touch() { m.UpdatedAt = time.Now() }

// Equal reports identity equality: same id, nothing else. This is an
// explicit simplification of the entity contract.
func Equal(a, b Entity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.EntityID() == b.EntityID()
}

// isoTime renders a timestamp in the serialization contract's RFC 3339 form.
func isoTime(t time.Time) string { return t.Format(time.RFC3339) }

// isoTimePtr renders an optional timestamp, mapping absence to explicit nil.
func isoTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

// int64Ptr maps an optional id to its serialized form, nil when absent.
func int64Ptr(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// strPtr maps an optional string to its serialized form, nil when absent.
func strPtr(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
