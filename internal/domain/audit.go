package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// Audit is the lifecycle trait shared by every mutable entity: creation,
// last-update and soft-delete timestamps plus the user ids that caused them.
type Audit struct {
	CreatedAt time.Time `json:"created_at"`
	CreatedBy null.Int  `json:"created_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy null.Int  `json:"updated_by,omitempty"`
	DeletedAt null.Time `json:"deleted_at,omitempty"`
	DeletedBy null.Int  `json:"deleted_by,omitempty"`
}

// MarkCreated stamps creation metadata. CreatedAt is only set when absent so
// re-saving an entity never rewrites its origin.
func (a *Audit) MarkCreated(now time.Time, by null.Int) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
		a.CreatedBy = by
	}
	a.UpdatedAt = now
	a.UpdatedBy = by
}

// Touch refreshes the update metadata on modification.
func (a *Audit) Touch(now time.Time, by null.Int) {
	a.UpdatedAt = now
	a.UpdatedBy = by
}

// MarkDeleted soft-deletes the entity. The row survives for auditing but
// every read path must filter it out.
func (a *Audit) MarkDeleted(now time.Time, by null.Int) {
	a.DeletedAt = null.TimeFrom(now)
	a.DeletedBy = by
	a.UpdatedAt = now
	a.UpdatedBy = by
}

// Restore clears the soft-delete markers.
func (a *Audit) Restore(now time.Time, by null.Int) {
	a.DeletedAt = null.Time{}
	a.DeletedBy = null.Int{}
	a.UpdatedAt = now
	a.UpdatedBy = by
}

func (a *Audit) IsDeleted() bool {
	return a.DeletedAt.Valid
}
