package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gopkg.in/guregu/null.v4"
)

func TestAuditMarkCreated(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	actor := null.IntFrom(7)

	var a Audit
	a.MarkCreated(now, actor)

	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, actor, a.CreatedBy)
	assert.Equal(t, now, a.UpdatedAt)
	assert.False(t, a.IsDeleted())

	// a second MarkCreated must not rewrite the origin
	later := now.Add(time.Hour)
	a.MarkCreated(later, null.IntFrom(8))
	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, actor, a.CreatedBy)
	assert.Equal(t, later, a.UpdatedAt)
}

func TestAuditTouch(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	var a Audit
	a.MarkCreated(now, null.IntFrom(1))

	later := now.Add(2 * time.Hour)
	a.Touch(later, null.IntFrom(2))

	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, later, a.UpdatedAt)
	assert.Equal(t, null.IntFrom(2), a.UpdatedBy)
}

func TestAuditDeleteAndRestore(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	var a Audit
	a.MarkCreated(now, null.IntFrom(1))

	deleteTime := now.Add(time.Hour)
	a.MarkDeleted(deleteTime, null.IntFrom(3))
	assert.True(t, a.IsDeleted())
	assert.Equal(t, deleteTime, a.DeletedAt.Time)
	assert.Equal(t, null.IntFrom(3), a.DeletedBy)

	restoreTime := deleteTime.Add(time.Hour)
	a.Restore(restoreTime, null.IntFrom(4))
	assert.False(t, a.IsDeleted())
	assert.False(t, a.DeletedBy.Valid)
	assert.Equal(t, restoreTime, a.UpdatedAt)
}
