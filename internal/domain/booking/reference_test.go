package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReferencePrefix(t *testing.T) {
	assert.Equal(t, "VS2608", ReferencePrefix(time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "VS2601", ReferencePrefix(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNextReference(t *testing.T) {
	assert.Equal(t, "VS26080001", NextReference("VS2608", ""))
	assert.Equal(t, "VS26080002", NextReference("VS2608", "VS26080001"))
	assert.Equal(t, "VS26080100", NextReference("VS2608", "VS26080099"))
}

func TestNextReferenceMalformedLastStartsOver(t *testing.T) {
	assert.Equal(t, "VS26080001", NextReference("VS2608", "VS2608XYZ9"))
	assert.Equal(t, "VS26080001", NextReference("VS2608", "VS260812345"))
	assert.Equal(t, "VS26080001", NextReference("VS2608", "VS26070042"))
}

func TestStatusBlocking(t *testing.T) {
	assert.True(t, StatusPending.Blocking())
	assert.True(t, StatusConfirmed.Blocking())
	assert.False(t, StatusCancelled.Blocking())
	assert.False(t, StatusCompleted.Blocking())
	assert.False(t, StatusNoShow.Blocking())
}

func TestLifecycleTransitions(t *testing.T) {
	now := time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)

	b := &Booking{Status: StatusPending}
	assert.NoError(t, b.Confirm(now))
	assert.Equal(t, StatusConfirmed, b.Status)

	assert.ErrorIs(t, b.Confirm(now), ErrInvalidState)

	assert.NoError(t, b.Complete(now))
	assert.Equal(t, StatusCompleted, b.Status)
	assert.ErrorIs(t, b.Cancel(now), ErrInvalidState)
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	now := time.Now().UTC()

	pending := &Booking{Status: StatusPending}
	assert.NoError(t, pending.Cancel(now))
	assert.Equal(t, StatusCancelled, pending.Status)

	confirmed := &Booking{Status: StatusConfirmed}
	assert.NoError(t, confirmed.Cancel(now))
	assert.Equal(t, StatusCancelled, confirmed.Status)
}
