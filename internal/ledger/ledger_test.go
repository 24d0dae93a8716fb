package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/domain"
)

func descriptions(l *Ledger) []string {
	var out []string
	for _, e := range l.Entries() {
		out = append(out, e.Description)
	}
	return out
}

func TestAppend(t *testing.T) {
	l := New(nil)

	require.NoError(t, l.Append("Lunch", 30*time.Minute))
	require.NoError(t, l.Append("Review", time.Hour))
	assert.Equal(t, []string{"Lunch", "Review"}, descriptions(l))
	assert.Equal(t, 90*time.Minute, l.Total())

	assert.ErrorIs(t, l.Append("", time.Minute), ErrEmptyDescription)
	assert.Equal(t, 2, l.Len())
}

func TestMerge(t *testing.T) {
	l := New([]domain.TrackedTime{{Description: "A", Duration: time.Minute}})

	require.NoError(t, l.Merge(1, 30*time.Second))
	e, err := l.At(1)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, e.Duration)

	assert.ErrorIs(t, l.Merge(0, time.Second), ErrOutOfRange)
	assert.ErrorIs(t, l.Merge(2, time.Second), ErrOutOfRange)
	assert.ErrorIs(t, l.Merge(-1, time.Second), ErrOutOfRange)
}

func TestMergeOverflowLeavesEntry(t *testing.T) {
	l := New([]domain.TrackedTime{{Description: "A", Duration: math.MaxInt64 - time.Second}})

	assert.ErrorIs(t, l.Merge(1, 2*time.Second), ErrOverflow)
	e, _ := l.At(1)
	assert.Equal(t, time.Duration(math.MaxInt64-time.Second), e.Duration)

	require.NoError(t, l.Merge(1, time.Second))
	e, _ = l.At(1)
	assert.Equal(t, time.Duration(math.MaxInt64), e.Duration)
}

func TestDeleteShiftsPositions(t *testing.T) {
	l := New([]domain.TrackedTime{
		{Description: "A", Duration: time.Minute},
		{Description: "B", Duration: time.Minute},
		{Description: "C", Duration: time.Minute},
	})

	require.NoError(t, l.Delete(2))
	assert.Equal(t, []string{"A", "C"}, descriptions(l))

	require.NoError(t, l.Merge(2, 30*time.Second))
	e, _ := l.At(2)
	assert.Equal(t, "C", e.Description)
	assert.Equal(t, 90*time.Second, e.Duration)

	assert.ErrorIs(t, l.Delete(3), ErrOutOfRange)
	assert.ErrorIs(t, l.Delete(0), ErrOutOfRange)
	assert.Equal(t, 2, l.Len())
}

func TestEntriesIsACopy(t *testing.T) {
	src := []domain.TrackedTime{{Description: "A", Duration: time.Minute}}
	l := New(src)
	src[0].Description = "changed"

	got := l.Entries()
	got[0].Duration = time.Hour

	e, _ := l.At(1)
	assert.Equal(t, "A", e.Description)
	assert.Equal(t, time.Minute, e.Duration)
}
