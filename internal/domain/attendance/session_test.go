package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ast = time.FixedZone("UTC+03:00", 3*60*60)

func TestNewOpenSession_DateInFixedOffset(t *testing.T) {
	// 21:30 UTC on the 14th is 00:30 on the 15th at UTC+3.
	now := time.Date(2024, 3, 14, 21, 30, 0, 0, time.UTC)

	s := NewOpenSession("emp-1", now, ast)

	assert.Equal(t, "emp-1", s.EmployeeID)
	assert.True(t, s.ClockIn.Equal(now))
	assert.True(t, s.IsOpen())
	assert.Nil(t, s.DurationMinutes)
	assert.Equal(t, "2024-03-15", s.Date.Format("2006-01-02"))
}

func TestSessionClose_TruncatesDuration(t *testing.T) {
	in := time.Date(2024, 3, 15, 9, 0, 0, 0, ast)
	out := time.Date(2024, 3, 15, 17, 29, 59, 0, ast)

	closed, err := NewOpenSession("emp-1", in, ast).Close(out)

	require.NoError(t, err)
	require.NotNil(t, closed.ClockOut)
	require.NotNil(t, closed.DurationMinutes)
	assert.Equal(t, 509, *closed.DurationMinutes)
	assert.False(t, closed.IsOpen())
}

func TestSessionClose_KeepsDateAcrossMidnight(t *testing.T) {
	in := time.Date(2024, 3, 15, 22, 0, 0, 0, ast)
	out := time.Date(2024, 3, 16, 6, 0, 0, 0, ast)

	closed, err := NewOpenSession("emp-1", in, ast).Close(out)

	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", closed.Date.Format("2006-01-02"))
	assert.Equal(t, 480, *closed.DurationMinutes)
}

func TestSessionClose_Twice(t *testing.T) {
	in := time.Date(2024, 3, 15, 9, 0, 0, 0, ast)
	closed, err := NewOpenSession("emp-1", in, ast).Close(in.Add(time.Hour))
	require.NoError(t, err)

	_, err = closed.Close(in.Add(2 * time.Hour))

	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)
}

func TestDurationMinutes(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		out  time.Time
		want int
	}{
		{"zero", base, 0},
		{"59 seconds", base.Add(59 * time.Second), 0},
		{"exactly one minute", base.Add(time.Minute), 1},
		{"clock skew is floored not clamped", base.Add(-30 * time.Second), -1},
		{"multi-day", base.Add(50 * time.Hour), 3000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DurationMinutes(base, c.out))
		})
	}
}

func TestNewPersistenceError(t *testing.T) {
	assert.Nil(t, NewPersistenceError("open", nil))
	assert.Equal(t, ErrSessionAlreadyOpen, NewPersistenceError("open", ErrSessionAlreadyOpen))

	cause := errors.New("connection reset")
	err := NewPersistenceError("open", cause)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "open", pe.Op)
	assert.ErrorIs(t, err, cause)
	assert.Same(t, err, NewPersistenceError("close", err))
}
