package task

import (
	"encoding/json"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccurrenceKey(t *testing.T) {
	key := OccurrenceKey("task-1", "2025-01-15")
	assert.Equal(t, "task-1_2025-01-15", key)
	assert.Equal(t, "2025-01-15", KeyDate(key))

	// Task ids may themselves contain underscores; the date is always the
	// last segment.
	assert.Equal(t, "2025-01-15", KeyDate("a_b_2025-01-15"))
	assert.Equal(t, "plain", KeyDate("plain"))
}

func TestRuleDefaults(t *testing.T) {
	r := &Rule{}
	assert.Equal(t, 1, r.EffectiveInterval())
	assert.Equal(t, DefaultIntervalPattern, r.Pattern())

	r.Interval = 3
	r.IntervalPattern = []int{0, 10}
	assert.Equal(t, 3, r.EffectiveInterval())
	assert.Equal(t, []int{0, 10}, r.Pattern())
}

func TestRecurring(t *testing.T) {
	tk := &Task{ID: "a"}
	assert.False(t, tk.Recurring())

	tk.Repeat = &Rule{Enabled: false, Type: KindDaily}
	assert.False(t, tk.Recurring())

	tk.Repeat.Enabled = true
	assert.True(t, tk.Recurring())

	tk.Repeat.Type = ""
	assert.False(t, tk.Recurring())
}

func TestOverrideUnmarshalNullDate(t *testing.T) {
	var o Override
	require.NoError(t, json.Unmarshal([]byte(`{"date": null, "note": "kept"}`), &o))
	assert.True(t, o.Skip)
	assert.True(t, o.Date.IsAbsent())
	assert.Equal(t, "kept", o.NoteOr(""))
}

func TestOverrideUnmarshalAbsentVsPresent(t *testing.T) {
	var o Override
	require.NoError(t, json.Unmarshal([]byte(`{"date": "2025-02-01", "time": "09:30"}`), &o))
	assert.False(t, o.Skip)
	assert.Equal(t, "2025-02-01", o.DateOr("2025-01-15"))
	assert.Equal(t, "09:30", o.TimeOr("08:00"))
	// Fields absent from the record inherit.
	assert.Equal(t, "fallback", o.NoteOr("fallback"))
	assert.Equal(t, PriorityHigh, o.PriorityOr(PriorityHigh))
}

func TestOverrideMarshalRoundTrip(t *testing.T) {
	o := Override{
		Date:     mo.Some("2025-02-01"),
		Priority: mo.Some(PriorityLow),
	}
	b, err := json.Marshal(o)
	require.NoError(t, err)

	var back Override
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, o, back)

	// Suppression survives the round trip as an explicit null.
	b, err = json.Marshal(Override{Skip: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date": null}`, string(b))
}

func TestRuleLookups(t *testing.T) {
	r := &Rule{
		ExcludeDates:   []string{"2025-01-04"},
		CompletedDates: []string{"2025-01-07"},
	}
	assert.True(t, r.Excluded("2025-01-04"))
	assert.False(t, r.Excluded("2025-01-05"))
	assert.True(t, r.CompletedOn("2025-01-07"))
	assert.False(t, r.CompletedOn("2025-01-04"))
}
