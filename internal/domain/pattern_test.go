package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrencePattern_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern RecurrencePattern
		day     time.Weekday
		want    bool
	}{
		{"daily matches monday", PatternDaily, time.Monday, true},
		{"daily matches sunday", PatternDaily, time.Sunday, true},
		{"listed day matches", "Mon,Wed,Fri", time.Wednesday, true},
		{"unlisted day does not match", "Mon,Wed,Fri", time.Tuesday, false},
		{"single day", "Sat", time.Saturday, true},
		{"spaces tolerated", "Mon, Wed, Fri", time.Friday, true},
		{"empty never matches", "", time.Monday, false},
		{"full weekday set behaves like daily", "Mon,Tue,Wed,Thu,Fri,Sat,Sun", time.Sunday, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Matches(tt.day))
		})
	}
}

func TestRecurrencePattern_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, RecurrencePattern("").Validate())
	require.NoError(t, PatternDaily.Validate())
	require.NoError(t, RecurrencePattern("Mon,Tue").Validate())

	err := RecurrencePattern("Mon,Funday").Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecurrencePattern_Days_IgnoresUnknownTokens(t *testing.T) {
	t.Parallel()

	days := RecurrencePattern("Mon,bogus,Fri").Days()
	assert.True(t, days[time.Monday])
	assert.True(t, days[time.Friday])
	assert.Len(t, days, 2)
}
