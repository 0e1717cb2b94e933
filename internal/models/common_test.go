// internal/models/common_test.go
package models

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
)

func TestTimeRoundTrip(t *testing.T) {
	original := NewTime(time.Date(2026, 8, 30, 12, 0, 0, 123456789, time.UTC))

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-30T12:00:00.123456789Z"`, string(raw))

	var decoded Time
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Equal(original.Time))
}

func TestTimeAcceptsRFC3339Variants(t *testing.T) {
	var decoded Time
	require.NoError(t, json.Unmarshal([]byte(`"2026-08-30T12:00:00.5Z"`), &decoded))
	assert.Equal(t, 500*time.Millisecond, time.Duration(decoded.Nanosecond()))

	require.NoError(t, json.Unmarshal([]byte(`"2026-08-30T12:00:00Z"`), &decoded))
	assert.Equal(t, 0, decoded.Nanosecond())

	require.NoError(t, json.Unmarshal([]byte(`""`), &decoded))
	assert.True(t, decoded.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &decoded))
}

// Serialized timestamps sort as strings in the document store, so their
// lexicographic order must match chronological order across fractional
// second boundaries.
func TestTimeLayoutSortsLexicographically(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(950 * time.Millisecond),
		base.Add(5 * time.Millisecond),
		base.Add(time.Second),
		base,
		base.Add(90 * time.Millisecond),
	}

	formatted := make([]string, len(times))
	for i, tm := range times {
		formatted[i] = NewTime(tm).UTC().Format(TimeLayout)
	}

	sort.Strings(formatted)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	for i := range times {
		assert.Equal(t, NewTime(times[i]).UTC().Format(TimeLayout), formatted[i])
	}
}

func TestValidateWrapsValidationSentinel(t *testing.T) {
	product := &Product{}
	err := product.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
