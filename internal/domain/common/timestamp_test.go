package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-03-05T10:20:30Z"`:      time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		`"2024-03-05T10:20:30"`:       time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		`"2024-03-05T10:20:30.123"`:   time.Date(2024, 3, 5, 10, 20, 30, 123000000, time.UTC),
		`"2024-03-05"`:                time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		`"2024-03-05T10:20:30-03:00"`: time.Date(2024, 3, 5, 13, 20, 30, 0, time.UTC),
	}
	for raw, want := range cases {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
		require.True(t, want.Equal(ts.Time), raw)
	}

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	require.True(t, ts.IsZero())
	require.Equal(t, "-", ts.Display())

	require.Error(t, json.Unmarshal([]byte(`"ayer"`), &ts))
}
