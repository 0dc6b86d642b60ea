package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want string
	}{
		{"time from postgres", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "2024-03-04"},
		{"plain text", "2024-03-04", "2024-03-04"},
		{"text with time part", "2024-03-04 00:00:00+00:00", "2024-03-04"},
		{"bytes", []byte("2024-12-31"), "2024-12-31"},
		{"null", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDateScanRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, d.Scan("04/03"))
	assert.Error(t, d.Scan(42))
}

func TestDateValueAndJSON(t *testing.T) {
	d, err := ParseDate("2024-03-04")
	require.NoError(t, err)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", v)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-04"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d.Time))

	var zero Date
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
