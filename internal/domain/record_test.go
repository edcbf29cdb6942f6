package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2011, 8, 29, 11, 32, 5, 0, time.UTC)

func TestRecord_String(t *testing.T) {
	r := NewRecord("just ate lunch", testTime, 38, -122.5)
	assert.Equal(t, `"just ate lunch" @ (38, -122.5)`, r.String())
}

func TestRecord_HasTimestamp(t *testing.T) {
	assert.True(t, NewRecord("x", testTime, 0, 0).HasTimestamp())
	assert.False(t, NewRecord("x", time.Time{}, 0, 0).HasTimestamp())
}

func TestRecord_JSON(t *testing.T) {
	data, err := json.Marshal(NewRecord("hi", time.Time{}, 1.5, -2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi","location":{"lat":1.5,"lon":-2}}`, string(data))
}
