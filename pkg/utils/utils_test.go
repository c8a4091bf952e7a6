package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `validate:"required,min=1"`
	Status string `validate:"oneof=open closed"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("Should accept a valid struct", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(sample{Name: "a", Status: "open"}))
	})

	t.Run("Should join field messages", func(t *testing.T) {
		err := ValidateStruct(sample{Status: "other"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
		assert.Contains(t, err.Error(), "status must be one of: open closed")
	})
}

func TestTimestamps(t *testing.T) {
	now := NowUTC()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))

	formatted := FormatTimestamp(now)
	parsed, err := ParseTimestamp(formatted)
	require.NoError(t, err)
	assert.True(t, now.Equal(parsed))

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}
