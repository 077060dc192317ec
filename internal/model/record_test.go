package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	r := Record{Date: "2024-01-02", Time: "09:00", Description: "Meeting"}
	assert.Equal(t, "Date: 2024-01-02, Time: 09:00, Description: Meeting", Format(r))
}

func TestMatchesIsExact(t *testing.T) {
	r := Record{Date: "2024-01-02", Time: "09:00", Description: "Meeting"}
	assert.True(t, r.Matches("2024-01-02", "09:00", "Meeting"))

	// no normalization of any field
	assert.False(t, r.Matches("2024-01-02", "09:00", "meeting"))
	assert.False(t, r.Matches("2024-1-2", "09:00", "Meeting"))
	assert.False(t, r.Matches("2024-01-02", "9:00", "Meeting"))
}
