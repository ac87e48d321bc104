package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayName(t *testing.T) {
	// Weekday extraction uses the Sunday=1..Saturday=7 convention
	assert.Equal(t, "Sunday", WeekdayName(1))
	assert.Equal(t, "Wednesday", WeekdayName(4))
	assert.Equal(t, "Saturday", WeekdayName(7))
}

func TestWeekdayName_OutOfRange(t *testing.T) {
	assert.Equal(t, "Day 0", WeekdayName(0))
	assert.Equal(t, "Day 8", WeekdayName(8))
	assert.Equal(t, "Day -1", WeekdayName(-1))
}
