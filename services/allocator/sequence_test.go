package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyOrderID(t *testing.T) {
	seq := NewInMemorySequence()
	day1 := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	assert.Equal(t, "31082026001", DailyOrderID(day1, seq))
	assert.Equal(t, "31082026002", DailyOrderID(day1, seq))

	// counter restarts per calendar day
	assert.Equal(t, "01092026001", DailyOrderID(day2, seq))
}
