package rent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueInText(t *testing.T) {
	now := time.Date(2025, time.April, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"due today", time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC), "Due today"},
		{"due tomorrow", time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC), "Due tomorrow"},
		{"due in two days", time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC), "Due in 2 days"},
		{"due in five days", time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), "Due in 5 days"},
		{"overdue one day", time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC), "Overdue by 1 days"},
		{"overdue nine days", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), "Overdue by 9 days"},
		{"next month", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), "Due in 21 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueInText(tt.due, now))
		})
	}
}

func TestDueInTextIgnoresTimeOfDay(t *testing.T) {
	// 同一个日历日内的不同时刻不改变文案
	due := time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, time.April, 10, 0, 1, 0, 0, time.UTC)
	lateNight := time.Date(2025, time.April, 10, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "Due tomorrow", DueInText(due, earlyMorning))
	assert.Equal(t, "Due tomorrow", DueInText(due, lateNight))
}

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysOverdue(due, due))
	assert.Equal(t, 0, DaysOverdue(due, time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysOverdue(due, time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 9, DaysOverdue(due, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, DaysOverdue(due, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)))
}
