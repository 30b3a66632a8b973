package rent

import (
	"fmt"
	"time"
)

// civilDays 按日历日（忽略时分秒）计算from到to的整天数，to早于from时为负。
func civilDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// DaysOverdue 逾期天数：到期日当天为0，只对overdue账单的展示有意义。
func DaysOverdue(dueDate, now time.Time) int {
	d := civilDays(dueDate, now)
	if d < 0 {
		return 0
	}
	return d
}

// DueInText 到期提示文案
//
// 边界行为固定：到期日当天必须是"Due today"，差一天必须是"Due tomorrow"，
// 不得落入通用的"Due in N days"。
func DueInText(dueDate, now time.Time) string {
	d := civilDays(now, dueDate)
	switch {
	case d < 0:
		return fmt.Sprintf("Overdue by %d days", -d)
	case d == 0:
		return "Due today"
	case d == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", d)
	}
}
