package calendar

import (
	"fmt"
	"time"
)

var weekdayNames = [...]string{"", "周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// WeekdayName returns the short zh_CN name for a Monday=1 .. Sunday=7 ordinal.
// Out-of-range ordinals are returned as a plain number.
func WeekdayName(ordinal int) string {
	if ordinal < 1 || ordinal > 7 {
		return fmt.Sprintf("%d", ordinal)
	}
	return weekdayNames[ordinal]
}

// FormatDate formats t as "2006年1月2日".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}

// FormatWeekday formats t's weekday as "周一".."周日".
func FormatWeekday(t time.Time) string {
	return WeekdayName(Weekday(t))
}

// FormatMonth formats t as "2006年1月".
func FormatMonth(t time.Time) string {
	return fmt.Sprintf("%d年%d月", t.Year(), int(t.Month()))
}

// FormatWeekNumber formats t's ISO week as "2025年第3周". The year is the ISO
// year, which differs from the calendar year around New Year.
func FormatWeekNumber(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d年第%d周", year, week)
}
