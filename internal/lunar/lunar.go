// Package lunar provides an approximate Gregorian-to-lunar date
// conversion for calendar display. The arithmetic is a deliberate
// approximation; swapping in an astronomical table would change labels
// but not the API.
package lunar

import (
	"math"
	"strconv"
	"time"
)

// Date is an approximate lunar date with display labels.
type Date struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	MonthName   string `json:"monthName"`
	DayName     string `json:"dayName"`
	IsLeapMonth bool   `json:"isLeapMonth"`
}

// Holiday is a lunar-calendar observance mapped onto a Gregorian date.
type Holiday struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	LunarDate   string `json:"lunarDate"`
	Description string `json:"description"`
}

var monthNames = []string{
	"正月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "十一月", "十二月",
}

var dayNames = []string{
	"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
	"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
}

// FromTime converts a Gregorian date to its approximate lunar
// counterpart. A lunar year is treated as 355 days of 29.5-day months.
func FromTime(t time.Time) Date {
	rem := float64(t.YearDay() % 355)
	month := int(rem / 29.5)
	day := int(math.Mod(rem, 29.5))

	monthName := "正月"
	if month >= 0 && month < len(monthNames) {
		monthName = monthNames[month]
	}
	dayName := "初一"
	if day >= 0 && day < len(dayNames) {
		dayName = dayNames[day]
	}

	return Date{
		Year:        t.Year(),
		Month:       month + 1,
		Day:         day + 1,
		MonthName:   monthName,
		DayName:     dayName,
		IsLeapMonth: false,
	}
}

// Parse converts a YYYY-MM-DD string. Unparseable input yields ok=false.
func Parse(s string) (Date, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, false
	}
	return FromTime(t), true
}

// Holidays returns the major lunar observances for a year, with
// approximate Gregorian dates.
func Holidays(year int) []Holiday {
	yearStr := strconv.Itoa(year)
	return []Holiday{
		{
			Name:        "春节",
			Date:        yearStr + "-02-01",
			LunarDate:   "正月初一",
			Description: "农历新年",
		},
		{
			Name:        "元宵节",
			Date:        yearStr + "-02-15",
			LunarDate:   "正月十五",
			Description: "正月十五元宵节",
		},
		{
			Name:        "中秋节",
			Date:        yearStr + "-09-15",
			LunarDate:   "八月十五",
			Description: "八月十五中秋节",
		},
	}
}
