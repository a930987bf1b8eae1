package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSemester = NewSemester(Date(2026, time.March, 2), 18)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2026, time.March))
	assert.Equal(t, 30, DaysInMonth(2026, time.April))
	assert.Equal(t, 28, DaysInMonth(2026, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 31, DaysInMonth(2026, time.December))
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	assert.Equal(t, time.Sunday, FirstWeekdayOfMonth(2026, time.March))
	assert.Equal(t, time.Wednesday, FirstWeekdayOfMonth(2026, time.April))
}

func TestDateKey_ZeroPadded(t *testing.T) {
	assert.Equal(t, "2026-03-02", DateKey(2026, time.March, 2))
	assert.Equal(t, "2026-12-31", DateKey(2026, time.December, 31))
}

func TestDateKeyOf_UsesLocalCalendarFields(t *testing.T) {
	// 东八区 2026-03-02 00:30 换算成 UTC 是前一天，日期键必须仍是当地日期
	shanghai := time.FixedZone("CST", 8*3600)
	late := time.Date(2026, time.March, 2, 0, 30, 0, 0, shanghai)
	assert.Equal(t, "2026-03-02", DateKeyOf(late))
	assert.Equal(t, "2026-03-01", DateKeyOf(late.UTC()))
}

func TestParseDateKey(t *testing.T) {
	d, err := ParseDateKey("2026-04-04")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-04", DateKeyOf(d))

	for _, bad := range []string{"", "2026-4-4", "2026/04/04", "2026-02-30", "abcd-ef-gh"} {
		_, err := ParseDateKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestISOWeekdayConversion(t *testing.T) {
	cases := []struct {
		native time.Weekday
		iso    ISOWeekday
	}{
		{time.Sunday, Sunday},
		{time.Monday, Monday},
		{time.Tuesday, Tuesday},
		{time.Wednesday, Wednesday},
		{time.Thursday, Thursday},
		{time.Friday, Friday},
		{time.Saturday, Saturday},
	}
	for _, c := range cases {
		assert.Equal(t, c.iso, ToISOWeekday(c.native), "native %d", c.native)
		assert.Equal(t, c.native, c.iso.Weekday(), "iso %d", c.iso)
	}
	assert.Equal(t, ISOWeekday(7), Sunday)
	assert.Equal(t, time.Weekday(0), Sunday.Weekday())
	assert.False(t, ISOWeekday(0).Valid())
	assert.False(t, ISOWeekday(8).Valid())
	assert.Equal(t, "日", Sunday.Label())
	assert.Equal(t, "一", Monday.Label())
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(Date(2026, time.April, 4)))
	assert.True(t, IsWeekend(Date(2026, time.April, 5)))
	assert.False(t, IsWeekend(Date(2026, time.April, 6)))
}

func TestWeekNumber_Scenario(t *testing.T) {
	cases := []struct {
		date time.Time
		week int
		ok   bool
	}{
		{Date(2026, time.March, 2), 1, true},
		{Date(2026, time.March, 8), 1, true},
		{Date(2026, time.March, 9), 2, true},
		{Date(2026, time.April, 6), 6, true},
		{Date(2026, time.February, 28), 0, false},
		{Date(2026, time.March, 1), 0, false},
	}
	for _, c := range cases {
		week, ok := testSemester.WeekNumber(c.date)
		assert.Equal(t, c.ok, ok, DateKeyOf(c.date))
		assert.Equal(t, c.week, week, DateKeyOf(c.date))
	}
}

func TestWeekNumber_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, time.March, 8, 23, 59, 59, 0, time.Local)
	week, ok := testSemester.WeekNumber(late)
	require.True(t, ok)
	assert.Equal(t, 1, week)

	justBefore := time.Date(2026, time.March, 1, 23, 59, 59, 0, time.Local)
	_, ok = testSemester.WeekNumber(justBefore)
	assert.False(t, ok)
}

func TestWeekNumber_BeforeAnchorAlwaysNone(t *testing.T) {
	for i := 1; i <= 400; i++ {
		d := testSemester.Anchor().AddDate(0, 0, -i)
		_, ok := testSemester.WeekNumber(d)
		assert.False(t, ok, DateKeyOf(d))
	}
}

func TestDatesInWeek_RoundTrip(t *testing.T) {
	for week := 1; week <= 30; week++ {
		dates := testSemester.DatesInWeek(week)
		got, ok := testSemester.WeekNumber(dates[0])
		require.True(t, ok)
		assert.Equal(t, week, got)
		assert.Equal(t, time.Monday, dates[0].Weekday())
		for i := 1; i < len(dates); i++ {
			assert.Equal(t, 1, daysBetween(dates[i-1], dates[i]), "week %d day %d", week, i)
			w, _ := testSemester.WeekNumber(dates[i])
			assert.Equal(t, week, w)
		}
		assert.Equal(t, time.Sunday, dates[6].Weekday())
	}
}

func TestSemester_LastDayAndRange(t *testing.T) {
	assert.Equal(t, "2026-07-05", DateKeyOf(testSemester.LastDay()))
	assert.True(t, testSemester.InRange(1))
	assert.True(t, testSemester.InRange(18))
	assert.False(t, testSemester.InRange(0))
	assert.False(t, testSemester.InRange(19))
}

func TestMonthGrid_March2026(t *testing.T) {
	rows := MonthGrid(2026, time.March, testSemester)
	require.Len(t, rows, 6)

	// 3 月 1 日是周日，首行前 6 格为空
	first := rows[0]
	for i := 0; i < 6; i++ {
		assert.True(t, first.Cells[i].Blank())
	}
	assert.Equal(t, 1, first.Cells[6].Day)
	assert.False(t, first.HasWeek, "3 月 1 日早于开学，不应有周次")

	second := rows[1]
	assert.Equal(t, 2, second.Cells[0].Day)
	assert.True(t, second.HasWeek)
	assert.Equal(t, 1, second.Week)

	last := rows[5]
	assert.Equal(t, 30, last.Cells[0].Day)
	assert.Equal(t, 31, last.Cells[1].Day)
	assert.True(t, last.Cells[2].Blank())
	assert.Equal(t, 5, last.Week)
}

func TestMonthGrid_CellsMatchISOWeekday(t *testing.T) {
	for _, m := range []time.Month{time.March, time.April, time.May, time.June} {
		for _, row := range MonthGrid(2026, m, testSemester) {
			for i, c := range row.Cells {
				if c.Blank() {
					continue
				}
				assert.Equal(t, ISOWeekday(i+1), ISOWeekdayOf(c.Date), DateKeyOf(c.Date))
			}
		}
	}
}
