package calendar

import "time"

// GridCell 月历格子；Day 为 0 表示占位空格
type GridCell struct {
	Day  int
	Date time.Time
}

// Blank 是否占位格
func (c GridCell) Blank() bool { return c.Day == 0 }

// GridRow 月历中的一行（周一开头），Week 取该行第一个有效日期的学期周次
type GridRow struct {
	Week    int
	HasWeek bool
	Cells   [7]GridCell
}

// MonthGrid 生成以周一为首列的月历网格，首尾不足一周的位置用空格补齐
func MonthGrid(year int, month time.Month, sem Semester) []GridRow {
	lead := int(ToISOWeekday(FirstWeekdayOfMonth(year, month))) - 1
	days := DaysInMonth(year, month)

	cells := make([]GridCell, 0, lead+days+6)
	for i := 0; i < lead; i++ {
		cells = append(cells, GridCell{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, GridCell{Day: d, Date: Date(year, month, d)})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, GridCell{})
	}

	rows := make([]GridRow, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		var row GridRow
		copy(row.Cells[:], cells[i:i+7])
		for _, c := range row.Cells {
			if !c.Blank() {
				row.Week, row.HasWeek = sem.WeekNumber(c.Date)
				break
			}
		}
		rows = append(rows, row)
	}
	return rows
}
