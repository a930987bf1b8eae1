package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/model"
	"bnu-planner/internal/semester"
	pkgerrors "bnu-planner/pkg/errors"
)

// 导出格式
const (
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatXLSX = "xlsx"
	FormatICS  = "ics"
)

// CalendarViewSelector 月视图渲染完成后的根元素
const CalendarViewSelector = `#calendar-view[data-ready="true"]`

// Rasterizer 将页面元素渲染为 PNG
type Rasterizer interface {
	Capture(ctx context.Context, url, selector string) ([]byte, error)
}

// ExportOptions 导出参数
type ExportOptions struct {
	BaseURL string        // 本服务对截图器可达的地址，如 http://127.0.0.1:8080
	Timeout time.Duration // 单次截图超时
}

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置文件名与响应头。
// 截图或文档生成失败统一包装为 *errors.ExportError，数据本身不受影响。
type ExportService interface {
	// MonthPDF 渲染月视图并排版为 A4 横向 PDF
	MonthPDF(ctx context.Context, year int, month time.Month) (*bytes.Buffer, string, error)
	// MonthPNG 渲染月视图为 PNG
	MonthPNG(ctx context.Context, year int, month time.Month) (*bytes.Buffer, string, error)
	// SemesterXLSX 学期总览工作簿：按周排列的日历、课程表、备注
	SemesterXLSX(ctx context.Context) (*bytes.Buffer, string, error)
	// CalendarICS 课程（每周重复）与校历事项（全天）导出为 iCalendar
	CalendarICS(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	term    *semester.Term
	store   *PlannerStore
	raster  Rasterizer
	opts    ExportOptions
	metrics *MetricsService
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例；metrics 可为空
func NewExportService(term *semester.Term, store *PlannerStore, raster Rasterizer, opts ExportOptions, metrics *MetricsService, logger *zap.Logger) ExportService {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &exportService{
		term:    term,
		store:   store,
		raster:  raster,
		opts:    opts,
		metrics: metrics,
		logger:  logger,
	}
}

// ═══════════════════════════════════════════════════════════
// 月视图截图
// ═══════════════════════════════════════════════════════════

// MonthViewURL 月视图页面地址
func MonthViewURL(baseURL string, year int, month time.Month) string {
	return fmt.Sprintf("%s/api/v1/view/month/%d/%d", strings.TrimRight(baseURL, "/"), year, int(month))
}

func (s *exportService) captureMonth(ctx context.Context, format string, year int, month time.Month) ([]byte, error) {
	if !s.term.HasMonth(year, month) {
		return nil, ErrMonthOutOfRange
	}
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	png, err := s.raster.Capture(ctx, MonthViewURL(s.opts.BaseURL, year, month), CalendarViewSelector)
	if err != nil {
		return nil, &pkgerrors.ExportError{Format: format, Err: err}
	}
	return png, nil
}

func (s *exportService) MonthPDF(ctx context.Context, year int, month time.Month) (buf *bytes.Buffer, filename string, err error) {
	defer s.observe(FormatPDF, time.Now(), &err)

	png, err := s.captureMonth(ctx, FormatPDF, year, month)
	if err != nil {
		return nil, "", err
	}
	buf, err = AssemblePDF(png)
	if err != nil {
		return nil, "", &pkgerrors.ExportError{Format: FormatPDF, Err: err}
	}
	return buf, fmt.Sprintf("BNU校历_%d年%d月.pdf", year, int(month)), nil
}

func (s *exportService) MonthPNG(ctx context.Context, year int, month time.Month) (buf *bytes.Buffer, filename string, err error) {
	defer s.observe(FormatPNG, time.Now(), &err)

	png, err := s.captureMonth(ctx, FormatPNG, year, month)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewBuffer(png), fmt.Sprintf("BNU校历_%d年%d月.png", year, int(month)), nil
}

// AssemblePDF 将截图放入 A4 横向页面：宽度铺满，
// 图片比页面矮时垂直居中，否则从页面顶部开始放置。
func AssemblePDF(png []byte) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader("calendar", opt, bytes.NewReader(png))
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("读取截图失败: %w", err)
	}
	if info == nil || info.Width() <= 0 {
		return nil, fmt.Errorf("截图尺寸无效")
	}

	imgW := pageW
	imgH := info.Height() * imgW / info.Width()
	y := 0.0
	if imgH <= pageH {
		y = (pageH - imgH) / 2
	}
	pdf.ImageOptions("calendar", 0, y, imgW, imgH, false, opt, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("生成 PDF 失败: %w", err)
	}
	return buf, nil
}

// ═══════════════════════════════════════════════════════════
// SemesterXLSX — 学期总览工作簿
// ═══════════════════════════════════════════════════════════
//
// Sheet "学期总览"：每周一行，列为 周次 | 日期 | 周一 … 周日，
//   单元格内容为 日期、校历事项、当日课程、备注
// Sheet "课程"：课程清单
// Sheet "备注"：按日期排序的备注

func (s *exportService) SemesterXLSX(_ context.Context) (buf *bytes.Buffer, filename string, err error) {
	defer s.observe(FormatXLSX, time.Now(), &err)

	cal := s.term.Calendar()
	snap := s.store.Snapshot()
	events := s.term.Events()

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1d4ed8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	// ── 学期总览 ──
	overview := "学期总览"
	idx, _ := f.NewSheet(overview)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(overview, "A", "A", 8)
	f.SetColWidth(overview, "B", "B", 24)
	f.SetColWidth(overview, "C", "I", 22)

	f.SetCellValue(overview, "A1", fmt.Sprintf("%s %s", s.term.School(), s.term.Name()))
	f.MergeCell(overview, "A1", "I1")
	f.SetCellStyle(overview, "A1", "I1", headerStyle)

	f.SetCellValue(overview, "A2", "周次")
	f.SetCellValue(overview, "B2", "日期")
	for i := 0; i < 7; i++ {
		f.SetCellValue(overview, cell(colName(2+i), 2), "周"+calendar.ISOWeekday(i+1).Label())
	}
	f.SetCellStyle(overview, "A2", "I2", headerStyle)

	for week := 1; week <= cal.MaxWeeks(); week++ {
		row := week + 2
		dates := cal.DatesInWeek(week)
		f.SetCellValue(overview, cell("A", row), fmt.Sprintf("第%d周", week))
		f.SetCellValue(overview, cell("B", row), fmt.Sprintf("%s ~ %s", calendar.DateKeyOf(dates[0]), calendar.DateKeyOf(dates[6])))
		for i, d := range dates {
			key := calendar.DateKeyOf(d)
			lines := []string{fmt.Sprintf("%d/%d", int(d.Month()), d.Day())}
			for _, e := range EventsOn(key, events) {
				lines = append(lines, "【"+e.Title+"】")
			}
			for _, c := range CoursesActiveOn(week, true, calendar.ISOWeekday(i+1), snap.Courses) {
				lines = append(lines, courseLabel(c))
			}
			if note := snap.Notes[key]; note != "" {
				lines = append(lines, "备注："+note)
			}
			f.SetCellValue(overview, cell(colName(2+i), row), strings.Join(lines, "\n"))
		}
	}
	lastRow := cal.MaxWeeks() + 2
	f.SetCellStyle(overview, "A3", cell("I", lastRow), cellStyle)

	// ── 课程 ──
	courseSheet := "课程"
	f.NewSheet(courseSheet)
	f.SetColWidth(courseSheet, "A", "A", 24)
	f.SetColWidth(courseSheet, "B", "E", 16)
	for i, h := range []string{"课程名称", "上课日", "周次", "地点", "颜色"} {
		f.SetCellValue(courseSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(courseSheet, "A1", "E1", headerStyle)
	for i, c := range snap.Courses {
		row := i + 2
		days := make([]string, 0, len(c.Weekdays))
		for _, d := range c.Weekdays {
			days = append(days, "周"+calendar.ISOWeekday(d).Label())
		}
		f.SetCellValue(courseSheet, cell("A", row), c.Name)
		f.SetCellValue(courseSheet, cell("B", row), strings.Join(days, "、"))
		f.SetCellValue(courseSheet, cell("C", row), fmt.Sprintf("%d-%d周", c.StartWeek, c.EndWeek))
		f.SetCellValue(courseSheet, cell("D", row), c.Location)
		f.SetCellValue(courseSheet, cell("E", row), c.Color)
	}

	// ── 备注 ──
	noteSheet := "备注"
	f.NewSheet(noteSheet)
	f.SetColWidth(noteSheet, "A", "A", 14)
	f.SetColWidth(noteSheet, "B", "B", 60)
	f.SetCellValue(noteSheet, "A1", "日期")
	f.SetCellValue(noteSheet, "B1", "备注")
	f.SetCellStyle(noteSheet, "A1", "B1", headerStyle)
	keys := make([]string, 0, len(snap.Notes))
	for k := range snap.Notes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		f.SetCellValue(noteSheet, cell("A", i+2), k)
		f.SetCellValue(noteSheet, cell("B", i+2), snap.Notes[k])
	}

	buf = new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", &pkgerrors.ExportError{Format: FormatXLSX, Err: err}
	}
	return buf, fmt.Sprintf("BNU校历_%s.xlsx", s.term.Name()), nil
}

// ═══════════════════════════════════════════════════════════
// CalendarICS — iCalendar 导出
// ═══════════════════════════════════════════════════════════

func (s *exportService) CalendarICS(_ context.Context) (buf *bytes.Buffer, filename string, err error) {
	defer s.observe(FormatICS, time.Now(), &err)

	sem := s.term.Calendar()
	now := time.Now()

	out := ics.NewCalendar()
	out.SetMethod(ics.MethodPublish)
	out.SetProductId("-//bnu-planner//CN")
	out.SetXWRCalName(s.term.Name())

	for _, e := range s.term.Events() {
		date, perr := calendar.ParseDateKey(e.Date)
		if perr != nil {
			continue
		}
		uid := uuid.NewSHA1(uuid.NameSpaceURL, []byte("bnu-planner/event/"+e.Date+"/"+e.Title))
		ev := out.AddEvent(uid.String())
		ev.SetDtStampTime(now)
		ev.SetSummary(e.Title)
		ev.SetAllDayStartAt(date)
		ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
		ev.AddProperty(ics.ComponentPropertyCategories, string(e.Category))
	}

	for _, c := range s.store.Courses() {
		occ := CourseOccurrences(c, sem)
		if len(occ) == 0 {
			continue
		}
		rule, rerr := courseRule(c, sem)
		if rerr != nil {
			continue
		}
		ev := out.AddEvent(c.ID + "@bnu-planner")
		ev.SetDtStampTime(now)
		ev.SetSummary(c.Name)
		ev.SetAllDayStartAt(occ[0])
		ev.SetAllDayEndAt(occ[0].AddDate(0, 0, 1))
		ev.AddRrule(rule.OrigOptions.RRuleString())
		if c.Location != "" {
			ev.SetLocation(c.Location)
		}
	}

	buf = bytes.NewBufferString(out.Serialize())
	return buf, fmt.Sprintf("BNU校历_%s.ics", s.term.Name()), nil
}

// ── 辅助函数 ──

func (s *exportService) observe(format string, start time.Time, err *error) {
	s.metrics.ObserveExport(format, *err, time.Since(start))
	if *err != nil && pkgerrors.IsExport(*err) {
		s.logger.Error("导出失败", zap.String("format", format), zap.Error(*err))
	}
}

func courseLabel(c model.Course) string {
	if c.Location == "" {
		return c.Name
	}
	return fmt.Sprintf("%s @%s", c.Name, c.Location)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
