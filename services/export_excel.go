package services

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

// Default font sizes (points) for the spreadsheet rendering.
const (
	excelBodySize    = 11
	excelTitleSize   = 16
	excelHeadingSize = 13
)

// GenerateBudgetExcel renders a budget document into a single-sheet XLSX
// workbook and returns the file contents. Paragraphs span the full sheet
// width; table columns are mapped onto sheet columns by width.
func GenerateBudgetExcel(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are limited to 31 characters.
	sheetName := doc.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Budget"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	r := &excelRenderer{
		f:      f,
		sheet:  sheetName,
		cols:   sheetColumns(doc),
		styles: map[excelStyleKey]int{},
		row:    1,
	}
	if err := r.setColumnWidths(); err != nil {
		return nil, err
	}

	for _, b := range doc.Blocks {
		var err error
		switch v := b.(type) {
		case *Paragraph:
			err = r.paragraph(v)
		case *Table:
			err = r.table(v)
		}
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetColumns returns the widest table's column count, so that every
// table of the document lines up on the same grid.
func sheetColumns(doc *Document) int {
	cols := 1
	for _, t := range doc.Tables() {
		if n := len(t.ColumnWidths()); n > cols {
			cols = n
		}
	}
	return cols
}

type excelStyleKey struct {
	bold   bool
	size   int
	align  Align
	color  string
	fill   string
	border bool
	wrap   bool
}

type excelRenderer struct {
	f      *excelize.File
	sheet  string
	cols   int
	styles map[excelStyleKey]int
	row    int
}

func (r *excelRenderer) setColumnWidths() error {
	// The first column carries descriptions and gets the most room.
	for i := 1; i <= r.cols; i++ {
		width := 16.0
		if i == 1 {
			width = 40
		}
		name, err := excelize.ColumnNumberToName(i)
		if err != nil {
			return fmt.Errorf("column name %d: %w", i, err)
		}
		if err := r.f.SetColWidth(r.sheet, name, name, width); err != nil {
			return fmt.Errorf("set col width %s: %w", name, err)
		}
	}
	return nil
}

func (r *excelRenderer) style(key excelStyleKey) (int, error) {
	if id, ok := r.styles[key]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Font: &excelize.Font{
			Bold: key.bold,
			Size: float64(key.size),
		},
		Alignment: &excelize.Alignment{
			Horizontal: string(key.align),
			Vertical:   "center",
			WrapText:   key.wrap,
		},
	}
	if key.color != "" {
		style.Font.Color = "#" + key.color
	}
	if key.fill != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#" + key.fill},
			Pattern: 1,
		}
	}
	if key.border {
		style.Border = thinBorders("#" + borderColor)
	}

	id, err := r.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	r.styles[key] = id
	return id, nil
}

func (r *excelRenderer) paragraph(p *Paragraph) error {
	if p.Spacing.Before >= 200 {
		r.row++
	}

	key := paragraphStyleKey(p)
	start, _ := excelize.CoordinatesToCellName(1, r.row)
	end, _ := excelize.CoordinatesToCellName(r.cols, r.row)
	if r.cols > 1 {
		if err := r.f.MergeCell(r.sheet, start, end); err != nil {
			return fmt.Errorf("merge %s:%s: %w", start, end, err)
		}
	}
	if err := r.f.SetCellValue(r.sheet, start, sanitizeExcelCell(p.Text())); err != nil {
		return fmt.Errorf("set %s: %w", start, err)
	}
	id, err := r.style(key)
	if err != nil {
		return err
	}
	if err := r.f.SetCellStyle(r.sheet, start, end, id); err != nil {
		return fmt.Errorf("style %s: %w", start, err)
	}

	r.row++
	return nil
}

func (r *excelRenderer) table(t *Table) error {
	spans := columnSpans(t.ColumnWidths(), r.cols)

	for _, row := range t.Rows {
		lines := 1
		col := 1
		for i, cell := range row.Cells {
			if i >= len(spans) {
				break
			}
			start, _ := excelize.CoordinatesToCellName(col, r.row)
			end, _ := excelize.CoordinatesToCellName(col+spans[i]-1, r.row)
			if spans[i] > 1 {
				if err := r.f.MergeCell(r.sheet, start, end); err != nil {
					return fmt.Errorf("merge %s:%s: %w", start, end, err)
				}
			}

			text := cell.Text()
			if err := r.f.SetCellValue(r.sheet, start, sanitizeExcelCell(text)); err != nil {
				return fmt.Errorf("set %s: %w", start, err)
			}

			key := excelStyleKey{size: excelBodySize, align: AlignLeft}
			if len(cell.Paragraphs) > 0 {
				key = paragraphStyleKey(cell.Paragraphs[0])
			}
			key.fill = cell.Fill
			key.border = cell.Border != nil && cell.Border.Style != BorderNone && !t.Borderless
			if n := len(cell.Paragraphs); n > 1 {
				key.wrap = true
				lines = max(lines, n)
			}
			id, err := r.style(key)
			if err != nil {
				return err
			}
			if err := r.f.SetCellStyle(r.sheet, start, end, id); err != nil {
				return fmt.Errorf("style %s: %w", start, err)
			}
			col += spans[i]
		}
		if lines > 1 {
			if err := r.f.SetRowHeight(r.sheet, r.row, float64(15*lines)); err != nil {
				return fmt.Errorf("row height %d: %w", r.row, err)
			}
		}
		r.row++
	}
	return nil
}

func paragraphStyleKey(p *Paragraph) excelStyleKey {
	key := excelStyleKey{
		bold:  p.AllBold(),
		size:  excelBodySize,
		align: p.Align,
	}
	if key.align == "" {
		key.align = AlignLeft
	}
	switch p.Heading {
	case HeadingTitle:
		key.bold = true
		key.size = excelTitleSize
	case Heading2:
		key.bold = true
		key.size = excelHeadingSize
	}
	if s := p.MaxSize(); s > 0 {
		key.size = s / 2
	}
	if len(p.Runs) == 1 {
		key.color = p.Runs[0].Color
	}
	return key
}

// columnSpans distributes total sheet columns over table columns in
// proportion to their width percentages. Every column gets at least one.
func columnSpans(widths []int, total int) []int {
	spans := make([]int, len(widths))
	if len(widths) == 0 {
		return spans
	}
	if len(widths) >= total {
		for i := range spans {
			spans[i] = 1
		}
		return spans
	}

	used := 0
	for i, w := range widths {
		remaining := len(widths) - i - 1
		if remaining == 0 {
			spans[i] = total - used
			break
		}
		s := int(math.Round(float64(w) * float64(total) / 100))
		s = max(s, 1)
		s = min(s, total-used-remaining)
		spans[i] = s
		used += s
	}
	return spans
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas. The blank-field placeholder is left alone.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 || s == Placeholder {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders of the given color on all four sides.
func thinBorders(color string) []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: color,
			Style: 1,
		}
	}
	return borders
}
