package services

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	pdfGridSize  = 12
	pdfBodySize  = 10
	twipsPerMM   = 56.7
	pdfLineRatio = 0.5 // row height in mm per point of font size
)

// GenerateBudgetPDF renders a budget document as an A4 PDF using maroto/v2
// and returns the raw bytes.
func GenerateBudgetPDF(doc *Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(float64(doc.Margins.Left) / twipsPerMM).
		WithTopMargin(float64(doc.Margins.Top) / twipsPerMM).
		WithRightMargin(float64(doc.Margins.Right) / twipsPerMM).
		WithBottomMargin(float64(doc.Margins.Bottom) / twipsPerMM).
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			addPDFParagraph(m, v)
		case *Table:
			addPDFTable(m, v)
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

// addPDFParagraph adds one full-width row for a paragraph, preceded by a
// spacer when the paragraph asks for space before it.
func addPDFParagraph(m core.Maroto, p *Paragraph) {
	if p.Spacing.Before >= 200 {
		m.AddRows(row.New(float64(p.Spacing.Before) / twipsPerMM))
	}
	style := pdfTextProps(p)
	m.AddRows(
		row.New(lineHeight(style.Size)).Add(
			col.New(pdfGridSize).Add(text.New(p.Text(), style)),
		),
	)
	if p.Spacing.After >= 200 {
		m.AddRows(row.New(float64(p.Spacing.After) / twipsPerMM))
	}
}

// addPDFTable adds one row per table row. Column widths are mapped onto the
// 12-column grid.
func addPDFTable(m core.Maroto, t *Table) {
	spans := columnSpans(t.ColumnWidths(), pdfGridSize)

	for _, tr := range t.Rows {
		lines := 1
		height := lineHeight(pdfBodySize)
		cols := make([]core.Col, 0, len(tr.Cells))

		for i, cell := range tr.Cells {
			if i >= len(spans) {
				break
			}
			c := col.New(spans[i])
			for j, p := range cell.Paragraphs {
				if len(p.Runs) == 0 {
					continue
				}
				style := pdfTextProps(p)
				style.Top = float64(j) * height
				style.Left = 1
				style.Right = 1
				c.Add(text.New(p.Text(), style))
			}
			lines = max(lines, len(cell.Paragraphs))

			cellStyle := &props.Cell{}
			if cell.Fill != "" {
				cellStyle.BackgroundColor = hexColor(cell.Fill)
			}
			if cell.Border != nil && cell.Border.Style != BorderNone && !t.Borderless {
				cellStyle.BorderType = border.Full
				cellStyle.BorderColor = hexColor(cell.Border.Color)
				cellStyle.BorderThickness = 0.2
			}
			cols = append(cols, c.WithStyle(cellStyle))
		}

		m.AddRows(row.New(height * float64(lines)).Add(cols...))
	}
	m.AddRows(row.New(2))
}

func pdfTextProps(p *Paragraph) props.Text {
	style := props.Text{
		Size:  pdfBodySize,
		Align: pdfAlign(p.Align),
		Top:   1,
	}
	switch p.Heading {
	case HeadingTitle:
		style.Size = 16
		style.Style = fontstyle.Bold
	case Heading2:
		style.Size = 12
		style.Style = fontstyle.Bold
		style.Color = &props.Color{Red: 46, Green: 116, Blue: 181}
	}
	if p.AllBold() {
		style.Style = fontstyle.Bold
	}
	if s := p.MaxSize(); s > 0 {
		style.Size = float64(s) / 2
	}
	if len(p.Runs) > 0 {
		if c := p.Runs[len(p.Runs)-1].Color; c != "" {
			style.Color = hexColor(c)
		}
	}
	return style
}

func pdfAlign(a Align) align.Type {
	switch a {
	case AlignCenter:
		return align.Center
	case AlignRight:
		return align.Right
	default:
		return align.Left
	}
}

func lineHeight(size float64) float64 {
	return max(6, size*pdfLineRatio+2)
}

// hexColor parses an RRGGBB string. Invalid input yields black.
func hexColor(hex string) *props.Color {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return &props.Color{}
	}
	return &props.Color{
		Red:   int(v >> 16 & 0xFF),
		Green: int(v >> 8 & 0xFF),
		Blue:  int(v & 0xFF),
	}
}
