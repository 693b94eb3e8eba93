package services

import "strings"

// Align is the horizontal alignment of a paragraph.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Heading marks a paragraph as a styled heading.
type Heading int

const (
	HeadingNone Heading = iota
	HeadingTitle
	Heading2
)

// Spacing is the space before and after a paragraph, in twentieths of a
// point (twips).
type Spacing struct {
	Before int
	After  int
}

// Run is a span of text sharing one character format. Size is in half
// points; zero means the style default. Color is a hex RGB string.
type Run struct {
	Text  string
	Bold  bool
	Size  int
	Color string
}

// Block is a top-level element of a Document: *Paragraph or *Table.
type Block interface {
	block()
}

// Paragraph is a line of runs.
type Paragraph struct {
	Runs    []Run
	Align   Align
	Heading Heading
	Spacing Spacing
}

func (*Paragraph) block() {}

// Text returns the concatenated text of every run.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// AllBold reports whether every run is bold.
func (p *Paragraph) AllBold() bool {
	if len(p.Runs) == 0 {
		return false
	}
	for _, r := range p.Runs {
		if !r.Bold {
			return false
		}
	}
	return true
}

// MaxSize returns the largest run size, or zero when all runs use the
// default size.
func (p *Paragraph) MaxSize() int {
	size := 0
	for _, r := range p.Runs {
		if r.Size > size {
			size = r.Size
		}
	}
	return size
}

// Border is a cell or table border. A zero Size with Style BorderNone
// hides the edge.
type Border struct {
	Style string
	Size  int
	Color string
}

const (
	BorderSingle = "single"
	BorderNone   = "none"
)

// TableCell holds one or more paragraphs.
type TableCell struct {
	Paragraphs []*Paragraph
	WidthPct   int
	Fill       string
	Border     *Border
	Margin     int
	VCenter    bool
}

// Text returns the text of every paragraph joined with newlines.
func (c TableCell) Text() string {
	lines := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// TableRow is one row of cells. Header rows repeat at page breaks.
type TableRow struct {
	Header bool
	Cells  []TableCell
}

// Table is a grid of cells spanning WidthPct of the text width.
type Table struct {
	WidthPct   int
	Borderless bool
	Rows       []TableRow
}

func (*Table) block() {}

// ColumnWidths returns the width percentage of each column, taken from the
// first row.
func (t *Table) ColumnWidths() []int {
	if len(t.Rows) == 0 {
		return nil
	}
	widths := make([]int, len(t.Rows[0].Cells))
	for i, c := range t.Rows[0].Cells {
		widths[i] = c.WidthPct
	}
	return widths
}

// Margins are page margins in twips.
type Margins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Document is an ordered list of blocks plus page settings. It is the
// format-independent output of the assembler; serializers consume it.
type Document struct {
	Title    string
	Subject  string
	Language Language
	Margins  Margins
	Blocks   []Block
}

// Paragraphs returns every paragraph in the document, including the ones
// inside table cells, in reading order.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			out = append(out, v)
		case *Table:
			for _, row := range v.Rows {
				for _, cell := range row.Cells {
					out = append(out, cell.Paragraphs...)
				}
			}
		}
	}
	return out
}

// Tables returns the top-level tables of the document.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// DocumentBuilder accumulates blocks in order.
type DocumentBuilder struct {
	blocks []Block
}

// Add appends blocks to the document.
func (b *DocumentBuilder) Add(blocks ...Block) *DocumentBuilder {
	b.blocks = append(b.blocks, blocks...)
	return b
}

// Build returns the finished document.
func (b *DocumentBuilder) Build(title, subject string, lang Language, margins Margins) *Document {
	blocks := make([]Block, len(b.blocks))
	copy(blocks, b.blocks)
	return &Document{
		Title:    title,
		Subject:  subject,
		Language: lang,
		Margins:  margins,
		Blocks:   blocks,
	}
}
