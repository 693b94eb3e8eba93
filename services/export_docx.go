package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// A4 page size in twips.
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
)

const (
	nsWordMain   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelations  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsCoreProps  = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDublinCore = "http://purl.org/dc/elements/1.1/"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults>` +
	`<w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/><w:szCs w:val="22"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
	`</w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:rPr><w:rFonts w:ascii="Calibri Light" w:hAnsi="Calibri Light"/><w:b/><w:sz w:val="48"/><w:szCs w:val="48"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:keepNext/><w:outlineLvl w:val="1"/></w:pPr>` +
	`<w:rPr><w:b/><w:color w:val="2E74B5"/><w:sz w:val="26"/><w:szCs w:val="26"/></w:rPr></w:style>` +
	`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/>` +
	`<w:tblPr><w:tblCellMar><w:left w:w="108" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>` +
	`</w:styles>`

// GenerateDocx serializes a document into a WordprocessingML (.docx)
// package. Zip entries carry no timestamps, so identical documents produce
// identical bytes.
func GenerateDocx(doc *Document) ([]byte, error) {
	body, err := marshalPart(buildDocumentXML(doc))
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	core, err := marshalPart(buildCoreProps(doc))
	if err != nil {
		return nil, fmt.Errorf("marshal core properties: %w", err)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", core},
		{"word/document.xml", body},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("write part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalPart(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(data))
	out = append(out, xml.Header...)
	return append(out, data...), nil
}

// ── WordprocessingML structures ─────────────────────────────────────────

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

// wBody holds paragraphs and tables in document order followed by the
// section properties.
type wBody struct {
	Content []any
	Section wSectionProps
}

func (b wBody) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range b.Content {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	if err := e.Encode(b.Section); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

type wSectionProps struct {
	XMLName  xml.Name    `xml:"w:sectPr"`
	PageSize wPageSize   `xml:"w:pgSz"`
	Margins  wPageMargin `xml:"w:pgMar"`
}

type wPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

type wEmpty struct{}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wParagraph struct {
	XMLName xml.Name         `xml:"w:p"`
	Props   *wParagraphProps `xml:"w:pPr,omitempty"`
	Runs    []wRun           `xml:"w:r"`
}

type wParagraphProps struct {
	Style   *wVal     `xml:"w:pStyle,omitempty"`
	Spacing *wSpacing `xml:"w:spacing,omitempty"`
	Justify *wVal     `xml:"w:jc,omitempty"`
}

type wSpacing struct {
	Before int `xml:"w:before,attr,omitempty"`
	After  int `xml:"w:after,attr,omitempty"`
}

type wRun struct {
	Props *wRunProps `xml:"w:rPr,omitempty"`
	Break *wEmpty    `xml:"w:br,omitempty"`
	Text  wText      `xml:"w:t"`
}

type wRunProps struct {
	Bold   *wEmpty `xml:"w:b,omitempty"`
	Color  *wVal   `xml:"w:color,omitempty"`
	Size   *wVal   `xml:"w:sz,omitempty"`
	SizeCS *wVal   `xml:"w:szCs,omitempty"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type wTable struct {
	XMLName xml.Name    `xml:"w:tbl"`
	Props   wTableProps `xml:"w:tblPr"`
	Grid    wTableGrid  `xml:"w:tblGrid"`
	Rows    []wTableRow `xml:"w:tr"`
}

type wTableProps struct {
	Width   wWidth    `xml:"w:tblW"`
	Borders *wBorders `xml:"w:tblBorders,omitempty"`
	Layout  *wLayout  `xml:"w:tblLayout,omitempty"`
}

type wLayout struct {
	Type string `xml:"w:type,attr"`
}

type wWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type wBorders struct {
	Top     *wBorder `xml:"w:top,omitempty"`
	Left    *wBorder `xml:"w:left,omitempty"`
	Bottom  *wBorder `xml:"w:bottom,omitempty"`
	Right   *wBorder `xml:"w:right,omitempty"`
	InsideH *wBorder `xml:"w:insideH,omitempty"`
	InsideV *wBorder `xml:"w:insideV,omitempty"`
}

type wBorder struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr,omitempty"`
}

type wTableGrid struct {
	Cols []wGridCol `xml:"w:gridCol"`
}

type wGridCol struct {
	W int `xml:"w:w,attr"`
}

type wTableRow struct {
	Props *wRowProps   `xml:"w:trPr,omitempty"`
	Cells []wTableCell `xml:"w:tc"`
}

type wRowProps struct {
	Header *wEmpty `xml:"w:tblHeader,omitempty"`
}

type wTableCell struct {
	Props      wCellProps   `xml:"w:tcPr"`
	Paragraphs []wParagraph `xml:"w:p"`
}

type wCellProps struct {
	Width   *wWidth       `xml:"w:tcW,omitempty"`
	Borders *wBorders     `xml:"w:tcBorders,omitempty"`
	Shading *wShading     `xml:"w:shd,omitempty"`
	Margins *wCellMargins `xml:"w:tcMar,omitempty"`
	VAlign  *wVal         `xml:"w:vAlign,omitempty"`
}

type wShading struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

type wCellMargins struct {
	Top    wWidth `xml:"w:top"`
	Left   wWidth `xml:"w:left"`
	Bottom wWidth `xml:"w:bottom"`
	Right  wWidth `xml:"w:right"`
}

type coreProperties struct {
	XMLName  xml.Name `xml:"cp:coreProperties"`
	NSCP     string   `xml:"xmlns:cp,attr"`
	NSDC     string   `xml:"xmlns:dc,attr"`
	Title    string   `xml:"dc:title"`
	Subject  string   `xml:"dc:subject,omitempty"`
	Language string   `xml:"dc:language"`
}

// ── Conversion ──────────────────────────────────────────────────────────

func buildCoreProps(doc *Document) coreProperties {
	return coreProperties{
		NSCP:     nsCoreProps,
		NSDC:     nsDublinCore,
		Title:    doc.Title,
		Subject:  doc.Subject,
		Language: string(doc.Language),
	}
}

func buildDocumentXML(doc *Document) wDocument {
	content := make([]any, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			content = append(content, convertParagraph(v))
		case *Table:
			content = append(content, convertTable(v, textWidth(doc.Margins)))
			// Word merges adjacent tables; an empty paragraph keeps them apart.
			content = append(content, wParagraph{})
		}
	}

	return wDocument{
		NSW: nsWordMain,
		NSR: nsRelations,
		Body: wBody{
			Content: content,
			Section: wSectionProps{
				PageSize: wPageSize{W: pageWidthTwips, H: pageHeightTwips},
				Margins: wPageMargin{
					Top:    doc.Margins.Top,
					Right:  doc.Margins.Right,
					Bottom: doc.Margins.Bottom,
					Left:   doc.Margins.Left,
					Header: 708,
					Footer: 708,
				},
			},
		},
	}
}

func textWidth(m Margins) int {
	return pageWidthTwips - m.Left - m.Right
}

func convertParagraph(p *Paragraph) wParagraph {
	out := wParagraph{}

	props := &wParagraphProps{}
	switch p.Heading {
	case HeadingTitle:
		props.Style = &wVal{Val: "Title"}
	case Heading2:
		props.Style = &wVal{Val: "Heading2"}
	}
	if p.Spacing.Before != 0 || p.Spacing.After != 0 {
		props.Spacing = &wSpacing{Before: p.Spacing.Before, After: p.Spacing.After}
	}
	if p.Align != "" && p.Align != AlignLeft {
		props.Justify = &wVal{Val: string(p.Align)}
	}
	if props.Style != nil || props.Spacing != nil || props.Justify != nil {
		out.Props = props
	}

	for _, r := range p.Runs {
		out.Runs = append(out.Runs, convertRun(r)...)
	}
	return out
}

// convertRun splits text on newlines into runs joined by line breaks.
func convertRun(r Run) []wRun {
	var props *wRunProps
	if r.Bold || r.Color != "" || r.Size > 0 {
		props = &wRunProps{}
		if r.Bold {
			props.Bold = &wEmpty{}
		}
		if r.Color != "" {
			props.Color = &wVal{Val: r.Color}
		}
		if r.Size > 0 {
			size := fmt.Sprintf("%d", r.Size)
			props.Size = &wVal{Val: size}
			props.SizeCS = &wVal{Val: size}
		}
	}

	lines := strings.Split(r.Text, "\n")
	runs := make([]wRun, len(lines))
	for i, line := range lines {
		runs[i] = wRun{Props: props, Text: wText{Space: "preserve", Value: line}}
		if i > 0 {
			runs[i].Break = &wEmpty{}
		}
	}
	return runs
}

func convertTable(t *Table, width int) wTable {
	out := wTable{
		Props: wTableProps{
			Width:  wWidth{W: t.WidthPct * 50, Type: "pct"},
			Layout: &wLayout{Type: "fixed"},
		},
	}
	if t.Borderless {
		none := &wBorder{Val: BorderNone}
		out.Props.Borders = &wBorders{Top: none, Left: none, Bottom: none, Right: none, InsideH: none, InsideV: none}
	}

	tableWidth := width * t.WidthPct / 100
	for _, pct := range t.ColumnWidths() {
		out.Grid.Cols = append(out.Grid.Cols, wGridCol{W: tableWidth * pct / 100})
	}

	widths := t.ColumnWidths()
	for _, row := range t.Rows {
		wr := wTableRow{}
		if row.Header {
			wr.Props = &wRowProps{Header: &wEmpty{}}
		}
		for i, cell := range row.Cells {
			pct := cell.WidthPct
			if pct == 0 && i < len(widths) {
				pct = widths[i]
			}
			wr.Cells = append(wr.Cells, convertCell(cell, pct))
		}
		out.Rows = append(out.Rows, wr)
	}
	return out
}

func convertCell(c TableCell, pct int) wTableCell {
	out := wTableCell{}
	if pct > 0 {
		out.Props.Width = &wWidth{W: pct * 50, Type: "pct"}
	}
	if c.Border != nil {
		// Border sizes are in eighths of a point.
		b := &wBorder{Val: c.Border.Style, Size: c.Border.Size * 8, Color: c.Border.Color}
		out.Props.Borders = &wBorders{Top: b, Left: b, Bottom: b, Right: b}
	}
	if c.Fill != "" {
		out.Props.Shading = &wShading{Val: "solid", Color: c.Fill, Fill: c.Fill}
	}
	if c.Margin > 0 {
		m := wWidth{W: c.Margin, Type: "dxa"}
		out.Props.Margins = &wCellMargins{Top: m, Left: m, Bottom: m, Right: m}
	}
	if c.VCenter {
		out.Props.VAlign = &wVal{Val: "center"}
	}

	for _, p := range c.Paragraphs {
		out.Paragraphs = append(out.Paragraphs, convertParagraph(p))
	}
	// A table cell must end with a paragraph.
	if len(out.Paragraphs) == 0 {
		out.Paragraphs = []wParagraph{{}}
	}
	return out
}
