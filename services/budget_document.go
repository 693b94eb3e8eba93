package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnsupportedValue is returned when a non-finite number reaches a
// formatting routine.
var ErrUnsupportedValue = errors.New("unsupported value")

// Colors and sizes of the budget document.
const (
	headerFill      = "3498DB"
	headerTextColor = "FFFFFF"
	borderColor     = "CCCCCC"
	grandTotalColor = "2C3E50"
	largeTextSize   = 28 // half points
	cellMargin      = 100
	pageMargin      = 720
	separatorLine   = "____________________________________________________________"
	signatureLine   = "__________________________"
)

var cellBorder = &Border{Style: BorderSingle, Size: 1, Color: borderColor}

// BuildBudgetDocument assembles the block tree of a budget summary in the
// given language.
func BuildBudgetDocument(b Budget, lang Language) (*Document, error) {
	t, err := LabelsFor(lang)
	if err != nil {
		return nil, err
	}
	if err := checkFinite(b); err != nil {
		return nil, err
	}

	totals := b.Totals()
	db := &DocumentBuilder{}

	addHeader(db, t, b)
	addWorkers(db, t, b)
	if len(b.Materials) > 0 {
		addMaterials(db, t, b.Materials, totals.Materials)
	}
	if len(b.Labor) > 0 {
		addLabor(db, t, b.Labor, totals.Labor)
	}
	if b.Diet.Applies() {
		addDiets(db, t, b.Diet, totals.Diet)
	}
	addGrandTotal(db, t, totals.Grand)
	if !isBlank(b.Project.Observations) {
		addObservations(db, b.Project.Observations)
	}
	addSignatures(db, t, b.Project)

	margins := Margins{Top: pageMargin, Right: pageMargin, Bottom: pageMargin, Left: pageMargin}
	return db.Build(t.Get(LabelTitle), strings.TrimSpace(b.Project.ProjectName), lang, margins), nil
}

// checkFinite rejects NaN and infinite amounts before any of them is
// formatted.
func checkFinite(b Budget) error {
	check := func(field string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrUnsupportedValue, field, v)
		}
		return nil
	}
	for i, m := range b.Materials {
		if err := check(fmt.Sprintf("materials[%d].quantity", i), m.Quantity); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("materials[%d].unitPrice", i), m.UnitPrice); err != nil {
			return err
		}
	}
	for i, l := range b.Labor {
		if err := check(fmt.Sprintf("labor[%d].cost", i), l.Cost); err != nil {
			return err
		}
	}
	if err := check("diet.costPerDay", b.Diet.CostPerDay); err != nil {
		return err
	}
	// Finite inputs can still overflow when multiplied or summed.
	totals := b.Totals()
	return check("grand total", totals.Grand)
}

// addHeader adds the title, project name and beneficiary line.
func addHeader(db *DocumentBuilder, t Labels, b Budget) {
	db.Add(
		&Paragraph{
			Runs:    []Run{{Text: t.Get(LabelTitle)}},
			Heading: HeadingTitle,
			Align:   AlignCenter,
			Spacing: Spacing{After: 200},
		},
		&Paragraph{
			Runs:    []Run{{Text: orPlaceholder(b.Project.ProjectName), Bold: true, Size: largeTextSize}},
			Align:   AlignCenter,
			Spacing: Spacing{After: 400},
		},
		labeledLine(t.Get(LabelBeneficiary), orPlaceholder(b.Project.Beneficiary), 100),
	)
}

// addWorkers adds the main worker line and, when there are named helpers,
// the other workers line.
func addWorkers(db *DocumentBuilder, t Labels, b Budget) {
	mainName := Placeholder
	if w, ok := b.MainWorker(); ok {
		mainName = orPlaceholder(w.Name)
	}
	db.Add(labeledLine(t.Get(LabelMainWorker), mainName, 100))

	others := strings.Join(b.OtherWorkerNames(), ", ")
	if others != "" {
		db.Add(labeledLine(t.Get(LabelOtherWorkers), others, 400))
	}
}

func addMaterials(db *DocumentBuilder, t Labels, items []MaterialItem, total float64) {
	rows := []TableRow{{
		Header: true,
		Cells: []TableCell{
			headerCell(t.Get(LabelDescription), 40),
			headerCell(t.Get(LabelQuantity), 10),
			headerCell(t.Get(LabelUnit), 15),
			headerCell(t.Get(LabelUnitPrice), 15),
			headerCell(t.Get(LabelTotal), 20),
		},
	}}
	for _, m := range items {
		rows = append(rows, TableRow{Cells: []TableCell{
			bodyCell(orPlaceholder(m.Description), AlignLeft),
			bodyCell(formatQty(m.Quantity), AlignCenter),
			bodyCell(orPlaceholder(m.Unit), AlignCenter),
			bodyCell(FormatMoney(m.UnitPrice), AlignRight),
			bodyCell(FormatMoney(m.LineTotal()), AlignRight),
		}})
	}

	db.Add(
		sectionHeading(t.Get(LabelMaterials), 200),
		&Table{WidthPct: 100, Rows: rows},
		totalLine(t.Get(LabelMaterialsTotal), FormatAmount(total, t.Get(LabelCurrency)), 200),
	)
}

func addLabor(db *DocumentBuilder, t Labels, items []LaborItem, total float64) {
	rows := []TableRow{{
		Header: true,
		Cells: []TableCell{
			headerCell(t.Get(LabelWorkDescription), 75),
			headerCell(t.Get(LabelCost), 25),
		},
	}}
	for _, l := range items {
		rows = append(rows, TableRow{Cells: []TableCell{
			bodyCell(orPlaceholder(l.Description), AlignLeft),
			bodyCell(FormatMoney(l.Cost), AlignRight),
		}})
	}

	db.Add(
		sectionHeading(t.Get(LabelLabor), 400),
		&Table{WidthPct: 100, Rows: rows},
		totalLine(t.Get(LabelLaborTotal), FormatAmount(total, t.Get(LabelCurrency)), 200),
	)
}

func addDiets(db *DocumentBuilder, t Labels, diet DietInfo, total float64) {
	db.Add(
		sectionHeading(t.Get(LabelDiets), 400),
		&Paragraph{
			Runs:  []Run{{Text: DietBreakdown(t, diet)}},
			Align: AlignRight,
		},
		totalLine(t.Get(LabelDietsTotal), FormatAmount(total, t.Get(LabelCurrency)), 100),
	)
}

// DietBreakdown returns the descriptive diet line, e.g.
// "4 workers x 5 days @ $25.00 ea".
func DietBreakdown(t Labels, diet DietInfo) string {
	return fmt.Sprintf("%d %s x %d %s @ %s %s",
		diet.WorkersCount, t.Get(LabelWorkers),
		diet.Days, t.Get(LabelDays),
		FormatMoney(diet.CostPerDay), t.Get(LabelPerMeal))
}

// addGrandTotal adds the separator and the large grand total line.
func addGrandTotal(db *DocumentBuilder, t Labels, grand float64) {
	db.Add(
		&Paragraph{
			Runs:    []Run{{Text: separatorLine, Color: borderColor}},
			Align:   AlignCenter,
			Spacing: Spacing{Before: 400, After: 200},
		},
		&Paragraph{
			Runs: []Run{
				{Text: t.Get(LabelFinalTotal) + " ", Bold: true, Size: largeTextSize},
				{Text: FormatAmount(grand, t.Get(LabelCurrency)), Bold: true, Size: largeTextSize, Color: grandTotalColor},
			},
			Align:   AlignCenter,
			Spacing: Spacing{After: 600},
		},
	)
}

func addObservations(db *DocumentBuilder, observations string) {
	db.Add(
		&Paragraph{Runs: []Run{{Text: ObservationsLabel, Bold: true}}},
		&Paragraph{Runs: []Run{{Text: observations}}, Spacing: Spacing{After: 400}},
	)
}

// addSignatures adds the borderless approval table: approver and signature
// line on the left, approval date on the right.
func addSignatures(db *DocumentBuilder, t Labels, p ProjectInfo) {
	left := TableCell{
		WidthPct: 50,
		Paragraphs: []*Paragraph{
			{Runs: []Run{{Text: t.Get(LabelApprovedBy) + " " + orPlaceholder(p.ApproverName), Bold: true}}},
			{},
			{},
			{Runs: []Run{{Text: signatureLine}}},
			{Runs: []Run{{Text: t.Get(LabelSignature)}}},
		},
	}
	right := TableCell{
		WidthPct: 50,
		Paragraphs: []*Paragraph{
			{
				Runs:  []Run{{Text: t.Get(LabelDate) + " " + orPlaceholder(p.ApprovalDate), Bold: true}},
				Align: AlignRight,
			},
		},
	}
	db.Add(&Table{
		WidthPct:   100,
		Borderless: true,
		Rows:       []TableRow{{Cells: []TableCell{left, right}}},
	})
}

func labeledLine(label, value string, after int) *Paragraph {
	return &Paragraph{
		Runs: []Run{
			{Text: label + " ", Bold: true},
			{Text: value},
		},
		Spacing: Spacing{After: after},
	}
}

func sectionHeading(text string, before int) *Paragraph {
	return &Paragraph{
		Runs:    []Run{{Text: text}},
		Heading: Heading2,
		Spacing: Spacing{Before: before, After: 200},
	}
}

func totalLine(label, amount string, before int) *Paragraph {
	return &Paragraph{
		Runs: []Run{
			{Text: label + " ", Bold: true},
			{Text: amount, Bold: true},
		},
		Align:   AlignRight,
		Spacing: Spacing{Before: before},
	}
}

func headerCell(text string, widthPct int) TableCell {
	return TableCell{
		WidthPct: widthPct,
		Fill:     headerFill,
		Border:   cellBorder,
		Paragraphs: []*Paragraph{{
			Runs:  []Run{{Text: text, Bold: true, Color: headerTextColor}},
			Align: AlignCenter,
		}},
	}
}

func bodyCell(text string, align Align) TableCell {
	return TableCell{
		Border:  cellBorder,
		Margin:  cellMargin,
		VCenter: true,
		Paragraphs: []*Paragraph{{
			Runs:  []Run{{Text: text}},
			Align: align,
		}},
	}
}
