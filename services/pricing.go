// Package services provides budget totals, the bilingual document assembler
// and the DOCX/XLSX/PDF exporters built on top of it.
package services

// BudgetTotals holds the subtotals and grand total of a budget.
type BudgetTotals struct {
	Materials float64
	Labor     float64
	Diet      float64
	Grand     float64
}

func CalcLineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

func CalcMaterialsTotal(items []MaterialItem) float64 {
	var sum float64
	for _, m := range items {
		sum += CalcLineTotal(m.Quantity, m.UnitPrice)
	}
	return sum
}

func CalcLaborTotal(items []LaborItem) float64 {
	var sum float64
	for _, l := range items {
		sum += l.Cost
	}
	return sum
}

func CalcDietTotal(diet DietInfo) float64 {
	return float64(diet.WorkersCount) * float64(diet.Days) * diet.CostPerDay
}

// CalcBudgetTotals derives all four totals. Negative inputs are not clamped.
func CalcBudgetTotals(materials []MaterialItem, labor []LaborItem, diet DietInfo) BudgetTotals {
	totals := BudgetTotals{
		Materials: CalcMaterialsTotal(materials),
		Labor:     CalcLaborTotal(labor),
		Diet:      CalcDietTotal(diet),
	}
	totals.Grand = totals.Materials + totals.Labor + totals.Diet
	return totals
}
