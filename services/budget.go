package services

import "strings"

// Worker roles used by the budget form. Only RolePrincipal has meaning for
// document assembly; every other value is treated as a helper.
const (
	RolePrincipal = "Principal"
	RoleHelper    = "Ayudante"
)

// ProjectInfo holds the header and approval data of a budget.
type ProjectInfo struct {
	ProjectName  string `json:"projectName" toml:"project_name"`
	Beneficiary  string `json:"beneficiary" toml:"beneficiary"`
	ApproverName string `json:"approverName" toml:"approver_name"`
	ApprovalDate string `json:"approvalDate" toml:"approval_date"`
	Observations string `json:"observations" toml:"observations"`
}

// WorkerInfo is one entry of the worker roster.
type WorkerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// IsPrincipal reports whether the worker is the lead worker.
func (w WorkerInfo) IsPrincipal() bool {
	return w.Role == RolePrincipal
}

// MaterialItem is one priced material line.
type MaterialItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
}

// LineTotal returns quantity × unit price.
func (m MaterialItem) LineTotal() float64 {
	return CalcLineTotal(m.Quantity, m.UnitPrice)
}

// LaborItem is one piece of work with a flat cost.
type LaborItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// DietInfo describes the daily meal stipend paid per worker.
type DietInfo struct {
	WorkersCount int     `json:"workersCount"`
	Days         int     `json:"days"`
	CostPerDay   float64 `json:"costPerDay"`
}

// Total returns workers × days × cost per day.
func (d DietInfo) Total() float64 {
	return CalcDietTotal(d)
}

// Applies reports whether the diets section belongs in the document.
func (d DietInfo) Applies() bool {
	return d.WorkersCount > 0 && d.Days > 0
}

// Budget is the complete snapshot of one project's cost data. It is passed
// by value into document generation and never modified there.
type Budget struct {
	Project   ProjectInfo    `json:"project"`
	Workers   []WorkerInfo   `json:"workers"`
	Materials []MaterialItem `json:"materials"`
	Labor     []LaborItem    `json:"labor"`
	Diet      DietInfo       `json:"diet"`
}

// Totals computes the four derived totals of the budget.
func (b Budget) Totals() BudgetTotals {
	return CalcBudgetTotals(b.Materials, b.Labor, b.Diet)
}

// MainWorker returns the first worker whose role is Principal.
func (b Budget) MainWorker() (WorkerInfo, bool) {
	for _, w := range b.Workers {
		if w.IsPrincipal() {
			return w, true
		}
	}
	return WorkerInfo{}, false
}

// OtherWorkerNames returns the names of every non-Principal worker, in
// roster order.
func (b Budget) OtherWorkerNames() []string {
	var names []string
	for _, w := range b.Workers {
		if !w.IsPrincipal() {
			names = append(names, w.Name)
		}
	}
	return names
}

// DefaultWorkers is the roster a new budget starts with: one Principal and
// one helper, both unnamed.
func DefaultWorkers() []WorkerInfo {
	return []WorkerInfo{
		{ID: "1", Role: RolePrincipal},
		{ID: "2", Role: RoleHelper},
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
