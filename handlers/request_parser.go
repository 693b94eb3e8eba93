package handlers

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"budgetsummary/services"
)

// maxBudgetBody caps the size of a submitted budget.
const maxBudgetBody = 2 << 20

// parseBudgetRequest reads a budget from a JSON body or from form fields
// named after the form inputs:
//
//	projectName, beneficiary, approverName, approvalDate, observations
//	workers[i].name, workers[i].role
//	materials[i].description, .quantity, .unit, .unitPrice
//	labor[i].description, labor[i].cost
//	diet.workersCount, diet.days, diet.costPerDay
func parseBudgetRequest(w http.ResponseWriter, r *http.Request) (services.BudgetInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBudgetBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		in, err := services.DecodeBudgetInput(r.Body, services.InputJSON)
		if err != nil {
			return services.BudgetInput{}, err
		}
		return in, nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBudgetBody); err != nil {
			return services.BudgetInput{}, fmt.Errorf("parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return services.BudgetInput{}, fmt.Errorf("parse form: %w", err)
	}
	return budgetFromForm(r), nil
}

func budgetFromForm(r *http.Request) services.BudgetInput {
	in := services.BudgetInput{
		Project: services.ProjectInfo{
			ProjectName:  r.FormValue("projectName"),
			Beneficiary:  r.FormValue("beneficiary"),
			ApproverName: r.FormValue("approverName"),
			ApprovalDate: strings.TrimSpace(r.FormValue("approvalDate")),
			Observations: r.FormValue("observations"),
		},
		Diet: services.DietInput{
			WorkersCount: r.FormValue("diet.workersCount"),
			Days:         r.FormValue("diet.days"),
			CostPerDay:   r.FormValue("diet.costPerDay"),
		},
	}

	for i := 0; hasIndexedField(r, "workers", i, "name", "role"); i++ {
		prefix := fmt.Sprintf("workers[%d].", i)
		in.Workers = append(in.Workers, services.WorkerInput{
			ID:   r.FormValue(prefix + "id"),
			Name: r.FormValue(prefix + "name"),
			Role: r.FormValue(prefix + "role"),
		})
	}

	for i := 0; hasIndexedField(r, "materials", i, "description", "quantity", "unit", "unitPrice"); i++ {
		prefix := fmt.Sprintf("materials[%d].", i)
		in.Materials = append(in.Materials, services.MaterialInput{
			ID:          r.FormValue(prefix + "id"),
			Description: r.FormValue(prefix + "description"),
			Quantity:    r.FormValue(prefix + "quantity"),
			Unit:        r.FormValue(prefix + "unit"),
			UnitPrice:   r.FormValue(prefix + "unitPrice"),
		})
	}

	for i := 0; hasIndexedField(r, "labor", i, "description", "cost"); i++ {
		prefix := fmt.Sprintf("labor[%d].", i)
		in.Labor = append(in.Labor, services.LaborInput{
			ID:          r.FormValue(prefix + "id"),
			Description: r.FormValue(prefix + "description"),
			Cost:        r.FormValue(prefix + "cost"),
		})
	}

	return in
}

// hasIndexedField reports whether any of the named fields of list[i] was
// submitted, even with an empty value.
func hasIndexedField(r *http.Request, list string, i int, fields ...string) bool {
	prefix := fmt.Sprintf("%s[%d].", list, i)
	for _, f := range fields {
		if _, ok := r.Form[prefix+f]; ok {
			return true
		}
	}
	return false
}
