package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
)

// InputKind is the serialization of a budget input document.
type InputKind string

const (
	InputJSON InputKind = "json"
	InputTOML InputKind = "toml"
)

var ErrUnsupportedInput = errors.New("unsupported budget input")

// WorkerInput is a roster entry as submitted by a client.
type WorkerInput struct {
	ID   string `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`
	Role string `json:"role" toml:"role"`
}

// MaterialInput is a material line as submitted by a client. Numeric fields
// accept numbers or numeric strings.
type MaterialInput struct {
	ID          string `json:"id" toml:"id"`
	Description string `json:"description" toml:"description"`
	Quantity    any    `json:"quantity" toml:"quantity"`
	Unit        string `json:"unit" toml:"unit"`
	UnitPrice   any    `json:"unitPrice" toml:"unit_price"`
}

// LaborInput is a labor line as submitted by a client.
type LaborInput struct {
	ID          string `json:"id" toml:"id"`
	Description string `json:"description" toml:"description"`
	Cost        any    `json:"cost" toml:"cost"`
}

// DietInput is the diet block as submitted by a client.
type DietInput struct {
	WorkersCount any `json:"workersCount" toml:"workers_count"`
	Days         any `json:"days" toml:"days"`
	CostPerDay   any `json:"costPerDay" toml:"cost_per_day"`
}

// BudgetInput is the loosely typed form of a Budget received over HTTP or
// read from a file.
type BudgetInput struct {
	Project   ProjectInfo     `json:"project" toml:"project"`
	Workers   []WorkerInput   `json:"workers" toml:"workers"`
	Materials []MaterialInput `json:"materials" toml:"materials"`
	Labor     []LaborInput    `json:"labor" toml:"labor"`
	Diet      DietInput       `json:"diet" toml:"diet"`
}

// ToBudget converts the input into a Budget. Malformed or non-finite numbers
// become 0 and blank line IDs are replaced with fresh UUIDs.
func (in BudgetInput) ToBudget() Budget {
	b := Budget{
		Project: in.Project,
		Diet: DietInfo{
			WorkersCount: toCount(in.Diet.WorkersCount),
			Days:         toCount(in.Diet.Days),
			CostPerDay:   toAmount(in.Diet.CostPerDay),
		},
	}

	for _, w := range in.Workers {
		b.Workers = append(b.Workers, WorkerInfo{
			ID:   idOrNew(w.ID),
			Name: w.Name,
			Role: strings.TrimSpace(w.Role),
		})
	}
	for _, m := range in.Materials {
		b.Materials = append(b.Materials, MaterialItem{
			ID:          idOrNew(m.ID),
			Description: m.Description,
			Quantity:    toAmount(m.Quantity),
			Unit:        strings.TrimSpace(m.Unit),
			UnitPrice:   toAmount(m.UnitPrice),
		})
	}
	for _, l := range in.Labor {
		b.Labor = append(b.Labor, LaborItem{
			ID:          idOrNew(l.ID),
			Description: l.Description,
			Cost:        toAmount(l.Cost),
		})
	}
	return b
}

// NewBlankBudgetInput returns the state a new budget form starts in: an
// empty project dated today, the default roster, one empty material line,
// one empty labor line and no diets.
func NewBlankBudgetInput(now time.Time) BudgetInput {
	in := BudgetInput{
		Project: ProjectInfo{ApprovalDate: now.Format(time.DateOnly)},
		Materials: []MaterialInput{{
			ID:        uuid.NewString(),
			Quantity:  0,
			Unit:      DefaultUnit,
			UnitPrice: 0,
		}},
		Labor: []LaborInput{{ID: uuid.NewString(), Cost: 0}},
		Diet:  DietInput{WorkersCount: 0, Days: 0, CostPerDay: 0},
	}
	for _, w := range DefaultWorkers() {
		in.Workers = append(in.Workers, WorkerInput{ID: w.ID, Name: w.Name, Role: w.Role})
	}
	return in
}

// DecodeBudgetInput reads a budget input document of the given kind.
func DecodeBudgetInput(r io.Reader, kind InputKind) (BudgetInput, error) {
	var in BudgetInput
	switch kind {
	case InputJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&in); err != nil {
			return BudgetInput{}, fmt.Errorf("decode json budget: %w", err)
		}
	case InputTOML:
		if err := toml.NewDecoder(r).Decode(&in); err != nil {
			return BudgetInput{}, fmt.Errorf("decode toml budget: %w", err)
		}
	default:
		return BudgetInput{}, fmt.Errorf("%w: kind %q", ErrUnsupportedInput, kind)
	}
	return in, nil
}

// LoadBudgetInput reads a budget input file, choosing the decoder by file
// extension (.json or .toml).
func LoadBudgetInput(path string) (BudgetInput, error) {
	kind, err := inputKindFor(path)
	if err != nil {
		return BudgetInput{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return BudgetInput{}, fmt.Errorf("read %s: %w", path, err)
	}
	in, err := DecodeBudgetInput(bytes.NewReader(data), kind)
	if err != nil {
		return BudgetInput{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

func inputKindFor(path string) (InputKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return InputJSON, nil
	case ".toml":
		return InputTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedInput, filepath.Base(path))
}

// toAmount coerces a loosely typed number to a finite float64.
func toAmount(v any) float64 {
	switch n := v.(type) {
	case string:
		v = strings.TrimSpace(n)
	case json.Number:
		v = n.String()
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toCount coerces a loosely typed number to an integer count, dropping any
// fractional part.
func toCount(v any) int {
	f := toAmount(v)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(math.Trunc(f))
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}
