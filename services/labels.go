package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language selects the label table of a generated document.
type Language string

const (
	LangES Language = "es"
	LangEN Language = "en"
)

// SupportedLanguages lists every language with a complete label table.
var SupportedLanguages = []Language{LangES, LangEN}

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Tag returns the x/text tag for the language.
func (l Language) Tag() language.Tag {
	switch l {
	case LangEN:
		return language.English
	default:
		return language.Spanish
	}
}

// ParseLanguage maps a BCP 47 tag such as "es", "es-MX" or "en-US" onto a
// supported language.
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	base, _ := tag.Base()
	for _, l := range SupportedLanguages {
		if base.String() == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// LabelKey names one entry of the label table.
type LabelKey string

const (
	LabelTitle           LabelKey = "title"
	LabelBeneficiary     LabelKey = "beneficiary"
	LabelMainWorker      LabelKey = "mainWorker"
	LabelOtherWorkers    LabelKey = "otherWorkers"
	LabelMaterials       LabelKey = "materials"
	LabelLabor           LabelKey = "labor"
	LabelDiets           LabelKey = "diets"
	LabelMaterialsTotal  LabelKey = "materialsTotal"
	LabelLaborTotal      LabelKey = "laborTotal"
	LabelDietsTotal      LabelKey = "dietsTotal"
	LabelFinalTotal      LabelKey = "finalTotal"
	LabelApprovedBy      LabelKey = "approvedBy"
	LabelDate            LabelKey = "date"
	LabelDescription     LabelKey = "description"
	LabelQuantity        LabelKey = "quantity"
	LabelUnit            LabelKey = "unit"
	LabelUnitPrice       LabelKey = "unitPrice"
	LabelTotal           LabelKey = "total"
	LabelWorkDescription LabelKey = "workDescription"
	LabelCost            LabelKey = "cost"
	LabelWorkers         LabelKey = "workers"
	LabelDays            LabelKey = "days"
	LabelPerMeal         LabelKey = "perMeal"
	LabelCurrency        LabelKey = "currency"
	LabelSignature       LabelKey = "signature"
)

// LabelKeys is the full key set every language must define.
var LabelKeys = []LabelKey{
	LabelTitle, LabelBeneficiary, LabelMainWorker, LabelOtherWorkers,
	LabelMaterials, LabelLabor, LabelDiets,
	LabelMaterialsTotal, LabelLaborTotal, LabelDietsTotal, LabelFinalTotal,
	LabelApprovedBy, LabelDate,
	LabelDescription, LabelQuantity, LabelUnit, LabelUnitPrice, LabelTotal,
	LabelWorkDescription, LabelCost,
	LabelWorkers, LabelDays, LabelPerMeal, LabelCurrency, LabelSignature,
}

// ObservationsLabel heads the observations block in both languages.
const ObservationsLabel = "Observaciones / Observations:"

var labelTables = map[Language]map[LabelKey]string{
	LangES: {
		LabelTitle:           "RESUMEN DE PRESUPUESTO",
		LabelBeneficiary:     "Beneficiario:",
		LabelMainWorker:      "Albañil Principal:",
		LabelOtherWorkers:    "Otros Trabajadores:",
		LabelMaterials:       "MATERIALES UTILIZADOS",
		LabelLabor:           "TRABAJOS REALIZADOS",
		LabelDiets:           "DIETAS",
		LabelMaterialsTotal:  "TOTAL MATERIALES:",
		LabelLaborTotal:      "TOTAL MANO DE OBRA:",
		LabelDietsTotal:      "TOTAL DIETAS:",
		LabelFinalTotal:      "PRESUPUESTO TOTAL:",
		LabelApprovedBy:      "Aprobado por:",
		LabelDate:            "Fecha:",
		LabelDescription:     "Descripción",
		LabelQuantity:        "Cant.",
		LabelUnit:            "Unidad",
		LabelUnitPrice:       "P. Unit.",
		LabelTotal:           "Total",
		LabelWorkDescription: "Descripción del Trabajo",
		LabelCost:            "Costo",
		LabelWorkers:         "trabajadores",
		LabelDays:            "días",
		LabelPerMeal:         "c/u",
		LabelCurrency:        "MN",
		LabelSignature:       "Firma",
	},
	LangEN: {
		LabelTitle:           "BUDGET SUMMARY",
		LabelBeneficiary:     "Beneficiary:",
		LabelMainWorker:      "Main Worker:",
		LabelOtherWorkers:    "Other Workers:",
		LabelMaterials:       "MATERIALS USED",
		LabelLabor:           "WORK PERFORMED",
		LabelDiets:           "MEALS / DIETS",
		LabelMaterialsTotal:  "TOTAL MATERIALS:",
		LabelLaborTotal:      "TOTAL LABOR:",
		LabelDietsTotal:      "TOTAL MEALS:",
		LabelFinalTotal:      "TOTAL BUDGET:",
		LabelApprovedBy:      "Approved by:",
		LabelDate:            "Date:",
		LabelDescription:     "Description",
		LabelQuantity:        "Qty",
		LabelUnit:            "Unit",
		LabelUnitPrice:       "U. Price",
		LabelTotal:           "Total",
		LabelWorkDescription: "Work Description",
		LabelCost:            "Cost",
		LabelWorkers:         "workers",
		LabelDays:            "days",
		LabelPerMeal:         "ea",
		LabelCurrency:        "MN",
		LabelSignature:       "Signature",
	},
}

func init() {
	if err := validateLabelTables(labelTables); err != nil {
		panic(err)
	}
}

// validateLabelTables checks that every supported language defines every key
// with a non-blank value.
func validateLabelTables(tables map[Language]map[LabelKey]string) error {
	var missing []string
	for _, lang := range SupportedLanguages {
		table, ok := tables[lang]
		if !ok {
			missing = append(missing, fmt.Sprintf("%s:*", lang))
			continue
		}
		for _, key := range LabelKeys {
			if isBlank(table[key]) {
				missing = append(missing, fmt.Sprintf("%s:%s", lang, key))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("label table incomplete: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Labels is the label table of one language.
type Labels struct {
	Language Language
	table    map[LabelKey]string
}

// LabelsFor returns the label table for lang.
func LabelsFor(lang Language) (Labels, error) {
	table, ok := labelTables[lang]
	if !ok {
		return Labels{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return Labels{Language: lang, table: table}, nil
}

// Get returns the label for key. Keys are validated at startup, so every
// LabelKeys entry resolves.
func (l Labels) Get(key LabelKey) string {
	return l.table[key]
}

// Map returns a copy of the table keyed by the string form of each key.
func (l Labels) Map() map[string]string {
	out := make(map[string]string, len(l.table))
	for key, value := range l.table {
		out[string(key)] = value
	}
	return out
}
