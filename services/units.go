package services

// UnitOption is one selectable unit of measurement: the code stored on a
// material line and the label shown in the form.
type UnitOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// UnitOptions is the closed list of material units.
var UnitOptions = []UnitOption{
	{Value: "unidad", Label: "Unidad"},
	{Value: "bolsa", Label: "Bolsa"},
	{Value: "kg", Label: "Kg"},
	{Value: "m", Label: "m"},
	{Value: "m2", Label: "m²"},
	{Value: "m3", Label: "m³"},
	{Value: "l", Label: "Litro"},
	{Value: "juego", Label: "Juego"},
	{Value: "caja", Label: "Caja"},
	{Value: "otro", Label: "Otro"},
}

// DefaultUnit is the unit a new material line starts with.
const DefaultUnit = "unidad"

// IsKnownUnit reports whether code is one of UnitOptions.
func IsKnownUnit(code string) bool {
	for _, u := range UnitOptions {
		if u.Value == code {
			return true
		}
	}
	return false
}

// UnitLabel returns the display label for a unit code, or the code itself
// when it is not in the list.
func UnitLabel(code string) string {
	for _, u := range UnitOptions {
		if u.Value == code {
			return u.Label
		}
	}
	return code
}
