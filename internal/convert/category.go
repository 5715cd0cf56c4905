package convert

import (
	"strings"

	"github.com/idilsaglam/engnotes/internal/apperr"
)

// Category is one of the five supported physical quantities.
type Category int

const (
	Length Category = iota
	Mass
	Temperature
	Pressure
	Energy
)

// Categories lists every category in display order.
var Categories = []Category{Length, Mass, Temperature, Pressure, Energy}

func (c Category) String() string {
	switch c {
	case Length:
		return "Length"
	case Mass:
		return "Mass"
	case Temperature:
		return "Temperature"
	case Pressure:
		return "Pressure"
	case Energy:
		return "Energy"
	}
	return "Category(?)"
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool { return c >= Length && c <= Energy }

// Reference returns the symbol of the unit every other unit is expressed in.
func (c Category) Reference() string {
	us := c.Units()
	if len(us) == 0 {
		return ""
	}
	return us[0].Symbol
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(name string) (Category, error) {
	n := strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(n, c.String()) {
			return c, nil
		}
	}
	return 0, &apperr.UnknownUnitError{Unit: name}
}

// Unit is a member of a category. Factor is the amount of the category's
// reference unit equal to one of this unit; it is zero for temperature units.
type Unit struct {
	Symbol string
	Factor float64
}

var (
	lengthUnits = []Unit{
		{"m", 1.0}, {"cm", 0.01}, {"mm", 0.001}, {"km", 1000.0}, {"inch", 0.0254}, {"ft", 0.3048},
	}
	massUnits = []Unit{
		{"kg", 1.0}, {"g", 0.001}, {"mg", 0.000001}, {"ton", 1000.0}, {"lb", 0.453592},
	}
	temperatureUnits = []Unit{
		{Symbol: Celsius}, {Symbol: Fahrenheit}, {Symbol: Kelvin},
	}
	pressureUnits = []Unit{
		{"Pa", 1.0}, {"kPa", 1000.0}, {"MPa", 1000000.0}, {"bar", 100000.0}, {"psi", 6894.76}, {"atm", 101325.0},
	}
	energyUnits = []Unit{
		{"J", 1.0}, {"kJ", 1000.0}, {"cal", 4.184}, {"kcal", 4184.0}, {"Wh", 3600.0}, {"kWh", 3600000.0},
	}
)

// Units returns the category's units, reference unit first.
func (c Category) Units() []Unit {
	var src []Unit
	switch c {
	case Length:
		src = lengthUnits
	case Mass:
		src = massUnits
	case Temperature:
		src = temperatureUnits
	case Pressure:
		src = pressureUnits
	case Energy:
		src = energyUnits
	}
	out := make([]Unit, len(src))
	copy(out, src)
	return out
}

// Symbols returns the unit symbols of c in display order.
func (c Category) Symbols() []string {
	us := c.Units()
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.Symbol
	}
	return out
}

// Lookup finds a unit by its exact symbol.
func (c Category) Lookup(symbol string) (Unit, bool) {
	for _, u := range c.Units() {
		if u.Symbol == symbol {
			return u, true
		}
	}
	return Unit{}, false
}

var temperatureAliases = map[string]string{
	"C": Celsius, "c": Celsius, "degC": Celsius, "celsius": Celsius,
	"F": Fahrenheit, "f": Fahrenheit, "degF": Fahrenheit, "fahrenheit": Fahrenheit,
	"k": Kelvin, "kelvin": Kelvin,
}

// NormalizeUnit maps typed temperature aliases such as "C" or "degF" to their
// canonical symbols. Other input is returned trimmed but otherwise unchanged.
func NormalizeUnit(c Category, s string) string {
	s = strings.TrimSpace(s)
	if c == Temperature {
		if canon, ok := temperatureAliases[s]; ok {
			return canon
		}
	}
	return s
}
