// Package convert implements engineering unit conversion for a fixed set of
// categories. Linear categories pivot through a reference unit; temperature
// pivots through Celsius with affine transforms.
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/idilsaglam/engnotes/internal/apperr"
)

// Temperature symbols.
const (
	Celsius    = "°C"
	Fahrenheit = "°F"
	Kelvin     = "K"
)

// kelvinOffset is 0 °C expressed in kelvin.
const kelvinOffset = 273.15

// DefaultPrecision is the number of decimals used when rendering results.
const DefaultPrecision = 4

// Convert converts value from one unit of c to another. The result is not
// rounded. Negative values are accepted only for Temperature, where any
// finite value converts.
func Convert(c Category, from, to string, value float64) (float64, error) {
	if !c.Valid() {
		return 0, &apperr.UnknownUnitError{Unit: c.String()}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &apperr.InvalidValueError{Input: formatRaw(value), Reason: "not a finite number"}
	}

	switch c {
	case Temperature:
		return convertTemperature(from, to, value)
	default:
		return convertLinear(c, from, to, value)
	}
}

func convertLinear(c Category, from, to string, value float64) (float64, error) {
	fu, ok := c.Lookup(from)
	if !ok {
		return 0, &apperr.UnknownUnitError{Category: c.String(), Unit: from}
	}
	tu, ok := c.Lookup(to)
	if !ok {
		return 0, &apperr.UnknownUnitError{Category: c.String(), Unit: to}
	}
	if value < 0 {
		return 0, &apperr.InvalidValueError{Input: formatRaw(value), Reason: "must not be negative for " + c.String()}
	}
	if from == to {
		return value, nil
	}
	return value * fu.Factor / tu.Factor, nil
}

func convertTemperature(from, to string, value float64) (float64, error) {
	celsius, err := toCelsius(from, value)
	if err != nil {
		return 0, err
	}
	if !isTemperature(to) {
		return 0, &apperr.UnknownUnitError{Category: Temperature.String(), Unit: to}
	}
	if from == to {
		return value, nil
	}
	return fromCelsius(to, celsius), nil
}

func isTemperature(symbol string) bool {
	_, ok := Temperature.Lookup(symbol)
	return ok
}

func toCelsius(from string, v float64) (float64, error) {
	switch from {
	case Celsius:
		return v, nil
	case Fahrenheit:
		return (v - 32) * 5 / 9, nil
	case Kelvin:
		return v - kelvinOffset, nil
	}
	return 0, &apperr.UnknownUnitError{Category: Temperature.String(), Unit: from}
}

// fromCelsius expects a symbol already checked by isTemperature.
func fromCelsius(to string, c float64) float64 {
	switch to {
	case Fahrenheit:
		return c*9/5 + 32
	case Kelvin:
		return c + kelvinOffset
	}
	return c
}

// ParseValue parses user input into a finite number.
func ParseValue(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, &apperr.InvalidValueError{Input: s, Reason: "empty"}
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, &apperr.InvalidValueError{Input: s, Reason: "not a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &apperr.InvalidValueError{Input: s, Reason: "not a finite number"}
	}
	return v, nil
}

// FormatValue renders v with a fixed number of decimals.
func FormatValue(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// FormatResult renders "value from = result to".
func FormatResult(value float64, from string, result float64, to string, precision int) string {
	return fmt.Sprintf("%s %s = %s %s",
		FormatValue(value, precision), from,
		FormatValue(result, precision), to)
}

func formatRaw(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
