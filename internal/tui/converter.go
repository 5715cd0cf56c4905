package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/engnotes/internal/convert"
)

type convField int

const (
	fieldCategory convField = iota
	fieldFrom
	fieldTo
	fieldValue
	fieldCount
)

// converterModel is the unit conversion form. The result is recomputed from
// the current field values on every render.
type converterModel struct {
	category  convert.Category
	fromIdx   int
	toIdx     int
	focus     convField
	value     textinput.Model
	precision int
}

func newConverter(precision int) converterModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "value"
	ti.CharLimit = 32
	ti.SetValue("1")
	return converterModel{
		category:  convert.Length,
		fromIdx:   0,
		toIdx:     1,
		focus:     fieldCategory,
		value:     ti,
		precision: precision,
	}
}

func (c converterModel) units() []string { return c.category.Symbols() }

func (c converterModel) fromUnit() string { return c.units()[c.fromIdx] }
func (c converterModel) toUnit() string   { return c.units()[c.toIdx] }

// editing reports whether keystrokes are going into the value input.
func (c converterModel) editing() bool { return c.focus == fieldValue }

// result converts the current input and renders the result line.
func (c converterModel) result() (string, error) {
	v, err := convert.ParseValue(c.value.Value())
	if err != nil {
		return "", err
	}
	from, to := c.fromUnit(), c.toUnit()
	out, err := convert.Convert(c.category, from, to, v)
	if err != nil {
		return "", err
	}
	return convert.FormatResult(v, from, out, to, c.precision), nil
}

func (c converterModel) update(msg tea.Msg) (converterModel, tea.Cmd) {
	km, isKey := msg.(tea.KeyMsg)
	if !isKey {
		if c.editing() {
			var cmd tea.Cmd
			c.value, cmd = c.value.Update(msg)
			return c, cmd
		}
		return c, nil
	}

	switch {
	case key.Matches(km, keys.Up):
		return c.setFocus((c.focus + fieldCount - 1) % fieldCount)
	case key.Matches(km, keys.Down):
		return c.setFocus((c.focus + 1) % fieldCount)
	}

	if c.editing() {
		var cmd tea.Cmd
		c.value, cmd = c.value.Update(msg)
		return c, cmd
	}

	switch {
	case key.Matches(km, keys.Prev):
		c.cycle(-1)
	case key.Matches(km, keys.Next):
		c.cycle(1)
	case key.Matches(km, keys.Swap):
		c.fromIdx, c.toIdx = c.toIdx, c.fromIdx
	}
	return c, nil
}

func (c converterModel) setFocus(f convField) (converterModel, tea.Cmd) {
	c.focus = f
	if f == fieldValue {
		return c, c.value.Focus()
	}
	c.value.Blur()
	return c, nil
}

func (c *converterModel) cycle(step int) {
	wrap := func(i, n int) int { return ((i+step)%n + n) % n }
	switch c.focus {
	case fieldCategory:
		n := len(convert.Categories)
		c.category = convert.Categories[wrap(int(c.category), n)]
		c.fromIdx = 0
		c.toIdx = 0
		if len(c.units()) > 1 {
			c.toIdx = 1
		}
	case fieldFrom:
		c.fromIdx = wrap(c.fromIdx, len(c.units()))
	case fieldTo:
		c.toIdx = wrap(c.toIdx, len(c.units()))
	}
}

func (c converterModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Unit converter") + "\n\n")

	cats := make([]string, len(convert.Categories))
	for i, cat := range convert.Categories {
		cats[i] = cat.String()
	}
	b.WriteString(c.row(fieldCategory, "Category", selector(cats, int(c.category))))
	b.WriteString(c.row(fieldFrom, "From", selector(c.units(), c.fromIdx)))
	b.WriteString(c.row(fieldTo, "To", selector(c.units(), c.toIdx)))
	b.WriteString(c.row(fieldValue, "Value", c.value.View()))
	b.WriteString("\n")

	if line, err := c.result(); err != nil {
		b.WriteString(errorStyle.Render("⚠ " + err.Error()))
	} else {
		b.WriteString(successStyle.Render(line))
	}
	b.WriteString("\n")
	if c.category == convert.Temperature {
		b.WriteString(mutedStyle.Render("Temperature values may be negative.") + "\n")
	}
	return b.String()
}

func (c converterModel) row(f convField, label, body string) string {
	prefix := "  "
	if c.focus == f {
		prefix = selectedStyle.Render(">") + " "
	}
	return fmt.Sprintf("%s%s %s\n", prefix, labelStyle.Render(label), body)
}

// selector renders all options with the chosen one highlighted.
func selector(options []string, chosen int) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if i == chosen {
			parts[i] = accentStyle.Render("[" + o + "]")
		} else {
			parts[i] = mutedStyle.Render(" " + o + " ")
		}
	}
	return strings.Join(parts, "")
}
