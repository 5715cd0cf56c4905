package cli

import (
	"fmt"
	"strconv"

	"github.com/idilsaglam/engnotes/internal/convert"
	"github.com/idilsaglam/engnotes/internal/store/jsonstore"
	"github.com/idilsaglam/engnotes/internal/ui"
)

// -------------- rendering helpers --------------

const maxLineWidth = 80

func unitLines(cats []convert.Category) []string {
	t := ui.Current()
	var lines []string
	for i, c := range cats {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, fmt.Sprintf("%s  %s",
			ui.C(t.Title, c.String()),
			ui.C(t.Muted, "reference "+c.Reference())))
		for _, u := range c.Units() {
			factor := "affine, via °C"
			if c != convert.Temperature {
				factor = "= " + strconv.FormatFloat(u.Factor, 'g', -1, 64) + " " + c.Reference()
			}
			lines = append(lines, fmt.Sprintf("  %s 1 %-5s %s", t.Bullet, u.Symbol, ui.C(t.Muted, factor)))
		}
	}
	return lines
}

func noteLines(s *jsonstore.Store) []string {
	t := ui.Current()
	notes := s.List()
	lines := []string{
		fmt.Sprintf("%s  %s %d", ui.C(t.Title, "Notes"), ui.C(t.Accent, "Total"), len(notes)),
		"",
	}
	if len(notes) == 0 {
		lines = append(lines, ui.C(t.Muted, "no notes yet"))
		lines = append(lines, "")
		lines = append(lines, ui.C(t.Muted, "Tip: add with `engnotes add \"Title\" \"Content\"`"))
		return lines
	}
	for i, n := range notes {
		lines = append(lines, fmt.Sprintf("%s %s", ui.C(t.Muted, fmt.Sprintf("%2d.", i+1)), ui.Truncate(n.Title, maxLineWidth)))
		lines = append(lines, "    "+ui.Truncate(firstLine(n.Content), maxLineWidth))
		if n.HasLink() {
			lines = append(lines, "    "+ui.C(t.Accent, t.Link+" "+n.Link))
		}
	}
	return lines
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
