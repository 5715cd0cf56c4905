package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	Bullet, Link, Arrow                           string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		Bullet: "•", Link: "🔗", Arrow: "→",
	}
}

// SetTheme selects "classic", "neon" or "mono"; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			Bullet: "◆", Link: "🔗", Arrow: "⇒",
		}
	case "mono":
		disableColor = true
		current = Theme{
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			Bullet: "-", Link: "link:", Arrow: "->",
		}
	default:
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }
