package ui

import (
	"fmt"
	"sort"
	"strings"
)

// Theme bundles palette, glyphs and box borders for CLI output.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string

	BoxUnchecked, BoxChecked               string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string

	SymDone, SymPending     string
	SymOK, SymFail, SymHint string
	Folder                  string

	// NoColor themes print plain text even on a terminal.
	NoColor bool
}

var themes = map[string]Theme{
	"classic": {
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•",
		SymOK: "✔", SymFail: "✖", SymHint: "›",
		Folder: "▸",
	},
	"neon": {
		Title: fgMagenta, Muted: fgGray, Accent: fgCyan,
		Success: fgGreen, Error: fgRed, Pending: fgGold,
		BoxUnchecked: "◻", BoxChecked: "◼",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•",
		SymOK: "✔", SymFail: "✖", SymHint: "→",
		Folder: "❯",
	},
	"mono": {
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
		SymDone: "x", SymPending: "-",
		SymOK: "ok:", SymFail: "error:", SymHint: "hint:",
		Folder: ">",
		NoColor: true,
	},
}

var current = themes["classic"]

// ThemeNames lists the selectable themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetTheme selects a theme by name. An empty name picks classic.
func SetTheme(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "classic"
	}
	t, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (want %s)", name, strings.Join(ThemeNames(), "|"))
	}
	current = t
	return nil
}

// Current returns the active theme.
func Current() Theme { return current }
