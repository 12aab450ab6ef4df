package main

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds color formatters for human output
type styles struct {
	expression *color.Color
	label      *color.Color
	positions  *color.Color
	valid      *color.Color
	invalid    *color.Color
	problem    *color.Color
}

// newStyles creates color formatters
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		expression: color.New(color.Bold, color.FgHiWhite),
		label:      color.New(color.FgHiBlue),
		positions:  color.New(color.FgHiGreen),
		valid:      color.New(color.Bold, color.FgGreen),
		invalid:    color.New(color.Bold, color.FgRed),
		problem:    color.New(color.FgYellow),
	}

	if !enabled {
		s.expression.DisableColor()
		s.label.DisableColor()
		s.positions.DisableColor()
		s.valid.DisableColor()
		s.invalid.DisableColor()
		s.problem.DisableColor()
	}

	return s
}

// configureColor applies --color and returns matching styles.
func configureColor() *styles {
	switch colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default: // "auto"
		if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	}
	return newStyles(!color.NoColor)
}

func (s *styles) verdict(valid bool) string {
	if valid {
		return s.valid.Sprint("valid")
	}
	return s.invalid.Sprint("invalid")
}
