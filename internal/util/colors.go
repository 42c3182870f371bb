package util

import "github.com/fatih/color"

var colorsOptions = map[string]color.Attribute{
	"red":       color.FgHiRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"cyan":      color.FgCyan,
	"underline": color.Underline,
	"bold":      color.Bold,
	"faint":     color.Faint,
}

// ColorOutput wraps text with the named attributes. Unknown names are
// ignored, and nothing is added when colours are disabled.
func ColorOutput(text string, colorOptions ...string) string {
	attributes := []color.Attribute{}
	for _, option := range colorOptions {
		if o, ok := colorsOptions[option]; ok {
			attributes = append(attributes, o)
		}
	}
	c := color.New(attributes...)
	return c.Sprint(text)
}

// DisableColor turns off colour output process-wide.
func DisableColor(disabled bool) {
	if disabled {
		color.NoColor = true
	}
}
