package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "loc", "location":
		pterm.Info.Println("Location")
		pterm.Println(`
	The interpreter carries a current design space location. Commands
	like 'glyph', 'kern' and 'info' interpolate at that location.

	loc:Weight=620     move one axis (by name or tag)
	loc                reset to the document default

	Values are design space coordinates, i.e. after any axis mapping.
	`)
	case "glyph", "kern", "info":
		pterm.Info.Println("Interpolation commands")
		pterm.Println(`
	glyph:<name>           interpolate and print one glyph
	kern:<first>:<second>  interpolated kerning value with group fallback
	info                   interpolated font metrics

	All three cut an ad-hoc instance at the current location.
	`)
	case "generate":
		pterm.Info.Println("Generate")
		pterm.Println(`
	generate               generate all declared instances
	generate:<style>       generate one instance by style name
	`)
	default:
		pterm.Info.Println("Commands: axes sources instances rules loc glyph kern info check generate quit")
		pterm.Println("Use help:<command> for details.")
	}
}
