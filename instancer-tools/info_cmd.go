package main

import (
	"fmt"
	"strings"

	"github.com/thatisuday/commando"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	withFonts := mustFlagBool(flags["fonts"], "fonts")
	doc := mustLoadDocument(args["designspace"].Value, withFonts)

	fmt.Printf("Path: %s\n", doc.Path)
	fmt.Printf("Axes (%d):\n", len(doc.Axes))
	for i := range doc.Axes {
		axis := &doc.Axes[i]
		kind := ""
		if axis.IsDiscrete() {
			kind = " discrete"
		}
		mapped := ""
		if axis.HasMap() {
			mapped = fmt.Sprintf(" map=%d points", len(axis.Map))
		}
		fmt.Printf("  %-12s tag=%s min=%g default=%g max=%g%s%s\n",
			axis.Name, axis.Tag, axis.Minimum, axis.Default, axis.Maximum, kind, mapped)
	}

	order := doc.AxisOrder()
	fmt.Printf("Sources (%d):\n", len(doc.Sources))
	for _, src := range doc.Sources {
		layer := ""
		if src.IsSparseLayer() {
			layer = fmt.Sprintf(" layer=%s", src.LayerName)
		}
		stats := ""
		if src.Font != nil {
			stats = fmt.Sprintf(" glyphs=%d kerning=%d",
				src.Font.DefaultLayer().Len(), len(src.Font.Kerning))
		}
		fmt.Printf("  %-24s at %s%s%s\n", src.DisplayName(),
			formatLocation(src.Location, order), layer, stats)
	}

	fmt.Printf("Instances (%d):\n", len(doc.Instances))
	for _, inst := range doc.Instances {
		fmt.Printf("  %-24s at %s\n", inst.DisplayName(),
			formatLocation(inst.Location.Isotropic(), order))
	}

	if len(doc.Rules) > 0 {
		fmt.Printf("Rules (%d):\n", len(doc.Rules))
		for _, rule := range doc.Rules {
			swaps := make([]string, len(rule.Subs))
			for i, sub := range rule.Subs {
				swaps[i] = sub.Name + "->" + sub.With
			}
			fmt.Printf("  %-24s %s\n", rule.Name, strings.Join(swaps, " "))
		}
	}

	if def := doc.FindDefault(); def != nil {
		fmt.Printf("Default source: %s\n", def.DisplayName())
	} else {
		fmt.Printf("Default source: NONE (document cannot be instantiated)\n")
	}
}
