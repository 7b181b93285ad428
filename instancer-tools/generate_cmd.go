package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/instancer"
	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/ufo"
	"github.com/thatisuday/commando"
)

func runGenerateCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	doc := mustLoadDocument(args["designspace"].Value, true)

	inst, err := instancer.NewInstantiator(doc, &instancer.Options{
		RoundGeometry: mustFlagBool(flags["round"], "round"),
	})
	if err != nil {
		fatalf("%v", err)
	}

	selected := doc.Instances
	if raw := strings.TrimSpace(args["instances"].Value); raw != "" {
		selected = selectInstances(doc, splitCSVSpace(raw))
	}
	if len(selected) == 0 {
		fatalf("the document declares no instances")
	}

	order := doc.AxisOrder()
	failed := 0
	for _, descriptor := range selected {
		font, err := inst.GenerateInstance(descriptor)
		if err != nil {
			fmt.Printf("%-24s FAILED: %v\n", descriptor.DisplayName(), err)
			failed++
			continue
		}
		fmt.Printf("%-24s at %s: glyphs=%d kerning=%d upm=%s\n",
			descriptor.DisplayName(),
			formatLocation(inst.DesignLocation(descriptor), order),
			font.DefaultLayer().Len(), len(font.Kerning), formatUPM(font))
	}
	if failed > 0 {
		fatalf("%d of %d instances failed", failed, len(selected))
	}
}

func selectInstances(doc *ds.Document, names []string) []*ds.InstanceDescriptor {
	var out []*ds.InstanceDescriptor
	for _, name := range names {
		found := false
		for _, inst := range doc.Instances {
			if inst.StyleName == name || inst.Name == name {
				out = append(out, inst)
				found = true
			}
		}
		if !found {
			fatalf("no instance named %q in the document", name)
		}
	}
	return out
}

func formatUPM(font *ufo.Font) string {
	if font.Info == nil || font.Info.UnitsPerEm == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *font.Info.UnitsPerEm)
}
