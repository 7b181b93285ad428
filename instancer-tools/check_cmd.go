package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/instancer/compat"
	"github.com/thatisuday/commando"
)

func runCheckCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	doc := mustLoadDocument(args["designspace"].Value, true)

	checker, err := compat.New(doc)
	if err != nil {
		fatalf("%v", err)
	}
	problems := checker.Check()
	if len(problems) == 0 {
		fmt.Printf("all %d sources are interpolation compatible\n", len(doc.Sources))
		return
	}
	for _, p := range problems {
		fmt.Print(p)
	}
	fmt.Printf("%d compatibility problems found\n", len(problems))
	os.Exit(1)
}
