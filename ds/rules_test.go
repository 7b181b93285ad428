package ds

import (
	"testing"

	"github.com/npillmayer/instancer/varmodel"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func fp(v float64) *float64 { return &v }

func TestRuleAppliesAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	rule := Rule{
		Name: "BRACKET.dollar",
		ConditionSets: [][]Condition{
			{{Name: "Weight", Minimum: fp(500), Maximum: fp(900)}},
		},
		Subs: []Substitution{{Name: "dollar", With: "dollar.nostroke"}},
	}
	cases := []struct {
		loc     varmodel.Location
		applies bool
	}{
		{varmodel.Location{"Weight": 400}, false},
		{varmodel.Location{"Weight": 500}, true},
		{varmodel.Location{"Weight": 700}, true},
		{varmodel.Location{"Weight": 900}, true},
		{varmodel.Location{"Weight": 901}, false},
	}
	for _, c := range cases {
		if got := rule.AppliesAt(c.loc); got != c.applies {
			t.Errorf("AppliesAt(%v) = %v, want %v", c.loc, got, c.applies)
		}
	}
}

func TestRuleOpenEndedCondition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	rule := Rule{
		Name:          "heavy",
		ConditionSets: [][]Condition{{{Name: "Weight", Minimum: fp(600)}}},
		Subs:          []Substitution{{Name: "a", With: "a.alt"}},
	}
	if rule.AppliesAt(varmodel.Location{"Weight": 10000}) != true {
		t.Error("nil maximum must be open-ended")
	}
	if rule.AppliesAt(varmodel.Location{"Weight": 599}) {
		t.Error("minimum bound ignored")
	}
}

func TestRuleUnknownAxisNeverApplies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	rule := Rule{
		Name:          "bogus",
		ConditionSets: [][]Condition{{{Name: "Slant", Minimum: fp(0)}}},
		Subs:          []Substitution{{Name: "a", With: "a.alt"}},
	}
	if rule.AppliesAt(varmodel.Location{"Weight": 700}) {
		t.Error("condition on an axis absent from the location must not be satisfied")
	}
}

func TestRuleAlternativeConditionSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	rule := Rule{
		Name: "either",
		ConditionSets: [][]Condition{
			{{Name: "Weight", Minimum: fp(700)}},
			{{Name: "Width", Maximum: fp(60)}},
		},
		Subs: []Substitution{{Name: "a", With: "a.alt"}},
	}
	if !rule.AppliesAt(varmodel.Location{"Weight": 800, "Width": 100}) {
		t.Error("first condition set should satisfy the rule")
	}
	if !rule.AppliesAt(varmodel.Location{"Weight": 400, "Width": 50}) {
		t.Error("second condition set should satisfy the rule")
	}
	if rule.AppliesAt(varmodel.Location{"Weight": 400, "Width": 100}) {
		t.Error("no condition set is satisfied")
	}
}

func TestResolveSwaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	rules := []Rule{
		{
			Name:          "first",
			ConditionSets: [][]Condition{{{Name: "Weight", Minimum: fp(500)}}},
			Subs: []Substitution{
				{Name: "dollar", With: "dollar.nostroke"},
				{Name: "missing", With: "missing.alt"},
				{Name: "cent", With: "cent"},
			},
		},
		{
			Name:          "second",
			ConditionSets: [][]Condition{{{Name: "Weight", Minimum: fp(700)}}},
			Subs:          []Substitution{{Name: "Q", With: "Q.alt"}},
		},
	}
	glyphs := map[string]bool{"dollar": true, "cent": true, "Q": true}
	swaps := ResolveSwaps(rules, varmodel.Location{"Weight": 800}, glyphs)
	want := []Substitution{
		{Name: "dollar", With: "dollar.nostroke"},
		{Name: "Q", With: "Q.alt"},
	}
	if len(swaps) != len(want) {
		t.Fatalf("swaps = %v, want %v", swaps, want)
	}
	for i := range want {
		if swaps[i] != want[i] {
			t.Errorf("swap %d = %v, want %v", i, swaps[i], want[i])
		}
	}
	// below the second rule's threshold only the first swap remains
	swaps = ResolveSwaps(rules, varmodel.Location{"Weight": 550}, glyphs)
	if len(swaps) != 1 || swaps[0].Name != "dollar" {
		t.Errorf("swaps at 550 = %v", swaps)
	}
}
