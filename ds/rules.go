package ds

import "github.com/npillmayer/instancer/varmodel"

// Condition restricts a rule to a sub-region of the design space along
// one axis. Nil bounds are open-ended.
type Condition struct {
	Name    string
	Minimum *float64
	Maximum *float64
}

// Substitution is one glyph swap instruction of a rule: at matching
// locations, Name's shape is exchanged with With's.
type Substitution struct {
	Name string
	With string
}

// Rule is a conditional glyph-substitution instruction. It applies at a
// location when any one of its condition sets is fully satisfied.
type Rule struct {
	Name          string
	ConditionSets [][]Condition
	Subs          []Substitution
}

// AppliesAt evaluates the rule's condition sets against a (merged,
// design space) location. Conditions naming an axis absent from the
// location are unsatisfiable; such rules never fire and a warning is
// traced since this is almost always a document defect.
func (r *Rule) AppliesAt(loc varmodel.Location) bool {
	for _, conds := range r.ConditionSets {
		if conditionsMet(conds, loc, r.Name) {
			return true
		}
	}
	return false
}

func conditionsMet(conds []Condition, loc varmodel.Location, ruleName string) bool {
	for _, cond := range conds {
		v, ok := loc[cond.Name]
		if !ok {
			tracer().Infof("rule %q conditions on unknown axis %q, will never apply",
				ruleName, cond.Name)
			return false
		}
		if cond.Minimum != nil && v < *cond.Minimum {
			return false
		}
		if cond.Maximum != nil && v > *cond.Maximum {
			return false
		}
	}
	return true
}

// ResolveSwaps collects the glyph swaps to perform at a location: for
// every satisfied rule, in document order, every substitution pair
// whose source glyph exists in the glyph set, in declared order. The
// result is the exact sequence of swaps to apply; order matters when a
// later substitution references a previously swapped name.
func ResolveSwaps(rules []Rule, loc varmodel.Location, glyphNames map[string]bool) []Substitution {
	var swaps []Substitution
	for i := range rules {
		rule := &rules[i]
		if !rule.AppliesAt(loc) {
			continue
		}
		for _, sub := range rule.Subs {
			if !glyphNames[sub.Name] {
				continue
			}
			if sub.Name == sub.With {
				continue // self-swap is a no-op
			}
			swaps = append(swaps, sub)
		}
	}
	return swaps
}
