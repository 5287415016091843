package merge

import "world-merger/core/region"

// Result counts what Merge did per source slot.
type Result struct {
	// Inserted counts source slots the target did not have.
	Inserted int `json:"inserted"`
	// Replaced counts overlapping slots where the rule chose the source.
	Replaced int `json:"replaced"`
	// Kept counts overlapping slots where the rule kept the target.
	Kept int `json:"kept"`
	// Identical counts overlapping slots whose records were already equal,
	// whichever way the rule decided.
	Identical int `json:"identical"`
}

// Add accumulates o into r.
func (r *Result) Add(o Result) {
	r.Inserted += o.Inserted
	r.Replaced += o.Replaced
	r.Kept += o.Kept
	r.Identical += o.Identical
}

// Changed reports whether Merge modified the target.
func (r Result) Changed() bool {
	return r.Inserted > 0 || r.Replaced > 0
}

// Merge folds source into target according to rule. Only target is
// modified. Each slot is decided independently, so the outcome does not
// depend on map iteration order.
func Merge(target, source region.Collection, rule Rule) Result {
	var res Result
	for slot, incoming := range source {
		existing, ok := target[slot]
		if !ok {
			target[slot] = incoming.Clone()
			res.Inserted++
			continue
		}

		if existing.Equal(incoming) {
			res.Identical++
		}

		if rule.ShouldReplace(existing, incoming) {
			target[slot] = incoming.Clone()
			res.Replaced++
		} else {
			res.Kept++
		}
	}
	return res
}
