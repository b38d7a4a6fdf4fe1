package internal

import "github.com/google/go-cmp/cmp"

// Diff is the result shape of a structural comparison: which keys are
// brand new, which existing keys changed value, which keys disappeared,
// and whether any of the three are non-empty (Changed is just a
// convenience so callers don't re-derive it from three slice lengths).
type Diff struct {
	Add     []string
	Change  []string
	Remove  []string
	Changed bool
}

// StructEquals is the default change-detection rule: cmp.Equal's deep
// structural comparison, used uniformly for every kind of value.
// Pointers, maps and slices are compared by what they hold, not by
// reference identity — a closer match to "would look identical to the
// consumer" for a library whose values are plain data.
func StructEquals(a, b any) bool {
	return cmp.Equal(a, b)
}

// DiffKeyed compares an old and a new keyed collection, expressed as
// parallel (keys, values) pairs sharing the same keying scheme (List's
// key strategy, or a record's field names). It is the sole interface
// between a whole-value write and the granular add/change/remove
// operations Store/List realize it with.
func DiffKeyed(oldKeys []string, oldVals map[string]any, newKeys []string, newVals map[string]any, equals func(a, b any) bool) Diff {
	if equals == nil {
		equals = StructEquals
	}

	oldSet := make(map[string]struct{}, len(oldKeys))
	for _, k := range oldKeys {
		oldSet[k] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newKeys))
	for _, k := range newKeys {
		newSet[k] = struct{}{}
	}

	var d Diff
	for _, k := range newKeys {
		if _, existed := oldSet[k]; !existed {
			d.Add = append(d.Add, k)
			continue
		}
		if !equals(oldVals[k], newVals[k]) {
			d.Change = append(d.Change, k)
		}
	}
	for _, k := range oldKeys {
		if _, still := newSet[k]; !still {
			d.Remove = append(d.Remove, k)
		}
	}

	d.Changed = len(d.Add) > 0 || len(d.Change) > 0 || len(d.Remove) > 0
	return d
}
