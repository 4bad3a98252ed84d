package ecs

import "sort"

// intersect returns slot ids present in every set, ordered ascending. A nil
// set means no entity can match.
func intersect(sets ...*SparseSet) []int {
	if len(sets) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	out := make([]int, 0, sets[smallest].Len())
	for _, id := range sets[smallest].denseEntities {
		ok := true
		for i, s := range sets {
			if i != smallest && !s.Has(id) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}
