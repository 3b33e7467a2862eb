package ecs

// intersectEntities returns live entities present in every set.
func intersectEntities(w *World, sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	// iterate smallest set
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	base := smallest.Entities()
	out := make([]Entity, 0, len(base))
	for _, e := range base {
		if !IsAlive(w, e) {
			continue
		}
		ok := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}
