package violations

// pendingSet counts in-flight toggles per id. An id stays pending until every
// toggle started for it has settled.
type pendingSet map[string]int

func (p pendingSet) add(id string) {
	p[id]++
}

func (p pendingSet) done(id string) {
	if p[id] <= 1 {
		delete(p, id)
		return
	}
	p[id]--
}

func (p pendingSet) has(id string) bool {
	return p[id] > 0
}

func (p pendingSet) ids() []string {
	result := make([]string, 0, len(p))
	for id := range p {
		result = append(result, id)
	}
	return result
}
