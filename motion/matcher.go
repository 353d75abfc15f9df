package motion

import (
	"sort"

	"github.com/matt-g-everett/motiontx/scene"
)

// PairTag classifies how a node was matched across two frames.
type PairTag string

const (
	TagName  PairTag = "name"
	TagID    PairTag = "id"
	TagEnter PairTag = "enter"
	TagExit  PairTag = "exit"
)

// A Pairing links a node across the from and to frames of a transition.
// Enter pairings have no From node; exit pairings have no To node.
type Pairing struct {
	Tag  PairTag
	From *scene.Node
	To   *scene.Node
}

// Node returns the pairing's defining node: the to-side when present,
// otherwise the from-side.
func (p Pairing) Node() *scene.Node {
	if p.To != nil {
		return p.To
	}
	return p.From
}

// Match pairs the nodes of two frames. Nodes are matched by display name
// first (positionally by z order within same-named groups, so renamed or
// shuffled layers keep continuity and duplicate names resolve
// deterministically), then by identity; the remainder is classified as
// entering or exiting. The result is ordered ascending by the defining
// node's z index, which fixes paint and stagger order downstream.
func Match(from, to []*scene.Node) []Pairing {
	usedFrom := make(map[string]bool)
	usedTo := make(map[string]bool)

	toByName := make(map[string][]*scene.Node)
	for _, n := range to {
		toByName[n.Name] = append(toByName[n.Name], n)
	}
	fromByName := make(map[string][]*scene.Node)
	for _, n := range from {
		fromByName[n.Name] = append(fromByName[n.Name], n)
	}

	var pairings []Pairing

	// Name pass, walked in from-list order for determinism.
	seenNames := make(map[string]bool)
	for _, n := range from {
		if seenNames[n.Name] {
			continue
		}
		seenNames[n.Name] = true

		fromGroup := byZ(fromByName[n.Name])
		toGroup := byZ(toByName[n.Name])
		if len(toGroup) == 0 {
			continue
		}
		count := len(fromGroup)
		if len(toGroup) < count {
			count = len(toGroup)
		}
		for i := 0; i < count; i++ {
			pairings = append(pairings, Pairing{Tag: TagName, From: fromGroup[i], To: toGroup[i]})
			usedFrom[fromGroup[i].ID] = true
			usedTo[toGroup[i].ID] = true
		}
	}

	// Identity pass over the unmatched remainder.
	toByID := make(map[string]*scene.Node)
	for _, n := range to {
		toByID[n.ID] = n
	}
	for _, n := range from {
		if usedFrom[n.ID] {
			continue
		}
		if t, ok := toByID[n.ID]; ok && !usedTo[n.ID] {
			pairings = append(pairings, Pairing{Tag: TagID, From: n, To: t})
			usedFrom[n.ID] = true
			usedTo[n.ID] = true
		}
	}

	for _, n := range from {
		if !usedFrom[n.ID] {
			pairings = append(pairings, Pairing{Tag: TagExit, From: n})
		}
	}
	for _, n := range to {
		if !usedTo[n.ID] {
			pairings = append(pairings, Pairing{Tag: TagEnter, To: n})
		}
	}

	sort.SliceStable(pairings, func(i, j int) bool {
		return pairings[i].Node().Z < pairings[j].Node().Z
	})
	return pairings
}

// byZ returns a copy of nodes sorted ascending by z index.
func byZ(nodes []*scene.Node) []*scene.Node {
	sorted := make([]*scene.Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Z < sorted[j].Z })
	return sorted
}
