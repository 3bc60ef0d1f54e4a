package objsave

import (
	"maps"
	"slices"
)

// Node is a record together with the records nested directly inside it.
// Codecs that write nesting explicitly use it to turn a flat stream back
// into a tree.
type Node struct {
	Record   Record
	Contents []*Node
}

// Nest groups a contents-first stream into trees. Each record claims the
// records waiting one level below it. Records never claimed by an owner
// are returned as extra roots after the others, shallowest first.
func Nest(recs []Record) []*Node {
	pending := map[int][]*Node{}
	var roots []*Node

	for _, rec := range recs {
		d := rec.Depth()
		n := &Node{Record: rec, Contents: pending[d+1]}
		delete(pending, d+1)

		if d == 0 {
			roots = append(roots, n)
			continue
		}
		pending[d] = append(pending[d], n)
	}

	for _, d := range slices.Sorted(maps.Keys(pending)) {
		roots = append(roots, pending[d]...)
	}
	return roots
}
