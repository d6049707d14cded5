// Package tree provides a generic walk over a folder adjacency list.
// Descendant computation lives here, against a plain in-memory index,
// rather than inside a storage-specific recursive query.
package tree

// Node is the minimal adjacency view of a folder: its ID and the ID of its
// parent, nil for roots.
type Node struct {
	ID       string
	ParentID *string
}

// Index is a parent-to-children view of a folder forest.
type Index struct {
	children map[string][]string
	present  map[string]bool
}

// NewIndex builds an Index from a flat node list. Nodes whose parent is not
// in the list are treated as roots of their own subtree; they are still
// reachable by ID.
func NewIndex(nodes []Node) *Index {
	ix := &Index{
		children: make(map[string][]string, len(nodes)),
		present:  make(map[string]bool, len(nodes)),
	}
	for _, n := range nodes {
		ix.present[n.ID] = true
		if n.ParentID != nil {
			ix.children[*n.ParentID] = append(ix.children[*n.ParentID], n.ID)
		}
	}
	return ix
}

// Descendants returns rootID plus every node transitively parented under it,
// in depth-first order. Returns nil if rootID is not in the index. The
// visited set guards the walk against malformed input; well-formed folder
// data is acyclic because parents are fixed at creation.
func (ix *Index) Descendants(rootID string) []string {
	if !ix.present[rootID] {
		return nil
	}

	var out []string
	visited := make(map[string]bool)
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)
		// push in reverse so children pop in insertion order
		kids := ix.children[id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}
