// Package tree turns a flat backlog into a rooted forest.
//
// Items reference their parent by id. [Build] indexes every item by id and
// then links each one under its parent, keeping input order among siblings.
// Building never fails: an item whose parent does not exist is promoted to a
// root, and the anomaly is recorded on the [Forest] so callers that want
// strict input can reject it with [Forest.Validate].
package tree

import (
	"fmt"
	"strings"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/errors"
)

// Node is a backlog item with its ordered children.
type Node struct {
	Item     backlog.Item
	Parent   *Node
	Children []*Node
}

// ID returns the item id.
func (n *Node) ID() string { return n.Item.ID }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Forest is the result of [Build].
type Forest struct {
	// Roots in input order.
	Roots []*Node

	// Orphans lists ids whose parentId did not resolve (or pointed at the
	// item itself). They are present in Roots.
	Orphans []string

	// Duplicates lists ids that occurred more than once. Children resolve to
	// the first occurrence; later ones are kept as separate nodes.
	Duplicates []string

	// Unreachable lists ids that are not reachable from any root. This only
	// happens when parent references form a cycle.
	Unreachable []string

	size int
}

// Build links items into a forest in O(N).
func Build(items []backlog.Item) *Forest {
	f := &Forest{size: len(items)}
	if len(items) == 0 {
		return f
	}

	nodes := make([]*Node, len(items))
	index := make(map[string]*Node, len(items))
	seenDup := make(map[string]bool)
	for i, it := range items {
		n := &Node{Item: it}
		nodes[i] = n
		if _, ok := index[it.ID]; ok {
			if !seenDup[it.ID] {
				seenDup[it.ID] = true
				f.Duplicates = append(f.Duplicates, it.ID)
			}
			continue
		}
		index[it.ID] = n
	}

	for _, n := range nodes {
		pid := n.Item.ParentID
		if pid == "" {
			f.Roots = append(f.Roots, n)
			continue
		}
		parent, ok := index[pid]
		if !ok || parent == n {
			f.Orphans = append(f.Orphans, n.ID())
			f.Roots = append(f.Roots, n)
			continue
		}
		n.Parent = parent
		parent.Children = append(parent.Children, n)
	}

	reached := make(map[*Node]bool, len(nodes))
	f.Walk(func(n *Node, _ int) bool {
		reached[n] = true
		return true
	})
	for _, n := range nodes {
		if !reached[n] {
			f.Unreachable = append(f.Unreachable, n.ID())
		}
	}
	return f
}

// Len returns the number of input items, reachable or not.
func (f *Forest) Len() int { return f.size }

// IsEmpty reports whether the forest has no roots.
func (f *Forest) IsEmpty() bool { return f == nil || len(f.Roots) == 0 }

// Walk visits reachable nodes in pre-order: each root, then its children in
// input order. Returning false from fn skips the node's subtree. The walk uses
// an explicit stack, so arbitrarily deep trees are safe.
func (f *Forest) Walk(fn func(n *Node, depth int) bool) {
	if f == nil {
		return
	}
	type frame struct {
		node  *Node
		depth int
	}
	stack := make([]frame, 0, len(f.Roots))
	for i := len(f.Roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{f.Roots[i], 0})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.node, top.depth) {
			continue
		}
		kids := top.node.Children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], top.depth + 1})
		}
	}
}

// Depth returns the number of levels in the forest, 0 when empty.
func (f *Forest) Depth() int {
	levels := 0
	f.Walk(func(_ *Node, d int) bool {
		if d+1 > levels {
			levels = d + 1
		}
		return true
	})
	return levels
}

// Validate returns an INVALID_INPUT error describing every structural anomaly
// recorded during Build, or nil for a clean forest.
func (f *Forest) Validate() error {
	if f == nil {
		return nil
	}
	var problems []string
	if len(f.Orphans) > 0 {
		problems = append(problems, fmt.Sprintf("dangling parent: %s", strings.Join(f.Orphans, ", ")))
	}
	if len(f.Duplicates) > 0 {
		problems = append(problems, fmt.Sprintf("duplicate id: %s", strings.Join(f.Duplicates, ", ")))
	}
	if len(f.Unreachable) > 0 {
		problems = append(problems, fmt.Sprintf("parent cycle: %s", strings.Join(f.Unreachable, ", ")))
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "%s", strings.Join(problems, "; "))
}
