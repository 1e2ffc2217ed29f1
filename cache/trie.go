package cache

import (
	"sort"

	"github.com/dl85go/dl85/core"
)

// Index is a stable handle to a trie node's Entry, valid for the
// lifetime of the Cache (entries never move once allocated).
type Index int

// RootIndex is the Index of the empty-literal-set node.
const RootIndex Index = 0

type node struct {
	entry    Entry
	index    Index
	children map[core.Item]*node
}

// Cache is the literal-set -> Entry trie. The zero value
// is not usable; construct with Init.
type Cache struct {
	nodes []*node
	root  *node
}

// Init allocates a fresh cache with a default-valued root entry.
// sizeHint is an advisory preallocation hint for the flat node index;
// it never affects correctness.
func Init(sizeHint int) *Cache {
	c := &Cache{}
	if sizeHint > 0 {
		c.nodes = make([]*node, 0, sizeHint)
	}
	c.root = c.newNode(core.NoItem)

	return c
}

func (c *Cache) newNode(item core.Item) *node {
	n := &node{entry: newEntry(), index: Index(len(c.nodes))}
	n.entry.Item = item
	c.nodes = append(c.nodes, n)

	return n
}

// Size returns the number of distinct nodes (subproblems) memoized so far.
func (c *Cache) Size() int { return len(c.nodes) }

// canonical returns path sorted by Item value, the canonical cache
// key: insertion order and duplicates carry no meaning on a search path.
func canonical(path []core.Item) []core.Item {
	sorted := make([]core.Item, len(path))
	copy(sorted, path)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return sorted
}

// Insert descends (creating nodes as needed) to the node keyed by path's
// canonical form and returns its Index along with whether the node is
// "New": first allocation, or an existing node whose LeafError is still
// the default infinity (forcing the search engine to re-seed it).
// Complexity: O(len(path) * log(branching factor)).
func (c *Cache) Insert(path []core.Item) (Index, bool) {
	key := canonical(path)
	cur := c.root
	created := false
	for _, it := range key {
		if cur.children == nil {
			cur.children = make(map[core.Item]*node, 2)
		}
		child, ok := cur.children[it]
		if !ok {
			child = c.newNode(it)
			cur.children[it] = child
			created = true
		}
		cur = child
	}

	return cur.index, created || cur.entry.NeedsSeeding()
}

// Lookup descends to the node keyed by path's canonical form without
// creating anything. ok is false if no such node has been inserted yet.
func (c *Cache) Lookup(path []core.Item) (Index, bool) {
	key := canonical(path)
	cur := c.root
	for _, it := range key {
		if cur.children == nil {
			return 0, false
		}
		child, ok := cur.children[it]
		if !ok {
			return 0, false
		}
		cur = child
	}

	return cur.index, true
}

// Node returns a read-only pointer to the Entry at idx.
func (c *Cache) Node(idx Index) *Entry { return &c.nodes[idx].entry }

// NodeByPath resolves path to its Entry, inserting the node if absent.
func (c *Cache) NodeByPath(path []core.Item) *Entry {
	idx, _ := c.Insert(path)

	return c.Node(idx)
}

// UpdateNode returns a fluent Updater over the Entry at idx.
func (c *Cache) UpdateNode(idx Index) *Updater { return newUpdater(c.Node(idx)) }

// UpdateByPath returns a fluent Updater over the Entry keyed by path,
// inserting it if absent.
func (c *Cache) UpdateByPath(path []core.Item) *Updater {
	idx, _ := c.Insert(path)

	return c.UpdateNode(idx)
}

// RootIndex returns the Index of the empty-literal-set node.
func (c *Cache) RootIndex() Index { return RootIndex }

// Root returns the Entry at the root.
func (c *Cache) Root() *Entry { return c.Node(RootIndex) }

// UpdateRoot returns a fluent Updater over the root Entry.
func (c *Cache) UpdateRoot() *Updater { return c.UpdateNode(RootIndex) }

// Child returns the Index of the child of idx reached by item, and
// whether it exists, without creating it.
func (c *Cache) Child(idx Index, item core.Item) (Index, bool) {
	n := c.nodes[idx]
	if n.children == nil {
		return 0, false
	}
	child, ok := n.children[item]
	if !ok {
		return 0, false
	}

	return child.index, true
}
