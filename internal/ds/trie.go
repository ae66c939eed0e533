package ds

import (
	"slices"
)

type Node[T any] struct {
	name     string
	value    T
	setted   bool
	children map[string]*Node[T]
}

func createNode[T any](name string) *Node[T] {
	return &Node[T]{
		name:     name,
		children: make(map[string]*Node[T]),
	}
}

// Trie stores values under paths of words.
type Trie[T any] struct {
	root *Node[T]
}

func NewTrie[T any]() *Trie[T] {
	trie := Trie[T]{
		root: createNode[T](""),
	}
	return &trie
}

func (t *Trie[T]) Get(path []string) (T, bool) {
	var (
		node = t.root
		ok   bool
	)
	for _, name := range path {
		node, ok = node.children[name]
		if !ok {
			var z T
			return z, ok
		}
	}
	return node.value, node.setted
}

// Match finds the value registered under the longest prefix of path and
// returns it with the remaining words.
func (t *Trie[T]) Match(path []string) (T, []string, bool) {
	var (
		node  = t.root
		value T
		rest  []string
		found bool
	)
	for i, name := range path {
		child, ok := node.children[name]
		if !ok {
			break
		}
		node = child
		if node.setted {
			value, rest, found = node.value, path[i+1:], true
		}
	}
	return value, rest, found
}

// Walk calls fn for every value registered under prefix, in lexical order of
// the paths.
func (t *Trie[T]) Walk(prefix []string, fn func(path []string, v T)) {
	node := t.root
	for _, name := range prefix {
		n, ok := node.children[name]
		if !ok {
			return
		}
		node = n
	}

	var walk func(n *Node[T], path []string)

	walk = func(n *Node[T], path []string) {
		if n.setted {
			fn(path, n.value)
		}
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			walk(n.children[name], append(slices.Clip(path), name))
		}
	}

	walk(node, slices.Clone(prefix))
}

func (t *Trie[T]) Register(path []string, value T) {
	if len(path) == 0 {
		return
	}
	node := t.root
	for _, name := range path {
		if node.children[name] == nil {
			node.children[name] = createNode[T](name)
		}
		node = node.children[name]
	}
	node.value = value
	node.setted = true
}
