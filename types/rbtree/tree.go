package rbtree

import (
	"sync"

	"gopkg.in/typ.v4"
)

// Tree is a binary search tree (BST) for ordered Go types (numbers & strings),
// implemented as a red-black tree, a type of self-balancing BST.
// Insertion, searching and deletion are O(log n); most left and most right
// nodes are cached so best price lookups are O(1).
// NOTE: Not thread-safe.
type Tree[K, V any] struct {
	compare   func(a, b K) int
	pool      *sync.Pool
	root      *Node[K, V]
	mostLeft  *Node[K, V]
	mostRight *Node[K, V]
	size      int
}

////////////////////////////////////////////////////////////////

// NewOrderedTree creates a new red-black tree using a default comparator function
// for any ordered type (ints, uints, floats, strings).
func NewOrderedTree[K typ.Ordered, V any]() Tree[K, V] {
	return NewTree[K, V](typ.Compare[K])
}

// NewTree creates a new red-black tree using a comparator function that is
// expected to return 0 if a == b, -1 if a < b, and +1 if a > b.
func NewTree[K, V any](compare func(a, b K) int) Tree[K, V] {
	return Tree[K, V]{
		compare: compare,
	}
}

// NewTreePooled creates a new red-black tree using a comparator function that is
// expected to return 0 if a == b, -1 if a < b, and +1 if a > b.
// Pooled tree uses given pool for nodes creating/releasing.
func NewTreePooled[K, V any](compare func(a, b K) int, pool *sync.Pool) Tree[K, V] {
	return Tree[K, V]{
		compare: compare,
		pool:    pool,
	}
}

////////////////////////////////////////////////////////////////

// Size returns the amount of nodes in the tree.
func (t *Tree[K, V]) Size() int {
	return t.size
}

// Contains checks if node with given key exists in the tree.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.Find(key) != nil
}

// Find finds the node with given key in the tree by iterating the binary search tree.
func (t *Tree[K, V]) Find(key K) *Node[K, V] {
	current := t.root
	for current != nil {
		cmp := t.compare(key, current.key)
		switch {
		case cmp < 0:
			current = current.left
		case cmp > 0:
			current = current.right
		default:
			return current
		}
	}
	return nil
}

// Add inserts a node with given key and value to the tree.
// Duplicate keys are not allowed so error will be returned on duplicate.
func (t *Tree[K, V]) Add(key K, value V) (*Node[K, V], error) {
	var parent *Node[K, V]
	cmp := 0
	for current := t.root; current != nil; {
		parent = current
		cmp = t.compare(key, current.key)
		switch {
		case cmp < 0:
			current = current.left
		case cmp > 0:
			current = current.right
		default:
			return nil, ErrorTreeNodeDuplicate
		}
	}

	node := t.newNode(key, value)
	node.parent = parent
	switch {
	case parent == nil:
		t.root = node
	case cmp < 0:
		parent.left = node
	default:
		parent.right = node
	}
	t.insertFixup(node)
	t.size++

	// Update most left/right nodes
	if t.mostLeft == nil || t.compare(key, t.mostLeft.key) < 0 {
		t.mostLeft = node
	}
	if t.mostRight == nil || t.compare(key, t.mostRight.key) > 0 {
		t.mostRight = node
	}
	return node, nil
}

// Remove unlinks the node with given key from the tree, rebalances the tree
// and returns the value stored in the removed node.
func (t *Tree[K, V]) Remove(key K) (value V, err error) {
	node := t.Find(key)
	if node == nil {
		err = ErrorTreeNodeNotFound
		return
	}
	value = node.value

	// Neighbours survive the unlink, only the removed node is released
	if t.mostLeft == node {
		t.mostLeft = node.Next()
	}
	if t.mostRight == node {
		t.mostRight = node.Prev()
	}

	t.delete(node)
	t.size--
	t.releaseNode(node)
	return
}

// MostLeft returns most left node.
func (t *Tree[K, V]) MostLeft() *Node[K, V] {
	return t.mostLeft
}

// MostRight returns most right node.
func (t *Tree[K, V]) MostRight() *Node[K, V] {
	return t.mostRight
}

// Clear will reset this tree to an empty tree.
func (t *Tree[K, V]) Clear() {
	if t.root != nil {
		t.root.iteratePostOrder(t.releaseNode)
	}
	t.root = nil
	t.mostLeft = nil
	t.mostRight = nil
	t.size = 0
}

// IterateInOrder visits values in comparator order starting from the most left node.
// Iteration stops as soon as f returns true.
func (t *Tree[K, V]) IterateInOrder(f func(value V) bool) {
	for node := t.mostLeft; node != nil; node = node.Next() {
		if f(node.value) {
			return
		}
	}
}

// IteratePostOrder will iterate all values in this tree by first visiting each
// node's left branch, followed by the its right branch, and then its own value.
//
// This is useful when releasing values stored in the tree.
func (t *Tree[K, V]) IteratePostOrder(f func(value V)) {
	if t.root == nil {
		return
	}
	t.root.iteratePostOrder(func(n *Node[K, V]) {
		f(n.value)
	})
}

////////////////////////////////////////////////////////////////
// Balancing
////////////////////////////////////////////////////////////////

func (t *Tree[K, V]) insertFixup(z *Node[K, V]) {
	for isRed(z.parent) {
		parent := z.parent
		grand := parent.parent // red parent is never the root
		if parent == grand.left {
			uncle := grand.right
			if isRed(uncle) {
				parent.color = black
				uncle.color = black
				grand.color = red
				z = grand
				continue
			}
			if z == parent.right {
				z = parent
				t.rotateLeft(z)
				parent = z.parent
			}
			parent.color = black
			grand.color = red
			t.rotateRight(grand)
		} else {
			uncle := grand.left
			if isRed(uncle) {
				parent.color = black
				uncle.color = black
				grand.color = red
				z = grand
				continue
			}
			if z == parent.left {
				z = parent
				t.rotateRight(z)
				parent = z.parent
			}
			parent.color = black
			grand.color = red
			t.rotateLeft(grand)
		}
	}
	t.root.color = black
}

func (t *Tree[K, V]) delete(z *Node[K, V]) {
	var x, xParent *Node[K, V]
	removedColor := z.color

	switch {
	case z.left == nil:
		x, xParent = z.right, z.parent
		t.transplant(z, z.right)
	case z.right == nil:
		x, xParent = z.left, z.parent
		t.transplant(z, z.left)
	default:
		// Successor takes the place of z
		y := z.right.MostLeft()
		removedColor = y.color
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if removedColor == black {
		t.deleteFixup(x, xParent)
	}
}

// deleteFixup restores black height after a black node was unlinked.
// x may be nil so its parent is tracked separately.
func (t *Tree[K, V]) deleteFixup(x, parent *Node[K, V]) {
	for x != t.root && !isRed(x) {
		if x == parent.left {
			sibling := parent.right
			if isRed(sibling) {
				sibling.color = black
				parent.color = red
				t.rotateLeft(parent)
				sibling = parent.right
			}
			if !isRed(sibling.left) && !isRed(sibling.right) {
				sibling.color = red
				x, parent = parent, parent.parent
				continue
			}
			if !isRed(sibling.right) {
				sibling.left.color = black
				sibling.color = red
				t.rotateRight(sibling)
				sibling = parent.right
			}
			sibling.color = parent.color
			parent.color = black
			sibling.right.color = black
			t.rotateLeft(parent)
			x, parent = t.root, nil
		} else {
			sibling := parent.left
			if isRed(sibling) {
				sibling.color = black
				parent.color = red
				t.rotateRight(parent)
				sibling = parent.left
			}
			if !isRed(sibling.left) && !isRed(sibling.right) {
				sibling.color = red
				x, parent = parent, parent.parent
				continue
			}
			if !isRed(sibling.left) {
				sibling.right.color = black
				sibling.color = red
				t.rotateLeft(sibling)
				sibling = parent.left
			}
			sibling.color = parent.color
			parent.color = black
			sibling.left.color = black
			t.rotateRight(parent)
			x, parent = t.root, nil
		}
	}
	if x != nil {
		x.color = black
	}
}

func (t *Tree[K, V]) transplant(u, v *Node[K, V]) {
	switch {
	case u.parent == nil:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

func (t *Tree[K, V]) rotateLeft(x *Node[K, V]) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	t.transplant(x, y)
	y.left = x
	x.parent = y
}

func (t *Tree[K, V]) rotateRight(x *Node[K, V]) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	t.transplant(x, y)
	y.right = x
	x.parent = y
}

////////////////////////////////////////////////////////////////
// Nodes allocation
////////////////////////////////////////////////////////////////

func (t *Tree[K, V]) newNode(key K, value V) *Node[K, V] {
	if t.pool == nil {
		return &Node[K, V]{key: key, value: value}
	}
	node := t.pool.Get().(*Node[K, V])
	node.key = key
	node.value = value
	return node
}

func (t *Tree[K, V]) releaseNode(node *Node[K, V]) {
	if t.pool == nil {
		return
	}
	*node = Node[K, V]{}
	t.pool.Put(node)
}
