package rbtree

type color bool

const (
	red   color = false
	black color = true
)

// Node is a single red-black tree node. Zero value is a detached red node.
type Node[K, V any] struct {
	key    K
	value  V
	color  color
	parent *Node[K, V]
	left   *Node[K, V]
	right  *Node[K, V]
}

// Key returns key of the tree node.
func (n *Node[K, V]) Key() K {
	return n.key
}

// Value returns value of the tree node.
func (n *Node[K, V]) Value() V {
	return n.value
}

// MostLeft returns the node with the smallest key in the subtree.
func (n *Node[K, V]) MostLeft() *Node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// MostRight returns the node with the largest key in the subtree.
func (n *Node[K, V]) MostRight() *Node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// Next returns in-order successor of the node or nil for the last node.
func (n *Node[K, V]) Next() *Node[K, V] {
	if n.right != nil {
		return n.right.MostLeft()
	}
	current, parent := n, n.parent
	for parent != nil && current == parent.right {
		current, parent = parent, parent.parent
	}
	return parent
}

// Prev returns in-order predecessor of the node or nil for the first node.
func (n *Node[K, V]) Prev() *Node[K, V] {
	if n.left != nil {
		return n.left.MostRight()
	}
	current, parent := n, n.parent
	for parent != nil && current == parent.left {
		current, parent = parent, parent.parent
	}
	return parent
}

func isRed[K, V any](n *Node[K, V]) bool {
	return n != nil && n.color == red
}

func (n *Node[K, V]) iteratePostOrder(f func(v *Node[K, V])) {
	if n.left != nil {
		n.left.iteratePostOrder(f)
	}
	if n.right != nil {
		n.right.iteratePostOrder(f)
	}
	f(n)
}
