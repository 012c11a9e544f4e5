// Package immutablemap provides an immutable ordered map with structural
// sharing. Mutating operations return a new map that shares all untouched
// nodes with the receiver, so taking a point-in-time snapshot is free and a
// long chain of snapshots (one per explored path node) stays cheap.
package immutablemap

import (
	"bytes"
	"cmp"
	"encoding/gob"
	"io"
)

// Map is an immutable ordered map from K to V. The zero value is an empty
// map ready for use.
type Map[K cmp.Ordered, V any] struct {
	root *node[K, V]
}

type node[K cmp.Ordered, V any] struct {
	key         K
	value       V
	left, right *node[K, V]
	height      int8
	size        int
}

// New returns an empty map.
func New[K cmp.Ordered, V any]() Map[K, V] {
	return Map[K, V]{}
}

// Load returns the value stored for key, and whether it is present.
func (m Map[K, V]) Load(key K) (V, bool) {
	n := m.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// Store returns a map with key bound to value. The receiver is unchanged.
func (m Map[K, V]) Store(key K, value V) Map[K, V] {
	return Map[K, V]{root: insert(m.root, key, value)}
}

// Delete returns a map without key. The receiver is unchanged; deleting an
// absent key returns an equivalent map.
func (m Map[K, V]) Delete(key K) Map[K, V] {
	if _, ok := m.Load(key); !ok {
		return m
	}
	return Map[K, V]{root: remove(m.root, key)}
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	return size(m.root)
}

// OrderedRange calls f for each entry in ascending key order. If f returns
// false, the iteration stops.
func (m Map[K, V]) OrderedRange(f func(key K, value V) bool) {
	visit(m.root, f)
}

func visit[K cmp.Ordered, V any](n *node[K, V], f func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return visit(n.left, f) && f(n.key, n.value) && visit(n.right, f)
}

// The tree is a persistent AVL tree: every insert or delete copies the nodes
// on the root-to-key path and rebalances the copies, leaving the original
// tree intact.

func size[K cmp.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.size
}

func height[K cmp.Ordered, V any](n *node[K, V]) int8 {
	if n == nil {
		return 0
	}
	return n.height
}

func mk[K cmp.Ordered, V any](key K, value V, left, right *node[K, V]) *node[K, V] {
	h := height(left)
	if hr := height(right); hr > h {
		h = hr
	}
	return &node[K, V]{
		key:    key,
		value:  value,
		left:   left,
		right:  right,
		height: h + 1,
		size:   size(left) + size(right) + 1,
	}
}

func balanceFactor[K cmp.Ordered, V any](n *node[K, V]) int8 {
	return height(n.left) - height(n.right)
}

func rebalance[K cmp.Ordered, V any](n *node[K, V]) *node[K, V] {
	switch bf := balanceFactor(n); {
	case bf > 1:
		l := n.left
		if balanceFactor(l) < 0 {
			l = rotateLeft(l)
		}
		return rotateRight(mk(n.key, n.value, l, n.right))
	case bf < -1:
		r := n.right
		if balanceFactor(r) > 0 {
			r = rotateRight(r)
		}
		return rotateLeft(mk(n.key, n.value, n.left, r))
	}
	return n
}

func rotateLeft[K cmp.Ordered, V any](n *node[K, V]) *node[K, V] {
	r := n.right
	return mk(r.key, r.value, mk(n.key, n.value, n.left, r.left), r.right)
}

func rotateRight[K cmp.Ordered, V any](n *node[K, V]) *node[K, V] {
	l := n.left
	return mk(l.key, l.value, l.left, mk(n.key, n.value, l.right, n.right))
}

func insert[K cmp.Ordered, V any](n *node[K, V], key K, value V) *node[K, V] {
	if n == nil {
		return mk(key, value, nil, nil)
	}
	switch {
	case key < n.key:
		return rebalance(mk(n.key, n.value, insert(n.left, key, value), n.right))
	case key > n.key:
		return rebalance(mk(n.key, n.value, n.left, insert(n.right, key, value)))
	}
	return mk(key, value, n.left, n.right)
}

func remove[K cmp.Ordered, V any](n *node[K, V], key K) *node[K, V] {
	if n == nil {
		return nil
	}
	switch {
	case key < n.key:
		return rebalance(mk(n.key, n.value, remove(n.left, key), n.right))
	case key > n.key:
		return rebalance(mk(n.key, n.value, n.left, remove(n.right, key)))
	}
	if n.left == nil {
		return n.right
	}
	if n.right == nil {
		return n.left
	}
	min := n.right
	for min.left != nil {
		min = min.left
	}
	return rebalance(mk(min.key, min.value, n.left, remove(n.right, min.key)))
}

// GobEncode encodes the entries in key order as alternating key/value pairs.
func (m Map[K, V]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	var err error
	m.OrderedRange(func(k K, v V) bool {
		if err = enc.Encode(k); err != nil {
			return false
		}
		err = enc.Encode(v)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, nil
	}
	return buf.Bytes(), nil
}

// GobDecode replaces the map contents with the encoded entries.
func (m *Map[K, V]) GobDecode(b []byte) error {
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	out := New[K, V]()
	for {
		var k K
		if err := dec.Decode(&k); err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out = out.Store(k, v)
	}
	*m = out
	return nil
}
