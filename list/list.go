/*
Package list provides a generic doubly linked list that keeps head, tail and
size consistent on every mutation.

Nodes are owned by the list that created them and never leave it. Copies made
with Clone or Assign build a fresh chain, so two lists never share nodes.

Front, Rear and GetAt treat an empty list or a bad index as a programming
error and panic. PeekFront, PeekRear and Lookup are the non-panicking
counterparts for callers that need to handle absence.
*/
package list

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// List errors.
var (
	ErrEmptyList       = errors.New("list is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// node is a single link in the chain.
type node[T comparable] struct {
	item T
	prev *node[T]
	next *node[T]
}

// List is a doubly linked list of comparable items.
// The zero value is an empty list ready to use.
type List[T comparable] struct {
	head *node[T] // first node, nil iff the list is empty
	tail *node[T] // last node, nil iff the list is empty
	size int      // number of nodes reachable from head
}

// New returns an empty list.
func New[T comparable]() *List[T] {
	return &List[T]{}
}

// Clone returns an independent deep copy of l.
func (l *List[T]) Clone() *List[T] {
	c := New[T]()
	c.copyFrom(l)
	return c
}

// Assign makes l an independent copy of other, releasing the nodes l held.
// Assigning a list to itself does nothing.
func (l *List[T]) Assign(other *List[T]) {
	if l == other {
		return
	}
	l.Clear()
	l.copyFrom(other)
}

// copyFrom appends a fresh copy of every node of other to l.
func (l *List[T]) copyFrom(other *List[T]) {
	if other == nil {
		return
	}
	for p := other.head; p != nil; p = p.next {
		l.PushBack(p.item)
	}
}

// Clear releases every node and leaves l empty.
func (l *List[T]) Clear() {
	p := l.head
	for p != nil {
		n := p.next
		p.prev, p.next = nil, nil
		p = n
	}
	l.head, l.tail = nil, nil
	l.size = 0
}

// Empty reports whether l holds no items.
func (l *List[T]) Empty() bool {
	return l.head == nil
}

// Size returns the number of items in l.
func (l *List[T]) Size() int {
	return l.size
}

// PushFront inserts item before the current head.
func (l *List[T]) PushFront(item T) {
	n := &node[T]{item: item, next: l.head}
	if l.head == nil {
		l.tail = n
	} else {
		l.head.prev = n
	}
	l.head = n
	l.size++
}

// PushBack inserts item after the current tail.
func (l *List[T]) PushBack(item T) {
	if l.head == nil {
		l.PushFront(item)
		return
	}

	n := &node[T]{item: item, prev: l.tail}
	l.tail.next = n
	l.tail = n
	l.size++
}

// Add inserts item so that it ends up at position index.
// An index <= 0 pushes to the front, an index >= Size pushes to the back.
func (l *List[T]) Add(index int, item T) {
	switch {
	case index <= 0:
		l.PushFront(item)
	case index >= l.size:
		l.PushBack(item)
	default:
		before := l.nodeAt(index - 1)
		after := before.next
		n := &node[T]{item: item, prev: before, next: after}
		before.next = n
		after.prev = n
		l.size++
	}
}

// Front returns the first item. It panics if l is empty.
func (l *List[T]) Front() T {
	if l.head == nil {
		panic(fmt.Errorf("list: Front: %w", ErrEmptyList))
	}
	return l.head.item
}

// Rear returns the last item. It panics if l is empty.
func (l *List[T]) Rear() T {
	if l.tail == nil {
		panic(fmt.Errorf("list: Rear: %w", ErrEmptyList))
	}
	return l.tail.item
}

// GetAt returns the item at index. It panics unless 0 <= index < Size.
func (l *List[T]) GetAt(index int) T {
	if index < 0 || index >= l.size {
		panic(fmt.Errorf("list: GetAt(%d) on size %d: %w", index, l.size, ErrIndexOutOfRange))
	}
	return l.nodeAt(index).item
}

// PeekFront returns the first item or ErrEmptyList.
func (l *List[T]) PeekFront() (T, error) {
	if l.head == nil {
		var zero T
		return zero, ErrEmptyList
	}
	return l.head.item, nil
}

// PeekRear returns the last item or ErrEmptyList.
func (l *List[T]) PeekRear() (T, error) {
	if l.tail == nil {
		var zero T
		return zero, ErrEmptyList
	}
	return l.tail.item, nil
}

// Lookup returns the item at index or ErrIndexOutOfRange.
func (l *List[T]) Lookup(index int) (T, error) {
	if index < 0 || index >= l.size {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	return l.nodeAt(index).item, nil
}

// Find returns the position of the first item equal to item, or -1.
func (l *List[T]) Find(item T) int {
	i := 0
	for p := l.head; p != nil; p = p.next {
		if p.item == item {
			return i
		}
		i++
	}
	return -1
}

// Contains reports whether item is in l.
func (l *List[T]) Contains(item T) bool {
	return l.Find(item) != -1
}

// PopFront removes the first item. It returns false if l was empty.
func (l *List[T]) PopFront() bool {
	if l.head == nil {
		return false
	}

	d := l.head
	l.head = d.next
	if l.head == nil {
		l.tail = nil
	} else {
		l.head.prev = nil
	}
	d.next = nil
	l.size--
	return true
}

// PopRear removes the last item. It returns false if l was empty.
func (l *List[T]) PopRear() bool {
	if l.tail == nil {
		return false
	}

	d := l.tail
	l.tail = d.prev
	if l.tail == nil {
		l.head = nil
	} else {
		l.tail.next = nil
	}
	d.prev = nil
	l.size--
	return true
}

// PopAt removes the item at index. It returns false if index is out of range.
func (l *List[T]) PopAt(index int) bool {
	switch {
	case index < 0 || index >= l.size:
		return false
	case index == 0:
		return l.PopFront()
	case index == l.size-1:
		return l.PopRear()
	}

	d := l.nodeAt(index)
	d.prev.next = d.next
	d.next.prev = d.prev
	d.prev, d.next = nil, nil
	l.size--
	return true
}

// All returns an iterator over the items from head to tail.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for p := l.head; p != nil; p = p.next {
			if !yield(p.item) {
				return
			}
		}
	}
}

// Backward returns an iterator over the items from tail to head.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for p := l.tail; p != nil; p = p.prev {
			if !yield(p.item) {
				return
			}
		}
	}
}

// Slice returns the items from head to tail in a new slice.
func (l *List[T]) Slice() []T {
	items := make([]T, 0, l.size)
	for item := range l.All() {
		items = append(items, item)
	}
	return items
}

// String returns the items separated by single spaces.
func (l *List[T]) String() string {
	var b strings.Builder
	for p := l.head; p != nil; p = p.next {
		if p != l.head {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, p.item)
	}
	return b.String()
}

// nodeAt walks to the node at index from whichever end is closer.
// The caller guarantees 0 <= index < size.
func (l *List[T]) nodeAt(index int) *node[T] {
	if index < l.size/2 {
		p := l.head
		for i := 0; i < index; i++ {
			p = p.next
		}
		return p
	}

	p := l.tail
	for i := l.size - 1; i > index; i-- {
		p = p.prev
	}
	return p
}
