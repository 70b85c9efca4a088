// Package stack provides a LIFO stack backed by list.List.
package stack

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-explorer/list"
)

// ErrEmptyStack is wrapped by the panics of Pop and Peek on an empty stack.
var ErrEmptyStack = errors.New("stack is empty")

// Stack is a last-in first-out sequence. The top lives at the list head.
type Stack[T comparable] struct {
	items list.List[T]
}

// New returns an empty stack.
func New[T comparable]() *Stack[T] {
	return &Stack[T]{}
}

// Push places item on top.
func (s *Stack[T]) Push(item T) {
	s.items.PushFront(item)
}

// Pop removes and returns the top item. It panics if s is empty.
func (s *Stack[T]) Pop() T {
	if s.items.Empty() {
		panic(fmt.Errorf("stack: Pop: %w", ErrEmptyStack))
	}
	top := s.items.Front()
	s.items.PopFront()
	return top
}

// Peek returns the top item without removing it. It panics if s is empty.
func (s *Stack[T]) Peek() T {
	if s.items.Empty() {
		panic(fmt.Errorf("stack: Peek: %w", ErrEmptyStack))
	}
	return s.items.Front()
}

// TryPop is Pop reporting absence instead of panicking.
func (s *Stack[T]) TryPop() (T, bool) {
	top, err := s.items.PeekFront()
	if err != nil {
		return top, false
	}
	s.items.PopFront()
	return top, true
}

// TryPeek is Peek reporting absence instead of panicking.
func (s *Stack[T]) TryPeek() (T, bool) {
	top, err := s.items.PeekFront()
	return top, err == nil
}

// Empty reports whether s holds no items.
func (s *Stack[T]) Empty() bool {
	return s.items.Empty()
}

// Size returns the number of items on s.
func (s *Stack[T]) Size() int {
	return s.items.Size()
}

// Clear drops every item.
func (s *Stack[T]) Clear() {
	s.items.Clear()
}

// Clone returns an independent copy of s.
func (s *Stack[T]) Clone() *Stack[T] {
	c := New[T]()
	c.items.Assign(&s.items)
	return c
}

// Slice returns the items from top to bottom.
func (s *Stack[T]) Slice() []T {
	return s.items.Slice()
}
