package set

import (
	"cmp"
	"slices"
)

func New[T comparable]() *Set[T] {
	return &Set[T]{m: make(map[T]struct{})}
}

type Set[T comparable] struct {
	m map[T]struct{}
}

func (s *Set[T]) Add(v T) {
	s.m[v] = struct{}{}
}

// AddNew adds v and reports whether it was absent.
func (s *Set[T]) AddNew(v T) bool {
	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	return true
}

func (s *Set[T]) Has(v T) bool {
	_, ok := s.m[v]
	return ok
}

func (s *Set[T]) Len() int {
	return len(s.m)
}

func (s *Set[T]) Values() []T {
	values := make([]T, 0, len(s.m))
	for k := range s.m {
		values = append(values, k)
	}
	return values
}

func (s *Set[T]) Clear() {
	clear(s.m)
}

// Sorted returns the values of an ordered set in ascending order.
func Sorted[T cmp.Ordered](s *Set[T]) []T {
	values := s.Values()
	slices.Sort(values)
	return values
}
