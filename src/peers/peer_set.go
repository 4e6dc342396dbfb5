package peers

import "sort"

// Set is a set of node ids. The zero value is not usable, use NewSet.
type Set struct {
	ids map[string]struct{}
}

// NewSet creates a Set containing ids.
func NewSet(ids ...string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was not already present.
func (s *Set) Add(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids in the set.
func (s *Set) Len() int {
	return len(s.ids)
}

// Sorted returns the ids in ascending order.
func (s *Set) Sorted() []string {
	res := make([]string, 0, len(s.ids))
	for id := range s.ids {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}

// Excluding returns a new Set with the same ids minus the excluded ones.
func (s *Set) Excluding(excluded ...string) *Set {
	res := NewSet()
	for id := range s.ids {
		res.ids[id] = struct{}{}
	}
	for _, id := range excluded {
		delete(res.ids, id)
	}
	return res
}
