package node

import "sort"

// valueSet is a set of broadcast values.
type valueSet map[int64]struct{}

// add inserts v and reports whether it was new.
func (s valueSet) add(v int64) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s valueSet) contains(v int64) bool {
	_, ok := s[v]
	return ok
}

// sorted returns the values in ascending order. The result is never nil so
// that it encodes as an empty JSON array.
func (s valueSet) sorted() []int64 {
	res := make([]int64, 0, len(s))
	for v := range s {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// missing returns, in ascending order, the values of s that are neither in
// known nor equal to except.
func (s valueSet) missing(known valueSet, except int64) []int64 {
	res := []int64{}
	for _, v := range s.sorted() {
		if v == except || known.contains(v) {
			continue
		}
		res = append(res, v)
	}
	return res
}
