package bitset

import (
	"bytes"
	"math/bits"

	"github.com/boljen/go-bitmap"
)

// Set is a fixed-width set of small non-negative integers, used to track
// which tile indices remain possible for a cell.
type Set struct {
	bits bitmap.Bitmap
	size int
}

// New returns an empty set able to hold members 0..size-1.
func New(size int) *Set {
	return &Set{bits: bitmap.New(size), size: size}
}

// Full returns a set with every member 0..size-1 present.
func Full(size int) *Set {
	s := New(size)
	for i := 0; i < size; i++ {
		s.bits.Set(i, true)
	}
	return s
}

// Len returns the width of the set (not the member count).
func (s *Set) Len() int {
	return s.size
}

// Has returns if i is a member.
func (s *Set) Has(i int) bool {
	if i < 0 || i >= s.size {
		return false
	}
	return s.bits.Get(i)
}

// Add inserts i.
func (s *Set) Add(i int) {
	if i < 0 || i >= s.size {
		return
	}
	s.bits.Set(i, true)
}

// Clear removes i.
func (s *Set) Clear(i int) {
	if i < 0 || i >= s.size {
		return
	}
	s.bits.Set(i, false)
}

// Count returns the number of members (population count).
func (s *Set) Count() int {
	total := 0
	for _, b := range s.bits.Data(false) {
		total += bits.OnesCount8(b)
	}
	return total
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	return &Set{bits: bitmap.Bitmap(s.bits.Data(true)), size: s.size}
}

// Equal returns if both sets have the same width & members.
func (s *Set) Equal(o *Set) bool {
	if s.size != o.size {
		return false
	}
	return bytes.Equal(s.bits.Data(false), o.bits.Data(false))
}

// Each calls fn for every member in ascending order.
// Clearing the member being visited is safe.
func (s *Set) Each(fn func(i int)) {
	for i := 0; i < s.size; i++ {
		if s.bits.Get(i) {
			fn(i)
		}
	}
}

// Single returns the sole member, if the set has exactly one.
func (s *Set) Single() (int, bool) {
	if s.Count() != 1 {
		return -1, false
	}
	member := -1
	s.Each(func(i int) { member = i })
	return member, true
}
