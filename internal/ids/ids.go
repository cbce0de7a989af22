package ids

import (
	"fmt"
	"strconv"
	"strings"
)

// Every entity carries a reference code made of a short letter prefix and a
// monotonically increasing numeric suffix, e.g. "RE12" for a recipe or "IG7"
// for an ingredient. Repositories persist the code as the business key; the
// aggregation layer treats codes as opaque strings.

// Format builds a reference code from a prefix and a numeric suffix.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}

// Suffix extracts the numeric suffix of a reference code. Codes without a
// numeric suffix (or with a foreign prefix) yield ok=false.
func Suffix(prefix, ref string) (int, bool) {
	if !strings.HasPrefix(ref, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(ref[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Allocator hands out consecutive reference codes within one save operation.
// It is seeded once from the stored maximum suffix and then incremented in
// memory, so a batch issues one max-query instead of one per row and cannot
// collide with itself.
type Allocator struct {
	prefix string
	next   int
}

// NewAllocator returns an allocator whose first code will use maxSuffix+1.
func NewAllocator(prefix string, maxSuffix int) *Allocator {
	return &Allocator{prefix: prefix, next: maxSuffix + 1}
}

// Next returns the next reference code in the sequence.
func (a *Allocator) Next() string {
	ref := Format(a.prefix, a.next)
	a.next++
	return ref
}
