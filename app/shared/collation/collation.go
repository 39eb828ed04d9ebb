// Package collation centralizes locale-aware name comparison. Player names
// are ordered and deduplicated with the same collator everywhere so that
// standings tie-breaks and roster uniqueness agree.
package collation

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	mu       sync.Mutex
	collator = collate.New(language.Und, collate.IgnoreCase)
)

// Compare returns -1, 0 or +1 comparing a against b, ignoring case.
func Compare(a, b string) int {
	mu.Lock()
	defer mu.Unlock()
	return collator.CompareString(a, b)
}

// Less reports whether a sorts before b.
func Less(a, b string) bool { return Compare(a, b) < 0 }

// Equal reports whether a and b are the same name up to case.
func Equal(a, b string) bool { return Compare(a, b) == 0 }
