package sessiondomain

import (
	"fmt"
	"strconv"
	"strings"
)

// Result is the outcome recorded on a paired match: either unset or decided
// with both set counts. A match always concludes 3-0, 2-1, 1-2 or 0-3, so a
// decided result's scores sum to exactly 3.
type Result struct {
	Decided bool `json:"decided"`
	A       int  `json:"a"`
	B       int  `json:"b"`
}

// Unset is the empty result.
var Unset = Result{}

// Decided builds a decided result. Callers are expected to pass scores that
// came out of ParseResult.
func Decided(a, b int) Result { return Result{Decided: true, A: a, B: b} }

func (r Result) String() string {
	if !r.Decided {
		return "-"
	}
	return fmt.Sprintf("%d:%d", r.A, r.B)
}

// ParseResult turns raw user input into a Result. Valid input decomposes into
// two integers, each 0..3, summing to exactly 3, separated by ':' or '-'.
// Everything else, including the empty string, parses to Unset so a recorded
// result can always be cleared by submitting garbage or nothing.
func ParseResult(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unset
	}

	sep := ":"
	if !strings.Contains(raw, sep) {
		sep = "-"
	}
	parts := strings.Split(raw, sep)
	if len(parts) != 2 {
		return Unset
	}

	a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
	b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errA != nil || errB != nil {
		return Unset
	}
	if a < 0 || a > 3 || b < 0 || b > 3 || a+b != 3 {
		return Unset
	}
	return Decided(a, b)
}
