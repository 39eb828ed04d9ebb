package collation

import (
	"sync"
	"testing"
)

func TestEqualIgnoresCase(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Alice", "alice", true},
		{"ALICE", "alice", true},
		{"Alice", "Alicia", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLessOrdersCaseInsensitively(t *testing.T) {
	if !Less("alice", "Bob") {
		t.Error("alice must sort before Bob")
	}
	if Less("bob", "Alice") {
		t.Error("bob must not sort before Alice")
	}
}

func TestConcurrentUse(t *testing.T) {
	// The collator is shared; hammer it from several goroutines.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				Compare("Müller", "mueller")
				Less("alice", "BOB")
				Equal("Carol", "carol")
			}
		}()
	}
	wg.Wait()
}
