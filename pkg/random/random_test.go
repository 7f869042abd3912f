package random

import (
	"regexp"
	"testing"
)

func TestFormats(t *testing.T) {
	src := New()

	id, err := src.ID()
	if err != nil {
		t.Fatalf("ID: %v", err)
	}
	if !regexp.MustCompile(`^[A-Za-z0-9_-]{16}$`).MatchString(id) {
		t.Fatalf("id %q fails format", id)
	}

	short, err := src.ShortSecret()
	if err != nil {
		t.Fatalf("ShortSecret: %v", err)
	}
	if !regexp.MustCompile(`^[A-Za-z0-9_-]{6}$`).MatchString(short) {
		t.Fatalf("short secret %q fails format", short)
	}

	long, err := src.LongSecret()
	if err != nil {
		t.Fatalf("LongSecret: %v", err)
	}
	if !regexp.MustCompile(`^[A-Za-z0-9_-]{64}$`).MatchString(long) {
		t.Fatalf("long secret fails format")
	}
}

func TestIDsAreNotRepeating(t *testing.T) {
	src := New()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := src.ID()
		if err != nil {
			t.Fatalf("ID: %v", err)
		}
		if seen[id] {
			t.Fatalf("id %q repeated", id)
		}
		seen[id] = true
	}
}
