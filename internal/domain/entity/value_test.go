package entity

import (
	"strings"
	"testing"
)

func TestParseIDs(t *testing.T) {
	if _, err := ParseUserID("abcDEF123456-_ab"); err != nil {
		t.Fatalf("well-formed id rejected: %v", err)
	}
	for _, bad := range []string{"", "short", "way-too-long-for-an-id", "has space 123456", "abcDEF123456-_a!"} {
		if _, err := ParseUserID(bad); err == nil {
			t.Fatalf("malformed id %q accepted", bad)
		}
	}
}

func TestParseName(t *testing.T) {
	for _, ok := range []string{"a", "climbers", "rock-climbers", "a1-b2"} {
		if _, err := ParseName(ok); err != nil {
			t.Fatalf("valid name %q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "Climbers", "-leading", "trailing-", "no spaces", strings.Repeat("a", 65)} {
		if _, err := ParseName(bad); err == nil {
			t.Fatalf("invalid name %q accepted", bad)
		}
	}
}

func TestParseDisplayName(t *testing.T) {
	if _, err := ParseDisplayName("Rock Climbers"); err != nil {
		t.Fatalf("valid display name rejected: %v", err)
	}
	for _, bad := range []string{"", " padded", "padded ", strings.Repeat("x", 65)} {
		if _, err := ParseDisplayName(bad); err == nil {
			t.Fatalf("invalid display name %q accepted", bad)
		}
	}
}

func TestParseEmail(t *testing.T) {
	if _, err := ParseEmail("user@example.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	for _, bad := range []string{"", "user", "user@", "@example.com", "a b@example.com", "user@example"} {
		if _, err := ParseEmail(bad); err == nil {
			t.Fatalf("invalid email %q accepted", bad)
		}
	}
}

func TestParseSecrets(t *testing.T) {
	if _, err := ParseShortSecret("Ab1-_Z"); err != nil {
		t.Fatalf("valid short secret rejected: %v", err)
	}
	if _, err := ParseShortSecret("too-long"); err == nil {
		t.Fatalf("overlong short secret accepted")
	}
	if _, err := ParseLongSecret(strings.Repeat("a", 64)); err != nil {
		t.Fatalf("valid long secret rejected: %v", err)
	}
	if _, err := ParseLongSecret(strings.Repeat("a", 63)); err == nil {
		t.Fatalf("short long-secret accepted")
	}
}
