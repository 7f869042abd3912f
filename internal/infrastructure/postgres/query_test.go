package postgres

import (
	"strings"
	"testing"

	"github.com/communehq/commune/internal/domain/apperr"
	repo "github.com/communehq/commune/internal/domain/repository"
)

var testColumns = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"template":   "template_id",
}

func TestBuildWhere(t *testing.T) {
	where, args, err := buildWhere(repo.Filter{"template": repo.Eq("tpl0000000000000")}, testColumns, 0)
	if err != nil {
		t.Fatalf("buildWhere: %v", err)
	}
	if where != "template_id = $1" {
		t.Fatalf("unexpected clause %q", where)
	}
	if len(args) != 1 || args[0] != "tpl0000000000000" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBuildWhere_MultipleConditions(t *testing.T) {
	filter := repo.Filter{
		"created_at": []repo.Condition{
			{Op: repo.OpGt, Value: "a"},
			{Op: repo.OpLt, Value: "b"},
		},
	}
	where, args, err := buildWhere(filter, testColumns, 2)
	if err != nil {
		t.Fatalf("buildWhere: %v", err)
	}
	if !strings.Contains(where, "created_at > $3") || !strings.Contains(where, "created_at < $4") {
		t.Fatalf("placeholders not offset: %q", where)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBuildWhere_RejectsUnknownColumn(t *testing.T) {
	_, _, err := buildWhere(repo.Filter{"password; DROP TABLE users": repo.Eq("x")}, testColumns, 0)
	if !apperr.IsCode(err, apperr.CodeIllegalValue) {
		t.Fatalf("expected illegal-value, got %v", err)
	}
}

func TestBuildTail(t *testing.T) {
	tail, err := buildTail(repo.Options{SortBy: "created_at", Direction: repo.Desc, Limit: 10, Offset: 20}, testColumns, "id")
	if err != nil {
		t.Fatalf("buildTail: %v", err)
	}
	if tail != " ORDER BY created_at DESC LIMIT 10 OFFSET 20" {
		t.Fatalf("unexpected tail %q", tail)
	}
}

func TestBuildTail_RejectsUnknownSort(t *testing.T) {
	_, err := buildTail(repo.Options{SortBy: "secret"}, testColumns, "id")
	if !apperr.IsCode(err, apperr.CodeIllegalValue) {
		t.Fatalf("expected illegal-value, got %v", err)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := encodeCursor(120)
	offset, err := decodeCursor(cursor)
	if err != nil {
		t.Fatalf("decodeCursor: %v", err)
	}
	if offset != 120 {
		t.Fatalf("offset = %d, want 120", offset)
	}
}

func TestCursorBeatsOffset(t *testing.T) {
	tail, err := buildTail(repo.Options{Limit: 5, Offset: 7, Cursor: encodeCursor(40)}, testColumns, "id")
	if err != nil {
		t.Fatalf("buildTail: %v", err)
	}
	if !strings.Contains(tail, "OFFSET 40") {
		t.Fatalf("cursor did not win: %q", tail)
	}
}

func TestDecodeCursor_Malformed(t *testing.T) {
	for _, cursor := range []string{"not-base64!!", "b2ZmOjEy", encodeCursor(-1)} {
		if _, err := decodeCursor(cursor); !apperr.IsCode(err, apperr.CodeIllegalValue) {
			t.Fatalf("cursor %q: expected illegal-value, got %v", cursor, err)
		}
	}
}
