package entity

import (
	"testing"

	"github.com/communehq/commune/internal/domain/apperr"
)

func TestBookmarkAddRemove(t *testing.T) {
	d := BookmarkDirectory{ID: alice}

	d, err := d.ToBookmarkAdded("item000000000001", "later", myselfOf(alice))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Bookmarks) != 1 {
		t.Fatalf("bookmark not added")
	}

	// Same (item, tag) pair again: unchanged.
	d, err = d.ToBookmarkAdded("item000000000001", "later", myselfOf(alice))
	if err != nil || len(d.Bookmarks) != 1 {
		t.Fatalf("duplicate pair must dedup, got %d bookmarks, err %v", len(d.Bookmarks), err)
	}

	// Same item under a different tag is a distinct bookmark.
	d, err = d.ToBookmarkAdded("item000000000001", "cooking", myselfOf(alice))
	if err != nil || len(d.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d, err %v", len(d.Bookmarks), err)
	}

	d, err = d.ToBookmarkRemoved("item000000000001", "later", myselfOf(alice))
	if err != nil || len(d.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark after removal, got %d, err %v", len(d.Bookmarks), err)
	}
	if d.Bookmarks[0].Tag != "cooking" {
		t.Fatalf("removed the wrong bookmark")
	}

	// Removing an absent pair succeeds.
	d, err = d.ToBookmarkRemoved("item000000000001", "later", myselfOf(alice))
	if err != nil || len(d.Bookmarks) != 1 {
		t.Fatalf("removal of absent pair should be a no-op, got %v", err)
	}
}

func TestBookmarkDirectory_SelfServiceOnly(t *testing.T) {
	d := BookmarkDirectory{ID: alice}
	_, err := d.ToBookmarkAdded("item000000000001", "later", myselfOf(bob))
	if !apperr.IsCode(err, apperr.CodeCertificateMismatch) {
		t.Fatalf("expected certificate_mismatch, got %v", err)
	}
}
