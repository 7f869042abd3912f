package entity

import (
	"github.com/communehq/commune/internal/domain/apperr"
)

// Bookmark marks one item with one tag for one user. The (item, tag)
// pair is the dedup key within a directory.
type Bookmark struct {
	UserID UserID
	ItemID ItemID
	Tag    Name
}

// BookmarkDirectory is a self-service resource: the only authorization
// is that the caller is the directory's own user.
type BookmarkDirectory struct {
	ID        UserID
	Bookmarks []Bookmark
}

// ToBookmarkAdded appends the bookmark; adding an existing (item, tag)
// pair again leaves the directory unchanged.
func (d BookmarkDirectory) ToBookmarkAdded(itemID ItemID, tag Name, myself MyselfCertificate) (BookmarkDirectory, error) {
	if myself.UserID() != d.ID {
		return d, apperr.CertificateMismatch("myself certificate covers another user")
	}
	for _, b := range d.Bookmarks {
		if b.ItemID == itemID && b.Tag == tag {
			return d, nil
		}
	}
	next := d
	next.Bookmarks = append(append([]Bookmark(nil), d.Bookmarks...), Bookmark{
		UserID: d.ID,
		ItemID: itemID,
		Tag:    tag,
	})
	return next, nil
}

// ToBookmarkRemoved drops the bookmark keyed by (item, tag); removing
// an absent pair succeeds.
func (d BookmarkDirectory) ToBookmarkRemoved(itemID ItemID, tag Name, myself MyselfCertificate) (BookmarkDirectory, error) {
	if myself.UserID() != d.ID {
		return d, apperr.CertificateMismatch("myself certificate covers another user")
	}
	kept := make([]Bookmark, 0, len(d.Bookmarks))
	for _, b := range d.Bookmarks {
		if b.ItemID == itemID && b.Tag == tag {
			continue
		}
		kept = append(kept, b)
	}
	next := d
	next.Bookmarks = kept
	return next, nil
}
