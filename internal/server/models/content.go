package models

import "time"

// FacadeContent is a gallery post. ImageKey is the object storage key of an
// attached image, empty when there is none.
type FacadeContent struct {
	ID            string
	IdentityID    string
	Text          string
	ImageKey      string
	CreatedAt     time.Time
	ApplauseCount int
	Deleted       bool
}

// GalleryEntry is a content row joined with its poster's expiry, as read
// from storage.
type GalleryEntry struct {
	Content           FacadeContent
	IdentityExpiresAt time.Time
}

// GalleryItem is the public view of a gallery post.
type GalleryItem struct {
	ID            string
	Text          string
	ImageURL      string
	CreatedAt     time.Time
	ApplauseCount int
	TimeRemaining string
}

// Applause records that one hashed address applauded one content.
type Applause struct {
	ContentID       string
	ApplauderIPHash string
	CreatedAt       time.Time
}
