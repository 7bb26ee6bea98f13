package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Bookmark is a single saved URL. It belongs to exactly one folder and one
// user, both fixed at construction.
type Bookmark struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Name          string        `bson:"name"`
	URL           string        `bson:"url"`
	IsFavorite    bool          `bson:"is_favorite"`
	LastVisitedAt *time.Time    `bson:"last_visited_at,omitempty"`
	FolderID      bson.ObjectID `bson:"folder_id"`
	UserID        bson.ObjectID `bson:"user_id"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}

// NewBookmark creates a bookmark inside the given folder. Name and URL must
// not be blank; the URL format itself is checked upstream at the payload
// layer, not here.
func NewBookmark(name, url string, folderID, userID bson.ObjectID) (*Bookmark, error) {
	if isBlank(name) {
		return nil, ErrEmptyName
	}
	if isBlank(url) {
		return nil, ErrEmptyURL
	}

	now := time.Now()

	return &Bookmark{
		Name:      name,
		URL:       url,
		FolderID:  folderID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename replaces the bookmark name. Blank input is rejected.
func (b *Bookmark) Rename(name string) error {
	if isBlank(name) {
		return ErrEmptyName
	}
	b.Name = name
	return nil
}

// ChangeURL replaces the bookmark URL. Blank input is rejected.
func (b *Bookmark) ChangeURL(url string) error {
	if isBlank(url) {
		return ErrEmptyURL
	}
	b.URL = url
	return nil
}

// MarkFavorite flags the bookmark as a favorite. Repeated calls have no
// further effect.
func (b *Bookmark) MarkFavorite() {
	b.IsFavorite = true
}

// UnmarkFavorite clears the favorite flag.
func (b *Bookmark) UnmarkFavorite() {
	b.IsFavorite = false
}

// Visit records the current time as the last visit.
func (b *Bookmark) Visit() {
	now := time.Now()
	b.LastVisitedAt = &now
}
