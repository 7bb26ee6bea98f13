package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Folder groups bookmarks for a single user. The owning user is fixed at
// construction; the name can change but never to a blank value.
type Folder struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Name          string        `bson:"name"`
	IsFavorite    bool          `bson:"is_favorite"`
	LastVisitedAt *time.Time    `bson:"last_visited_at,omitempty"`
	UserID        bson.ObjectID `bson:"user_id"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`

	// bookmarks is an in-memory navigation list only. The repository is the
	// source of truth for folder membership; this list exists so the entity
	// can enforce that an added bookmark actually belongs to this folder.
	bookmarks []*Bookmark
}

// NewFolder creates a folder owned by the given user. Blank names are
// rejected.
func NewFolder(name string, userID bson.ObjectID) (*Folder, error) {
	if isBlank(name) {
		return nil, ErrEmptyName
	}

	now := time.Now()

	return &Folder{
		Name:      name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename replaces the folder name. Blank input is rejected.
func (f *Folder) Rename(name string) error {
	if isBlank(name) {
		return ErrEmptyName
	}
	f.Name = name
	return nil
}

// MarkFavorite flags the folder as a favorite. Calling it repeatedly has no
// further effect.
func (f *Folder) MarkFavorite() {
	f.IsFavorite = true
}

// UnmarkFavorite clears the favorite flag.
func (f *Folder) UnmarkFavorite() {
	f.IsFavorite = false
}

// Visit records the current time as the last visit.
func (f *Folder) Visit() {
	now := time.Now()
	f.LastVisitedAt = &now
}

// AddBookmark appends a bookmark to the navigation list. The bookmark must
// reference this folder; adding the same bookmark twice is a no-op.
func (f *Folder) AddBookmark(b *Bookmark) error {
	if b == nil {
		return ErrNilBookmark
	}
	if b.FolderID != f.ID {
		return ErrBookmarkNotInFolder
	}

	for _, existing := range f.bookmarks {
		if existing.ID == b.ID {
			return nil
		}
	}

	f.bookmarks = append(f.bookmarks, b)
	return nil
}

// RemoveBookmark removes the bookmark with the given id from the navigation
// list. An unknown id is a no-op.
func (f *Folder) RemoveBookmark(id bson.ObjectID) {
	for i, b := range f.bookmarks {
		if b.ID == id {
			f.bookmarks = append(f.bookmarks[:i], f.bookmarks[i+1:]...)
			return
		}
	}
}

// Bookmarks returns the in-memory navigation list.
func (f *Folder) Bookmarks() []*Bookmark {
	return f.bookmarks
}
