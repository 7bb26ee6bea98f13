package payload

import (
	"time"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
)

type CreateBookmarkRequest struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url"  validate:"required,url"`
}

type UpdateBookmarkRequest struct {
	Name       *string `json:"name"        validate:"omitempty,min=1"`
	URL        *string `json:"url"         validate:"omitempty,url"`
	IsFavorite *bool   `json:"is_favorite"`
}

type BookmarkResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	IsFavorite    bool       `json:"is_favorite"`
	LastVisitedAt *time.Time `json:"last_visited_at,omitempty"`
	FolderID      string     `json:"folder_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewBookmarkResponse(bookmark *model.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:            bookmark.ID.Hex(),
		Name:          bookmark.Name,
		URL:           bookmark.URL,
		IsFavorite:    bookmark.IsFavorite,
		LastVisitedAt: bookmark.LastVisitedAt,
		FolderID:      bookmark.FolderID.Hex(),
		CreatedAt:     bookmark.CreatedAt,
	}
}

func NewBookmarkListResponse(bookmarks []*model.Bookmark) []BookmarkResponse {
	responses := make([]BookmarkResponse, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		responses = append(responses, NewBookmarkResponse(bookmark))
	}
	return responses
}
