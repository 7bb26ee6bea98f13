package payload

import (
	"time"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
)

type CreateFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateFolderRequest struct {
	Name       *string `json:"name"        validate:"omitempty,min=1"`
	IsFavorite *bool   `json:"is_favorite"`
}

type FolderResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	IsFavorite    bool       `json:"is_favorite"`
	LastVisitedAt *time.Time `json:"last_visited_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewFolderResponse(folder *model.Folder) FolderResponse {
	return FolderResponse{
		ID:            folder.ID.Hex(),
		Name:          folder.Name,
		IsFavorite:    folder.IsFavorite,
		LastVisitedAt: folder.LastVisitedAt,
		CreatedAt:     folder.CreatedAt,
	}
}

func NewFolderListResponse(folders []*model.Folder) []FolderResponse {
	responses := make([]FolderResponse, 0, len(folders))
	for _, folder := range folders {
		responses = append(responses, NewFolderResponse(folder))
	}
	return responses
}

type CountResponse struct {
	Count int64 `json:"count"`
}
