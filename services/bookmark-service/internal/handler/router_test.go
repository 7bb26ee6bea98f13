package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/handler"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/model"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/repository"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
	"github.com/thanaritk/markvault/shared/auth"
)

const accessSecret = "test-access-secret"

// stubFolderUsecase serves a fixed set of folders keyed by owner and id.
type stubFolderUsecase struct {
	folders map[string]*model.Folder
}

func (s *stubFolderUsecase) GetAll(
	_ context.Context,
	userID string,
	_ repository.Pagination,
) ([]*model.Folder, error) {
	folders := make([]*model.Folder, 0)
	for _, folder := range s.folders {
		if folder.UserID.Hex() == userID {
			folders = append(folders, folder)
		}
	}
	return folders, nil
}

func (s *stubFolderUsecase) GetByID(_ context.Context, userID, folderID string) (*model.Folder, error) {
	folder, ok := s.folders[folderID]
	if !ok || folder.UserID.Hex() != userID {
		return nil, nil
	}
	return folder, nil
}

func (s *stubFolderUsecase) Count(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, folder := range s.folders {
		if folder.UserID.Hex() == userID {
			count++
		}
	}
	return count, nil
}

func (s *stubFolderUsecase) Create(_ context.Context, userID string, params *usecase.CreateFolderParams) (*model.Folder, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	folder, err := model.NewFolder(params.Name, uid)
	if err != nil {
		return nil, err
	}
	folder.ID = bson.NewObjectID()
	s.folders[folder.ID.Hex()] = folder

	return folder, nil
}

func (s *stubFolderUsecase) Update(
	_ context.Context,
	userID, folderID string,
	params *usecase.UpdateFolderParams,
) (*model.Folder, error) {
	folder, ok := s.folders[folderID]
	if !ok || folder.UserID.Hex() != userID {
		return nil, usecase.ErrFolderNotFound
	}

	if params.Name != nil {
		if err := folder.Rename(*params.Name); err != nil {
			return nil, err
		}
	}
	if params.IsFavorite != nil && *params.IsFavorite {
		folder.MarkFavorite()
	}

	return folder, nil
}

func (s *stubFolderUsecase) MarkVisited(_ context.Context, userID, folderID string) error {
	folder, ok := s.folders[folderID]
	if !ok || folder.UserID.Hex() != userID {
		return usecase.ErrFolderNotFound
	}
	folder.Visit()
	return nil
}

func (s *stubFolderUsecase) Delete(_ context.Context, userID, folderID string) (bool, error) {
	folder, ok := s.folders[folderID]
	if !ok || folder.UserID.Hex() != userID {
		return false, nil
	}
	delete(s.folders, folderID)
	return true, nil
}

type routerFixture struct {
	router  http.Handler
	folders *stubFolderUsecase
	userID  string
	token   string
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	jwtAuth := auth.NewJWTAuthenticator("markvault", "markvault")
	userID := bson.NewObjectID().Hex()

	token, err := jwtAuth.GenerateUserToken(userID, accessSecret, time.Minute)
	require.NoError(t, err)

	folders := &stubFolderUsecase{folders: make(map[string]*model.Folder)}
	logger := zerolog.Nop()

	h := handler.NewHandlers(
		nil,
		folders,
		nil,
		nil,
		handler.NewAuthMiddleware(jwtAuth, accessSecret),
		&logger,
	)

	return &routerFixture{
		router:  handler.NewRouter(h, &logger),
		folders: folders,
		userID:  userID,
		token:   token,
	}
}

func (f *routerFixture) do(t *testing.T, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHealthz(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestFolderRoutesRequireAuth(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/folders/", "", false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/folders/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndGetFolder(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/folders/", `{"name":"Reading"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Reading", created.Name)
	require.NotEmpty(t, created.ID)

	rec = f.do(t, http.MethodGet, "/api/v1/folders/"+created.ID+"/", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/folders/"+bson.NewObjectID().Hex()+"/", "", true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateFolderValidation(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/folders/", `{"name":""}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Fields, "Name")

	rec = f.do(t, http.MethodPost, "/api/v1/folders/", `not json`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVisitAndDeleteFolder(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/folders/", `{"name":"Reading"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodPost, "/api/v1/folders/"+created.ID+"/visit", "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, f.folders.folders[created.ID].LastVisitedAt)

	rec = f.do(t, http.MethodDelete, "/api/v1/folders/"+created.ID+"/", "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/folders/"+created.ID+"/", "", true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
