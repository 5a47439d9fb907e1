package docstore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/simplereplay-cli/cloud"
	"github.com/user/simplereplay-cli/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "docstore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestRouter(t *testing.T) (http.Handler, *Store) {
	t.Helper()
	s := newTestStore(t)
	return NewRouter(ServerConfig{
		Store:   s,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Version: "test",
	}), s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, reader))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "ok", decode[healthResponse](t, rr).Status)
}

func TestCreateThenGet(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/projects", `{"title":"Final","youtubeVideoId":"ZabnNjou_PI","clips":[]}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	id := decode[saveResponse](t, rr).ID
	require.Len(t, id, 26)

	rr = do(t, h, http.MethodGet, "/projects/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := decode[map[string]any](t, rr)
	assert.Equal(t, "Final", doc["title"])
	assert.Equal(t, id, doc["id"])
	assert.NotEmpty(t, doc["createdAt"])
	assert.NotEmpty(t, doc["updatedAt"])
}

func TestGetMissingIs404(t *testing.T) {
	h, _ := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/projects/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decode[ErrorResponse](t, rr).Code)
}

func TestRejectsNonObjectBodies(t *testing.T) {
	h, _ := newTestRouter(t)
	for _, body := range []string{"", "null", "[1,2]", "{"} {
		rr := do(t, h, http.MethodPost, "/projects", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
	}
}

func TestPutMergesTopLevelFields(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := do(t, h, http.MethodPut, "/projects/p1", `{"title":"A","clips":[{"id":"c1"}],"games":[]}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	first := decode[map[string]any](t, do(t, h, http.MethodGet, "/projects/p1", ""))

	rr = do(t, h, http.MethodPut, "/projects/p1", `{"title":"B"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "p1", decode[saveResponse](t, rr).ID)

	doc := decode[map[string]any](t, do(t, h, http.MethodGet, "/projects/p1", ""))
	assert.Equal(t, "B", doc["title"])
	assert.Len(t, doc["clips"], 1, "fields absent from the patch are kept")
	assert.Equal(t, first["createdAt"], doc["createdAt"])
}

func TestListNewestFirstWithLimit(t *testing.T) {
	h, s := newTestRouter(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, title := range []string{"one", "two", "three"} {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/projects", `{"title":"`+title+`"}`).Code)
	}

	rr := do(t, h, http.MethodGet, "/projects?limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[listResponse](t, rr)
	require.Len(t, list.Projects, 2)
	assert.Equal(t, "three", list.Projects[0].Title)
	assert.Equal(t, "two", list.Projects[1].Title)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/projects?limit=zero", "").Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rr := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCloudProviderRoundTrip(t *testing.T) {
	h, _ := newTestRouter(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx := context.Background()
	client := cloud.NewHTTPProvider(srv.URL, srv.Client(), nil)

	doc := &cloud.Project{
		Title:    "Argentina - EEUU",
		VideoRef: "ZabnNjou_PI",
		Clips:    []model.Clip{{ID: "c1", GameID: "g1", TagTypeID: "tag-try", TSec: 10, StartSec: 7, EndSec: 18}},
		ClipFlags: map[string][]model.FlagEntry{
			"c1": {{Flag: model.FlagBueno, UserID: "u1"}},
		},
	}
	id, err := client.SaveProject(ctx, "", doc)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc.Title = "Renamed"
	_, err = client.SaveProject(ctx, id, doc)
	require.NoError(t, err)

	loaded, err := client.LoadProject(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Renamed", loaded.Title)
	require.Len(t, loaded.Clips, 1)
	assert.Equal(t, 18.0, loaded.Clips[0].EndSec)
	assert.Equal(t, model.FlagBueno, loaded.ClipFlags["c1"][0].Flag)
	assert.NotNil(t, loaded.CreatedAt)

	missing, err := client.LoadProject(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := client.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "Renamed", list[0].Title)
}
