package handler

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgvalidator "github.com/johnquangdev/meetmind/pkg/validator"
)

type fakeArchive struct {
	gotDay  time.Time
	keys    []string
	objects map[string]string
	listErr error
}

func (f *fakeArchive) ListRawOutputs(_ context.Context, day time.Time) ([]string, error) {
	f.gotDay = day
	return f.keys, f.listErr
}

func (f *fakeArchive) ReadRawOutput(_ context.Context, key string) (string, error) {
	raw, ok := f.objects[key]
	if !ok {
		return "", stdErrors.New("The specified key does not exist.")
	}
	return raw, nil
}

func (f *fakeArchive) GetFileURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://files.example.com/meetmind/" + key + "?X-Amz-Signature=abc", nil
}

func newArchiveEcho(store *fakeArchive) *echo.Echo {
	logger := zap.NewNop()
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = ErrorHandler(logger)

	h := NewArchiveHandler(store, logger)
	h.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	e.GET("/api/v1/archive/raw-outputs", h.List)
	e.POST("/api/v1/archive/raw-outputs/redecode", h.Redecode)
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestArchiveList(t *testing.T) {
	store := &fakeArchive{keys: []string{"raw-outputs/2025-03-09/a.txt"}}
	e := newArchiveEcho(store)

	rec := serve(e, http.MethodGet, "/api/v1/archive/raw-outputs?day=2025-03-09", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2025-03-09", store.gotDay.Format("2006-01-02"))

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	outputs := data["outputs"].([]interface{})
	require.Len(t, outputs, 1)
	assert.Equal(t, "raw-outputs/2025-03-09/a.txt", outputs[0].(map[string]interface{})["key"])
	assert.Contains(t, outputs[0].(map[string]interface{})["url"], "X-Amz-Signature")
}

func TestArchiveList_DefaultsToToday(t *testing.T) {
	store := &fakeArchive{}
	rec := serve(newArchiveEcho(store), http.MethodGet, "/api/v1/archive/raw-outputs", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-03-10", store.gotDay.Format("2006-01-02"))
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Empty(t, data["outputs"])
}

func TestArchiveList_Errors(t *testing.T) {
	rec := serve(newArchiveEcho(&fakeArchive{}), http.MethodGet, "/api/v1/archive/raw-outputs?day=March", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(newArchiveEcho(&fakeArchive{listErr: stdErrors.New("connection refused")}), http.MethodGet, "/api/v1/archive/raw-outputs", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestArchiveRedecode(t *testing.T) {
	store := &fakeArchive{objects: map[string]string{
		"raw-outputs/2025-03-10/a.txt": "```json\n{\"summary\": \"Retro\", \"key_points\": [], \"action_items\": [{\"task\": \"Book room\",}]}\n```",
		"raw-outputs/2025-03-10/b.txt": "I could not summarize this meeting.",
	}}
	e := newArchiveEcho(store)

	rec := serve(e, http.MethodPost, "/api/v1/archive/raw-outputs/redecode", `{"key":"raw-outputs/2025-03-10/a.txt"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "direct", rec.Header().Get(headerDecodeStage))
	body := decodeBody(t, rec)
	assert.Equal(t, "Retro", body["summary"])

	rec = serve(e, http.MethodPost, "/api/v1/archive/raw-outputs/redecode", `{"key":"raw-outputs/2025-03-10/b.txt"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(e, http.MethodPost, "/api/v1/archive/raw-outputs/redecode", `{"key":"audio/2025-03-10/c.mp3"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPost, "/api/v1/archive/raw-outputs/redecode", `{"key":"raw-outputs/2025-03-10/missing.txt"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
