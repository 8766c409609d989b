package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meetmind/internal/domain/entities"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external"
	"github.com/johnquangdev/meetmind/pkg/config"
	"github.com/johnquangdev/meetmind/pkg/retry"
)

func TestBuildPage(t *testing.T) {
	page := BuildPage("parent-1", "Weekly sync", "We shipped.", []entities.ActionItem{
		{Task: "Write notes", Owner: "Ann", Deadline: "Friday", Priority: entities.PriorityHigh},
	})

	assert.Equal(t, "parent-1", page.Parent.PageID)
	require.Len(t, page.Children, 4)
	assert.Equal(t, "heading_2", page.Children[0].Type)
	assert.Equal(t, "Meeting Summary", page.Children[0].Heading2.RichText[0].Text.Content)
	assert.Equal(t, "We shipped.", page.Children[1].Paragraph.RichText[0].Text.Content)
	assert.Equal(t, "Action Items", page.Children[2].Heading2.RichText[0].Text.Content)

	todo := page.Children[3]
	assert.Equal(t, "to_do", todo.Type)
	assert.False(t, todo.ToDo.Checked)
	assert.Equal(t, "Write notes (Owner: Ann, Deadline: Friday)", todo.ToDo.RichText[0].Text.Content)

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"title":{"title":[{"text":{"content":"Weekly sync"}}]}`)
	assert.NotContains(t, string(raw), `"paragraph":null`)
}

func TestBuildPage_SplitsLongText(t *testing.T) {
	page := BuildPage("p", "t", strings.Repeat("a", 4500), nil)

	runs := page.Children[1].Paragraph.RichText
	require.Len(t, runs, 3)
	assert.Len(t, runs[0].Text.Content, 2000)
	assert.Len(t, runs[2].Text.Content, 500)
}

func TestCreatePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/pages", r.URL.Path)
		assert.Equal(t, "Bearer secret_abc", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		var body PageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "parent-1", body.Parent.PageID)

		_, _ = w.Write([]byte(`{"id":"page-9","url":"https://notion.so/page-9"}`))
	}))
	defer srv.Close()

	c := NewClient(&config.NotionConfig{BaseURL: srv.URL + "/", Version: "2022-06-28"})
	page, err := c.CreatePage(context.Background(), "secret_abc", BuildPage("parent-1", "t", "s", nil))
	require.NoError(t, err)
	assert.Equal(t, "https://notion.so/page-9", page.URL)
}

func TestCreatePage_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"validation_error"}`))
	}))
	defer srv.Close()

	c := NewClient(&config.NotionConfig{BaseURL: srv.URL, Version: "2022-06-28"})
	_, err := c.CreatePage(context.Background(), "secret_abc", BuildPage("p", "t", "s", nil))

	var statusErr *external.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "notion returned status 400")
}

func TestCreatePage_TruncatedSuccessIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"id":"page-9","url":`))
	}))
	defer srv.Close()

	c := NewClient(&config.NotionConfig{BaseURL: srv.URL, Version: "2022-06-28"})
	policy := retry.Policy{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, MaxRetries: 3}

	err := retry.Do(context.Background(), policy, func(ctx context.Context) error {
		_, err := c.CreatePage(ctx, "secret_abc", BuildPage("p", "t", "s", nil))
		return err
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
