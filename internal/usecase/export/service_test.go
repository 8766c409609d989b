package export

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/johnquangdev/meetmind/errors"
	"github.com/johnquangdev/meetmind/internal/domain/entities"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external/notion"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external/trello"
	"github.com/johnquangdev/meetmind/pkg/retry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fastRetry = retry.Policy{
	InitialInterval: time.Millisecond,
	MaxInterval:     time.Millisecond,
	MaxRetries:      2,
}

var creds = trello.Credentials{APIKey: "k", Token: "t", ListID: "l"}

type fakeNotion struct {
	calls int
	errs  []error
	got   *notion.PageRequest
}

func (f *fakeNotion) CreatePage(_ context.Context, _ string, page *notion.PageRequest) (*notion.Page, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) {
		return nil, f.errs[i]
	}
	f.got = page
	return &notion.Page{ID: "page-1", URL: "https://notion.so/page-1"}, nil
}

type fakeTrello struct {
	mu       sync.Mutex
	inFlight int32
	maxSeen  int32
	failOn   string
	requests []trello.CardRequest
}

func (f *fakeTrello) CreateCard(_ context.Context, _ trello.Credentials, card trello.CardRequest) (*trello.Card, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	if n > f.maxSeen {
		f.maxSeen = n
	}
	f.requests = append(f.requests, card)
	f.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	if card.Name == f.failOn {
		return nil, &external.StatusError{Service: "trello", StatusCode: 400, Body: "invalid list"}
	}
	return &trello.Card{ID: "id-" + card.Name, Name: card.Name, URL: "https://trello.com/c/" + card.Name}, nil
}

func items(n int) []entities.ActionItem {
	out := make([]entities.ActionItem, n)
	for i := range out {
		out[i] = entities.ActionItem{Task: fmt.Sprintf("t%d", i), Owner: "Ann", Deadline: "Friday", Priority: entities.PriorityLow}
	}
	return out
}

func TestExportNotion(t *testing.T) {
	n := &fakeNotion{errs: []error{&external.StatusError{Service: "notion", StatusCode: 502, Body: "upstream"}}}
	svc := NewService(Deps{Notion: n, Retry: fastRetry})

	out, err := svc.ExportNotion(context.Background(), NotionInput{
		Token:        "secret",
		ParentPageID: "parent",
		Title:        "Sync",
		Summary:      "Done",
		ActionItems:  items(2),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, n.calls)
	assert.Equal(t, "https://notion.so/page-1", out.URL)
	assert.Len(t, n.got.Children, 5)
}

func TestExportNotion_Failure(t *testing.T) {
	n := &fakeNotion{errs: []error{&external.StatusError{Service: "notion", StatusCode: 401, Body: "unauthorized"}}}
	svc := NewService(Deps{Notion: n, Retry: fastRetry})

	_, err := svc.ExportNotion(context.Background(), NotionInput{Token: "bad"})

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_EXPORT_FAILED, appErr.Code)
	assert.Equal(t, "notion", appErr.Details["target"])
	assert.Equal(t, 1, n.calls)
}

func TestExportTrello_KeepsOrderAndBoundsConcurrency(t *testing.T) {
	tr := &fakeTrello{}
	svc := NewService(Deps{Trello: tr, Concurrency: 3, Retry: fastRetry})

	out, err := svc.ExportTrello(context.Background(), creds, items(10))
	require.NoError(t, err)

	require.Len(t, out.Cards, 10)
	for i, card := range out.Cards {
		assert.Equal(t, fmt.Sprintf("id-t%d", i), card.ID)
	}
	assert.LessOrEqual(t, tr.maxSeen, int32(3))
	assert.Len(t, tr.requests, 10)
}

func TestExportTrello_FailureSurfaces(t *testing.T) {
	tr := &fakeTrello{failOn: "t2"}
	svc := NewService(Deps{Trello: tr, Concurrency: 1, Retry: fastRetry})

	_, err := svc.ExportTrello(context.Background(), creds, items(4))

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_EXPORT_FAILED, appErr.Code)

	var statusErr *external.StatusError
	assert.True(t, stderrors.As(err, &statusErr))
}

type truncatingTrello struct {
	calls int32
}

func (f *truncatingTrello) CreateCard(context.Context, trello.Credentials, trello.CardRequest) (*trello.Card, error) {
	atomic.AddInt32(&f.calls, 1)
	return nil, retry.Permanent(fmt.Errorf("failed to decode trello response: %w", io.ErrUnexpectedEOF))
}

func TestExportTrello_TruncatedSuccessCreatesOneCard(t *testing.T) {
	tr := &truncatingTrello{}
	svc := NewService(Deps{Trello: tr, Retry: fastRetry})

	_, err := svc.ExportTrello(context.Background(), creds, items(1))

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_EXPORT_FAILED, appErr.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tr.calls))
}

func TestExportTrello_CanceledIsNotExportFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(Deps{Trello: &fakeTrello{}, Retry: fastRetry})
	_, err := svc.ExportTrello(ctx, creds, items(1))

	assert.ErrorIs(t, err, context.Canceled)
	var appErr errors.AppError
	assert.False(t, stderrors.As(err, &appErr))
}

func TestExportTrelloConfigured(t *testing.T) {
	svc := NewService(Deps{Trello: &fakeTrello{}, Retry: fastRetry})
	_, err := svc.ExportTrelloConfigured(context.Background(), items(1))

	var appErr errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_EXPORT_NOT_CONFIGURED, appErr.Code)

	svc = NewService(Deps{Trello: &fakeTrello{}, TrelloDefault: creds, Retry: fastRetry})
	out, err := svc.ExportTrelloConfigured(context.Background(), items(2))
	require.NoError(t, err)
	assert.Len(t, out.Cards, 2)
}

func TestCardFor(t *testing.T) {
	card := CardFor(entities.ActionItem{Task: "Ship", Owner: "Ann", Deadline: "Friday", Priority: entities.PriorityHigh})
	assert.Equal(t, "Ship", card.Name)
	assert.Equal(t, "Owner: Ann\nDeadline: Friday\nPriority: High", card.Desc)
}
