package export

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/meetmind/errors"
	"github.com/johnquangdev/meetmind/internal/domain/entities"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external/notion"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external/trello"
	"github.com/johnquangdev/meetmind/pkg/metrics"
	"github.com/johnquangdev/meetmind/pkg/retry"
)

const (
	TargetNotion = "notion"
	TargetTrello = "trello"
)

// NotionPages creates Notion pages
type NotionPages interface {
	CreatePage(ctx context.Context, token string, page *notion.PageRequest) (*notion.Page, error)
}

// TrelloCards creates Trello cards
type TrelloCards interface {
	CreateCard(ctx context.Context, creds trello.Credentials, card trello.CardRequest) (*trello.Card, error)
}

// NotionInput is a summary and where to put it in Notion
type NotionInput struct {
	Token        string
	ParentPageID string
	Title        string
	Summary      string
	ActionItems  []entities.ActionItem
}

// NotionOutput is the created page
type NotionOutput struct {
	PageID string
	URL    string
}

// TrelloOutput lists created cards in action item order
type TrelloOutput struct {
	Cards []trello.Card
}

// Service defines export methods
type Service interface {
	ExportNotion(ctx context.Context, in NotionInput) (*NotionOutput, error)
	ExportTrello(ctx context.Context, creds trello.Credentials, items []entities.ActionItem) (*TrelloOutput, error)
	// ExportTrelloConfigured uses the server's own Trello credentials
	ExportTrelloConfigured(ctx context.Context, items []entities.ActionItem) (*TrelloOutput, error)
}

// Deps are the collaborators of the export service
type Deps struct {
	Notion        NotionPages
	Trello        TrelloCards
	TrelloDefault trello.Credentials
	Concurrency   int
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
	Retry         retry.Policy
}

type exportService struct {
	Deps
}

// NewService constructs the export service
func NewService(deps Deps) Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewMetrics()
	}
	if deps.Concurrency <= 0 {
		deps.Concurrency = 4
	}
	if deps.Retry == (retry.Policy{}) {
		deps.Retry = retry.DefaultPolicy
	}
	return &exportService{Deps: deps}
}

// ExportNotion writes the summary and action items to a new Notion page
func (s *exportService) ExportNotion(ctx context.Context, in NotionInput) (out *NotionOutput, err error) {
	defer s.record(TargetNotion, &err)

	page := notion.BuildPage(in.ParentPageID, in.Title, in.Summary, in.ActionItems)

	var created *notion.Page
	err = retry.Do(ctx, s.Retry, func(ctx context.Context) error {
		var callErr error
		created, callErr = s.Notion.CreatePage(ctx, in.Token, page)
		return callErr
	}, s.notify(TargetNotion))
	if err != nil {
		return nil, s.failed(TargetNotion, err)
	}

	s.Logger.Info("✅ Exported summary to Notion",
		zap.String("page_id", created.ID),
		zap.Int("action_items", len(in.ActionItems)))

	return &NotionOutput{PageID: created.ID, URL: created.URL}, nil
}

// ExportTrello creates one card per action item on creds.ListID. Cards are
// created concurrently; the first failure cancels the rest.
func (s *exportService) ExportTrello(ctx context.Context, creds trello.Credentials, items []entities.ActionItem) (out *TrelloOutput, err error) {
	defer s.record(TargetTrello, &err)

	cards := make([]trello.Card, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			req := CardFor(item)
			return retry.Do(gctx, s.Retry, func(ctx context.Context) error {
				card, callErr := s.Trello.CreateCard(ctx, creds, req)
				if callErr != nil {
					return callErr
				}
				cards[i] = *card
				return nil
			}, s.notify(TargetTrello))
		})
	}

	if err = g.Wait(); err != nil {
		return nil, s.failed(TargetTrello, err)
	}

	s.Logger.Info("✅ Exported action items to Trello", zap.Int("cards", len(cards)))

	return &TrelloOutput{Cards: cards}, nil
}

// ExportTrelloConfigured exports with TRELLO_KEY, TRELLO_TOKEN and
// TRELLO_LIST_ID from the server configuration
func (s *exportService) ExportTrelloConfigured(ctx context.Context, items []entities.ActionItem) (*TrelloOutput, error) {
	if !s.TrelloDefault.Complete() {
		return nil, errors.ErrExportNotConfigured(TargetTrello)
	}
	return s.ExportTrello(ctx, s.TrelloDefault, items)
}

// CardFor renders an action item as a Trello card
func CardFor(item entities.ActionItem) trello.CardRequest {
	return trello.CardRequest{
		Name: item.Task,
		Desc: fmt.Sprintf("Owner: %s\nDeadline: %s\nPriority: %s", item.Owner, item.Deadline, item.Priority),
	}
}

func (s *exportService) notify(target string) retry.NotifyFunc {
	return func(err error, wait time.Duration) {
		s.Logger.Warn("🔁 Export call failed, retrying",
			zap.String("target", target),
			zap.Duration("wait", wait),
			zap.Error(err))
	}
}

func (s *exportService) failed(target string, err error) error {
	if stderrors.Is(err, context.Canceled) {
		return err
	}
	s.Logger.Error("❌ Export failed", zap.String("target", target), zap.Error(err))
	return errors.ErrExportFailed(target, err)
}

func (s *exportService) record(target string, err *error) {
	s.Metrics.ExportsTotal.WithLabelValues(target, metrics.Outcome(*err)).Inc()
}
