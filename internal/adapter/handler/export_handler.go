package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmind/errors"
	exportdto "github.com/johnquangdev/meetmind/internal/adapter/dto/export"
	summarydto "github.com/johnquangdev/meetmind/internal/adapter/dto/summary"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external/trello"
	exportuc "github.com/johnquangdev/meetmind/internal/usecase/export"
)

// Export handles exports to Notion and Trello
type Export struct {
	svc    exportuc.Service
	logger *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(svc exportuc.Service, logger *zap.Logger) *Export {
	return &Export{svc: svc, logger: logger}
}

// Notion handles POST /api/v1/export/notion
// @Summary      Export to Notion
// @Description  Creates a Notion page with the summary and a to-do per action item
// @Tags         Export
// @Accept       json
// @Produce      json
// @Param        request  body      export.NotionExportRequest  true  "Notion target and content"
// @Success      200      {object}  export.NotionExportResponse
// @Failure      400      {object}  common.ErrorEnvelope
// @Failure      500      {object}  common.ErrorEnvelope  "Notion rejected the page"
// @Router       /api/v1/export/notion [post]
func (h *Export) Notion(c echo.Context) error {
	var req exportdto.NotionExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	out, err := h.svc.ExportNotion(c.Request().Context(), exportuc.NotionInput{
		Token:        req.Token,
		ParentPageID: req.ParentPageID,
		Title:        req.Title,
		Summary:      req.Summary,
		ActionItems:  summarydto.ToEntities(req.ActionItems),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, exportdto.NotionExportResponse{Status: "success", URL: out.URL})
}

// Trello handles POST /api/v1/export/trello
// @Summary      Export to Trello
// @Description  Creates one card per action item on the given list
// @Tags         Export
// @Accept       json
// @Produce      json
// @Param        request  body      export.TrelloExportRequest  true  "Trello credentials and action items"
// @Success      200      {object}  export.TrelloExportResponse
// @Failure      400      {object}  common.ErrorEnvelope
// @Failure      500      {object}  common.ErrorEnvelope  "Trello rejected a card"
// @Router       /api/v1/export/trello [post]
func (h *Export) Trello(c echo.Context) error {
	var req exportdto.TrelloExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	creds := trello.Credentials{APIKey: req.APIKey, Token: req.Token, ListID: req.ListID}
	out, err := h.svc.ExportTrello(c.Request().Context(), creds, summarydto.ToEntities(req.ActionItems))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	cards := make([]exportdto.Card, len(out.Cards))
	for i, card := range out.Cards {
		cards[i] = exportdto.Card{ID: card.ID, URL: card.URL}
	}

	return c.JSON(http.StatusOK, exportdto.TrelloExportResponse{
		Status:       "success",
		CardsCreated: len(cards),
		Cards:        cards,
	})
}

// ConfiguredTrello handles POST /export-to-trello
// @Summary      Export to the server's Trello list
// @Description  Same as /api/v1/export/trello with TRELLO_KEY, TRELLO_TOKEN and TRELLO_LIST_ID from the server environment
// @Tags         Export
// @Accept       json
// @Produce      json
// @Param        request  body      export.ConfiguredTrelloExportRequest  true  "Action items"
// @Success      200      {object}  export.ConfiguredTrelloExportResponse
// @Failure      400      {object}  common.ErrorEnvelope  "Trello credentials not configured"
// @Failure      500      {object}  common.ErrorEnvelope
// @Router       /export-to-trello [post]
func (h *Export) ConfiguredTrello(c echo.Context) error {
	var req exportdto.ConfiguredTrelloExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	out, err := h.svc.ExportTrelloConfigured(c.Request().Context(), summarydto.ToEntities(req.ActionItems))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ids := make([]string, len(out.Cards))
	for i, card := range out.Cards {
		ids[i] = card.ID
	}

	return c.JSON(http.StatusOK, exportdto.ConfiguredTrelloExportResponse{Success: true, CreatedCardIDs: ids})
}
