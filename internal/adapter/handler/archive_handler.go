package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmind/errors"
	archivedto "github.com/johnquangdev/meetmind/internal/adapter/dto/archive"
	summarydto "github.com/johnquangdev/meetmind/internal/adapter/dto/summary"
	"github.com/johnquangdev/meetmind/internal/decoder"
	"github.com/johnquangdev/meetmind/internal/infrastructure/storage"
)

const rawOutputURLExpiry = time.Hour

// RawOutputArchive is the read side of the raw output archive
type RawOutputArchive interface {
	ListRawOutputs(ctx context.Context, day time.Time) ([]string, error)
	ReadRawOutput(ctx context.Context, key string) (string, error)
	GetFileURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Archive lets operators inspect model outputs that failed to decode
type Archive struct {
	store  RawOutputArchive
	logger *zap.Logger
	now    func() time.Time
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(store RawOutputArchive, logger *zap.Logger) *Archive {
	return &Archive{store: store, logger: logger, now: time.Now}
}

// List handles GET /api/v1/archive/raw-outputs
// @Summary      List archived raw outputs
// @Description  Lists model outputs that could not be decoded on one UTC day, with presigned download links
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        day  query     string  false  "Day as YYYY-MM-DD (default today)"
// @Success      200  {object}  archive.ListRawOutputsResponse
// @Failure      400  {object}  common.ErrorEnvelope
// @Failure      500  {object}  common.ErrorEnvelope
// @Router       /api/v1/archive/raw-outputs [get]
func (h *Archive) List(c echo.Context) error {
	var req archivedto.ListRawOutputsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("day must be formatted as YYYY-MM-DD"))
	}

	day := h.now().UTC()
	if req.Day != "" {
		day, _ = time.Parse("2006-01-02", req.Day)
	}

	ctx := c.Request().Context()
	keys, err := h.store.ListRawOutputs(ctx, day)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list", err))
	}

	outputs := make([]archivedto.RawOutput, 0, len(keys))
	for _, key := range keys {
		url, err := h.store.GetFileURL(ctx, key, rawOutputURLExpiry)
		if err != nil {
			h.logger.Warn("failed to presign raw output",
				zap.String("key", key),
				zap.Error(err))
		}
		outputs = append(outputs, archivedto.RawOutput{Key: key, URL: url})
	}

	return HandleSuccess(h.logger, c, archivedto.ListRawOutputsResponse{
		Day:     day.Format("2006-01-02"),
		Outputs: outputs,
	})
}

// Redecode handles POST /api/v1/archive/raw-outputs/redecode
// @Summary      Decode an archived output again
// @Description  Runs an archived model output through the current decoder, useful after repair rules change
// @Tags         Archive
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      archive.RedecodeRequest  true  "Archive key"
// @Success      200      {object}  summary.SummaryResponse
// @Failure      400      {object}  common.ErrorEnvelope
// @Failure      500      {object}  common.ErrorEnvelope  "Still undecodable"
// @Router       /api/v1/archive/raw-outputs/redecode [post]
func (h *Archive) Redecode(c echo.Context) error {
	var req archivedto.RedecodeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	if !storage.IsRawOutputKey(req.Key) {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("key must name an object under raw-outputs/"))
	}

	raw, err := h.store.ReadRawOutput(c.Request().Context(), req.Key)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("read", err))
	}

	result, report, err := decoder.DecodeWithReport(raw)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrSummaryDecodeFailed(err, req.Key))
	}

	h.logger.Info("✅ Archived output decoded",
		zap.String("key", req.Key),
		zap.String("stage", string(report.Stage)),
		zap.Int("dropped", len(report.Dropped)))

	c.Response().Header().Set(headerDecodeStage, string(report.Stage))
	return c.JSON(http.StatusOK, summarydto.FromResult(result))
}
