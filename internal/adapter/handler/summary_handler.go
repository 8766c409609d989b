package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmind/errors"
	summarydto "github.com/johnquangdev/meetmind/internal/adapter/dto/summary"
	"github.com/johnquangdev/meetmind/internal/infrastructure/http/middleware"
	summaryuc "github.com/johnquangdev/meetmind/internal/usecase/summary"
)

const (
	headerMeetingID   = "X-Meeting-ID"
	headerDecodeStage = "X-Decode-Stage"
)

// Summary handles summarization requests
type Summary struct {
	svc    summaryuc.Service
	logger *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc summaryuc.Service, logger *zap.Logger) *Summary {
	return &Summary{svc: svc, logger: logger}
}

// Summarize handles POST /api/v1/summarize
// @Summary      Summarize a transcript
// @Description  Asks the language model for a summary, key points and action items, and repairs whatever JSON it returns
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Param        request  body      summary.SummarizeRequest  true  "Transcript"
// @Success      200      {object}  summary.SummaryResponse
// @Failure      400      {object}  common.ErrorEnvelope  "Transcript is required"
// @Failure      500      {object}  common.ErrorEnvelope  "Model output could not be decoded"
// @Failure      502      {object}  common.ErrorEnvelope  "Model call failed"
// @Router       /api/v1/summarize [post]
func (h *Summary) Summarize(c echo.Context) error {
	var req summarydto.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	owner, _ := middleware.UserID(c)
	out, err := h.svc.Summarize(c.Request().Context(), summaryuc.SummarizeInput{
		Transcript: req.Transcript,
		Title:      req.Title,
		Tags:       req.Tags,
		OwnerID:    owner,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.respond(c, out)
}

// SummarizeAudio handles POST /api/v1/summarize/audio
// @Summary      Summarize a recording
// @Description  Transcribes audio with AssemblyAI, then summarizes the transcript. Send JSON with audio_url, or multipart form data with a file.
// @Tags         Summaries
// @Accept       json,mpfd
// @Produce      json
// @Param        request    body      summary.AudioRequest  false  "Recording URL"
// @Param        file       formData  file                  false  "Recording upload"
// @Success      200        {object}  summary.SummaryResponse
// @Failure      400        {object}  common.ErrorEnvelope
// @Failure      502        {object}  common.ErrorEnvelope  "Transcription failed"
// @Failure      503        {object}  common.ErrorEnvelope  "Transcription not configured"
// @Router       /api/v1/summarize/audio [post]
func (h *Summary) SummarizeAudio(c echo.Context) error {
	var req summarydto.AudioRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	owner, _ := middleware.UserID(c)
	in := summaryuc.AudioInput{
		AudioURL: req.AudioURL,
		Title:    req.Title,
		Tags:     req.Tags,
		OwnerID:  owner,
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fileHeader, err := c.FormFile("file")
		if err != nil && err != http.ErrMissingFile {
			return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
		}
		if fileHeader != nil {
			file, err := fileHeader.Open()
			if err != nil {
				return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
			}
			defer file.Close()

			in.File = file
			in.Filename = fileHeader.Filename
			in.Size = fileHeader.Size
			in.ContentType = fileHeader.Header.Get(echo.HeaderContentType)
		}
	}

	out, err := h.svc.SummarizeAudio(c.Request().Context(), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.respond(c, out)
}

// respond writes the bare summary, the shape the web client expects
func (h *Summary) respond(c echo.Context, out *summaryuc.Output) error {
	if out.MeetingID != nil {
		c.Response().Header().Set(headerMeetingID, out.MeetingID.String())
	}
	c.Response().Header().Set(headerDecodeStage, out.Stage)

	if h.logger != nil {
		h.logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("stage", out.Stage),
			zap.Bool("cached", out.Cached),
		)
	}

	return c.JSON(http.StatusOK, summarydto.FromResult(out.Result))
}
