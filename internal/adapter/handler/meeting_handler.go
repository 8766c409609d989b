package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmind/errors"
	"github.com/johnquangdev/meetmind/internal/adapter/dto/common"
	meetingdto "github.com/johnquangdev/meetmind/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmind/internal/adapter/presenter"
	"github.com/johnquangdev/meetmind/internal/infrastructure/http/middleware"
	meetinguc "github.com/johnquangdev/meetmind/internal/usecase/meeting"
)

// Meeting handles meeting history requests
type Meeting struct {
	svc    meetinguc.Service
	logger *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(svc meetinguc.Service, logger *zap.Logger) *Meeting {
	return &Meeting{svc: svc, logger: logger}
}

// List handles GET /api/v1/meetings
// @Summary      List meetings
// @Description  Lists summarized meetings, newest first
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number"  default(1)
// @Param        page_size  query     int  false  "Page size"    default(20)
// @Success      200        {object}  common.SuccessEnvelope{data=meeting.ListMeetingsResponse}
// @Failure      401        {object}  common.ErrorEnvelope
// @Router       /api/v1/meetings [get]
func (h *Meeting) List(c echo.Context) error {
	req := meetingdto.ListMeetingsRequest{Page: 1, PageSize: 20}
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	viewer, _ := middleware.UserID(c)
	page, err := h.svc.List(c.Request().Context(), viewer, req.Page, req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ListMeetingsResponse{
		Meetings:   presenter.ToMeetingResponses(page.Meetings),
		Pagination: common.NewPagination(page.Page, page.PageSize, page.Total),
	})
}

// Get handles GET /api/v1/meetings/:id
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessEnvelope{data=meeting.MeetingResponse}
// @Failure      404  {object}  common.ErrorEnvelope
// @Router       /api/v1/meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid meeting ID"))
	}

	viewer, _ := middleware.UserID(c)
	m, err := h.svc.Get(c.Request().Context(), viewer, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// Delete handles DELETE /api/v1/meetings/:id
// @Summary      Delete a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessEnvelope
// @Failure      404  {object}  common.ErrorEnvelope
// @Router       /api/v1/meetings/{id} [delete]
func (h *Meeting) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid meeting ID"))
	}

	viewer, _ := middleware.UserID(c)
	if err := h.svc.Delete(c.Request().Context(), viewer, id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}
