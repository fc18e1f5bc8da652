package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedbackhub/feedback-api/internal/api/metrics"
	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/ports"
)

// FeedbackHandler handles HTTP requests for feedback operations.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Create handles POST /api/feedback.
//
// @Summary      Give feedback
// @Description  Managers review direct reports; employees review peers sharing their manager.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFeedbackRequest  true  "Feedback content"
// @Success      201   {object}  feedbackResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/feedback [post]
func (h *FeedbackHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createFeedbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), user, ports.CreateFeedbackInput{
		EmployeeID:   req.EmployeeID,
		Strengths:    req.Strengths,
		Improvements: req.Improvements,
		Sentiment:    req.Sentiment,
		Tags:         req.Tags,
		Anonymous:    req.Anonymous,
	})
	if err != nil {
		return err
	}

	metrics.FeedbackCreatedTotal.WithLabelValues(string(view.Feedback.Sentiment), string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, toFeedbackResponse(*view))
}

// List handles GET /api/feedback.
//
// @Summary      List feedback
// @Description  Managers see what they wrote; employees see what they received. Newest first.
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   feedbackResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/feedback [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	return h.list(c, h.service.List)
}

// Received handles GET /api/feedback/received.
//
// @Summary      Feedback received
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   feedbackResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/feedback/received [get]
func (h *FeedbackHandler) Received(c echo.Context) error {
	return h.list(c, h.service.Received)
}

// Given handles GET /api/feedback/given.
//
// @Summary      Peer feedback given
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   feedbackResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/feedback/given [get]
func (h *FeedbackHandler) Given(c echo.Context) error {
	return h.list(c, h.service.Given)
}

// Update handles PUT /api/feedback/:id.
//
// @Summary      Edit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Feedback id"
// @Param        body  body      updateFeedbackRequest  true  "Fields to change"
// @Success      200   {object}  feedbackResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/feedback/{id} [put]
func (h *FeedbackHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateFeedbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), user, c.Param("id"), ports.UpdateFeedbackInput{
		EmployeeID:   req.EmployeeID,
		Strengths:    req.Strengths,
		Improvements: req.Improvements,
		Sentiment:    req.Sentiment,
		Tags:         req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFeedbackResponse(*view))
}

// Acknowledge handles PATCH /api/feedback/:id/acknowledge.
//
// @Summary      Acknowledge feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true   "Feedback id"
// @Param        body  body      acknowledgeRequest  false  "Optional comment"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/feedback/{id}/acknowledge [patch]
func (h *FeedbackHandler) Acknowledge(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req acknowledgeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}
	if err := h.service.Acknowledge(c.Request().Context(), user, c.Param("id"), comment); err != nil {
		return err
	}

	metrics.FeedbackAcknowledgedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Feedback acknowledged successfully"})
}

// Stats handles GET /api/stats.
//
// @Summary      Feedback statistics
// @Description  Managers get sentiment totals over what they wrote; employees get totals over what they received.
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  managerStatsResponse
// @Success      200  {object}  employeeStatsResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/stats [get]
func (h *FeedbackHandler) Stats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	st, err := h.service.Stats(c.Request().Context(), user)
	if err != nil {
		return err
	}

	if st.Role == domain.RoleManager {
		return c.JSON(http.StatusOK, managerStatsResponse{
			Total:        st.Total,
			Positive:     st.Positive,
			Neutral:      st.Neutral,
			Constructive: st.Constructive,
			Acknowledged: st.Acknowledged,
		})
	}
	return c.JSON(http.StatusOK, employeeStatsResponse{
		Total:        st.Total,
		Acknowledged: st.Acknowledged,
		Positive:     st.Positive,
		Pending:      st.Pending,
	})
}

func (h *FeedbackHandler) list(
	c echo.Context,
	fetch func(ctx context.Context, requester *domain.User) ([]domain.FeedbackView, error),
) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	views, err := fetch(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFeedbackResponses(views))
}
