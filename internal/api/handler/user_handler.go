package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedbackhub/feedback-api/internal/api/metrics"
	"github.com/feedbackhub/feedback-api/internal/core/domain"
	"github.com/feedbackhub/feedback-api/internal/core/ports"
)

// UserHandler serves the directory reads and the feedback-request email.
type UserHandler struct {
	directory ports.DirectoryService
}

func NewUserHandler(directory ports.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// Team lists the requester's team.
//
// @Summary      List team members
// @Description  Managers see their direct reports; employees see peers under the same manager.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/team [get]
func (h *UserHandler) Team(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	team, err := h.directory.Team(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(team))
}

// Managers lists every manager account.
//
// @Summary      List managers
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/managers [get]
func (h *UserHandler) Managers(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	managers, err := h.directory.Managers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(managers))
}

// Get returns a single user the requester may see.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	target, err := h.directory.GetUser(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(target))
}

// RequestFeedback emails the requester's manager asking for feedback.
//
// @Summary      Request feedback from manager
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  requestFeedbackResponse
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      429  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/request-feedback [post]
func (h *UserHandler) RequestFeedback(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	manager, err := h.directory.RequestFeedback(c.Request().Context(), user)
	switch {
	case err == nil:
		metrics.FeedbackRequestsTotal.WithLabelValues("sent").Inc()
	case errors.Is(err, domain.ErrRequestThrottled):
		metrics.FeedbackRequestsTotal.WithLabelValues("throttled").Inc()
		return err
	default:
		metrics.FeedbackRequestsTotal.WithLabelValues("failed").Inc()
		return err
	}

	return c.JSON(http.StatusOK, requestFeedbackResponse{
		Message:      fmt.Sprintf("Feedback request sent to %s successfully!", manager.FullName),
		ManagerName:  manager.FullName,
		ManagerEmail: manager.Email,
	})
}
