package handler

import (
	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
	}
	if u.HasManager() {
		id := u.ManagerID
		resp.ManagerID = &id
	}
	return resp
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// toFeedbackResponse flattens a view. A participant whose record is gone
// renders with an empty name; a missing giver is reported as an employee.
func toFeedbackResponse(v domain.FeedbackView) feedbackResponse {
	fb := v.Feedback
	resp := feedbackResponse{
		ID:             fb.ID,
		GiverID:        fb.ManagerID,
		ReceiverID:     fb.EmployeeID,
		ManagerID:      fb.ManagerID,
		EmployeeID:     fb.EmployeeID,
		GiverRole:      string(domain.RoleEmployee),
		Strengths:      fb.Strengths,
		Improvements:   fb.Improvements,
		Sentiment:      string(fb.Sentiment),
		Tags:           fb.Tags,
		Anonymous:      fb.Anonymous,
		Acknowledged:   fb.Acknowledged,
		AcknowledgedAt: fb.AcknowledgedAt,
		CreatedAt:      fb.CreatedAt,
		UpdatedAt:      fb.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if fb.AcknowledgmentComment != "" {
		comment := fb.AcknowledgmentComment
		resp.AcknowledgmentComment = &comment
	}
	if v.Giver != nil {
		resp.GiverName = v.Giver.FullName
		resp.GiverRole = string(v.Giver.Role)
	}
	if v.Receiver != nil {
		resp.ReceiverName = v.Receiver.FullName
	}
	return resp
}

func toFeedbackResponses(views []domain.FeedbackView) []feedbackResponse {
	out := make([]feedbackResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toFeedbackResponse(v))
	}
	return out
}
