package handler

import "time"

// --- Requests ---

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required"`
	FullName  string `json:"full_name"  validate:"required"`
	Role      string `json:"role"       validate:"required,oneof=manager employee"`
	ManagerID string `json:"manager_id"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest accepts only full_name and email; other keys are ignored.
type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"     validate:"omitempty,email"`
}

// updateManagerRequest clears the manager when manager_id is null or empty.
type updateManagerRequest struct {
	ManagerID *string `json:"manager_id"`
}

type createFeedbackRequest struct {
	EmployeeID   string   `json:"employee_id"  validate:"required"`
	Strengths    string   `json:"strengths"    validate:"required"`
	Improvements string   `json:"improvements" validate:"required"`
	Sentiment    string   `json:"sentiment"    validate:"required,oneof=positive neutral constructive"`
	Tags         []string `json:"tags"`
	Anonymous    bool     `json:"anonymous"`
}

type updateFeedbackRequest struct {
	EmployeeID   *string   `json:"employee_id"`
	Strengths    *string   `json:"strengths"`
	Improvements *string   `json:"improvements"`
	Sentiment    *string   `json:"sentiment"`
	Tags         *[]string `json:"tags"`
}

type acknowledgeRequest struct {
	Comment *string `json:"comment"`
}

// --- Responses ---

type userResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type feedbackResponse struct {
	ID                    string     `json:"id"`
	GiverID               string     `json:"giver_id"`
	ReceiverID            string     `json:"receiver_id"`
	ManagerID             string     `json:"manager_id"`
	EmployeeID            string     `json:"employee_id"`
	GiverName             string     `json:"giver_name"`
	ReceiverName          string     `json:"receiver_name"`
	GiverRole             string     `json:"giver_role"`
	Strengths             string     `json:"strengths"`
	Improvements          string     `json:"improvements"`
	Sentiment             string     `json:"sentiment"`
	Tags                  []string   `json:"tags"`
	Anonymous             bool       `json:"anonymous"`
	Acknowledged          bool       `json:"acknowledged"`
	AcknowledgedAt        *time.Time `json:"acknowledged_at"`
	AcknowledgmentComment *string    `json:"acknowledgment_comment"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type managerStatsResponse struct {
	Total        int `json:"total"`
	Positive     int `json:"positive"`
	Neutral      int `json:"neutral"`
	Constructive int `json:"constructive"`
	Acknowledged int `json:"acknowledged"`
}

type employeeStatsResponse struct {
	Total        int `json:"total"`
	Acknowledged int `json:"acknowledged"`
	Positive     int `json:"positive"`
	Pending      int `json:"pending"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type requestFeedbackResponse struct {
	Message      string `json:"message"`
	ManagerName  string `json:"manager_name"`
	ManagerEmail string `json:"manager_email"`
}
