package domain

import "time"

// Sentiment classifies the overall tone of a feedback record.
type Sentiment string

const (
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentConstructive Sentiment = "constructive"
)

// ParseSentiment converts raw input into a Sentiment, rejecting unknown values.
func ParseSentiment(s string) (Sentiment, error) {
	switch v := Sentiment(s); v {
	case SentimentPositive, SentimentNeutral, SentimentConstructive:
		return v, nil
	default:
		return "", Invalid("sentiment must be one of: positive, neutral, constructive")
	}
}

// Feedback is a single review written by an author (ManagerID) about a
// subject (EmployeeID). The author is a manager or, for peer feedback, an
// employee sharing the subject's manager.
type Feedback struct {
	ID                    string     `json:"id"`
	ManagerID             string     `json:"manager_id"`
	EmployeeID            string     `json:"employee_id"`
	Strengths             string     `json:"strengths"`
	Improvements          string     `json:"improvements"`
	Sentiment             Sentiment  `json:"sentiment"`
	Tags                  []string   `json:"tags"`
	Anonymous             bool       `json:"anonymous"`
	Acknowledged          bool       `json:"acknowledged"`
	AcknowledgedAt        *time.Time `json:"acknowledged_at"`
	AcknowledgmentComment string     `json:"acknowledgment_comment,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// FeedbackPatch lists the content fields an author may edit.
type FeedbackPatch struct {
	Strengths    *string
	Improvements *string
	Sentiment    *Sentiment
	Tags         *[]string
	EmployeeID   *string
}

func (p FeedbackPatch) IsEmpty() bool {
	return p.Strengths == nil && p.Improvements == nil && p.Sentiment == nil &&
		p.Tags == nil && p.EmployeeID == nil
}

// FeedbackView is a feedback record joined with both participants. Either
// participant may be nil if the user record has since disappeared.
type FeedbackView struct {
	Feedback *Feedback
	Giver    *User
	Receiver *User
}

// FeedbackStats aggregates a list of feedback records. Which fields are
// meaningful depends on the viewer's role.
type FeedbackStats struct {
	Role         Role
	Total        int
	Positive     int
	Neutral      int
	Constructive int
	Acknowledged int
	Pending      int
}

// Tally counts sentiment and acknowledgment totals over list.
func Tally(role Role, list []*Feedback) FeedbackStats {
	st := FeedbackStats{Role: role, Total: len(list)}
	for _, f := range list {
		switch f.Sentiment {
		case SentimentPositive:
			st.Positive++
		case SentimentNeutral:
			st.Neutral++
		case SentimentConstructive:
			st.Constructive++
		}
		if f.Acknowledged {
			st.Acknowledged++
		}
	}
	st.Pending = st.Total - st.Acknowledged
	return st
}
