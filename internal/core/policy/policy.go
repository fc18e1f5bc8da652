// Package policy holds the access-control rules deciding which user may read
// or write which user and feedback records. Every function is pure: callers
// load the records, the rules only compare identities and roles.
package policy

import (
	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

// Denials for employee-only operations. The HTTP role guard returns the same
// text as the rules below.
const (
	EmployeesOnlyChangeManager   = "only employees can change their manager"
	EmployeesOnlyRequestFeedback = "only employees can request feedback from managers"
	EmployeesOnlyReceived        = "only employees can access received feedback"
	EmployeesOnlyGiven           = "only employees can access given feedback"
)

// CanCreateFeedback decides whether requester may write feedback about subject.
// Managers may review their direct reports; employees may review peers that
// share their manager, but never themselves.
func CanCreateFeedback(requester, subject *domain.User) error {
	switch requester.Role {
	case domain.RoleManager:
		if subject.ManagerID != requester.ID {
			return domain.Denied("you can only give feedback to your direct reports")
		}
		return nil
	case domain.RoleEmployee:
		if subject.ID == requester.ID {
			return domain.Denied("you cannot give feedback to yourself")
		}
		if !requester.HasManager() || subject.ManagerID != requester.ManagerID {
			return domain.Denied("you can only give feedback to employees under the same manager")
		}
		return nil
	default:
		return domain.Denied("invalid user role")
	}
}

// CanUpdateFeedback allows only the author to edit content fields, whatever
// the acknowledgment state.
func CanUpdateFeedback(requester *domain.User, fb *domain.Feedback) error {
	if fb.ManagerID != requester.ID {
		return domain.Denied("you can only update your own feedback")
	}
	return nil
}

// CanAcknowledgeFeedback allows only the employee the feedback is about.
func CanAcknowledgeFeedback(requester *domain.User, fb *domain.Feedback) error {
	switch requester.Role {
	case domain.RoleEmployee:
		if fb.EmployeeID == requester.ID {
			return nil
		}
	case domain.RoleManager:
	}
	return domain.Denied("you can only acknowledge your own feedback")
}

// Team describes whose direct reports a requester sees and who is hidden.
type Team struct {
	ManagerID string
	ExcludeID string
}

// TeamScope resolves the team visible to requester. ok is false when the
// requester has no team at all (an employee without a manager).
func TeamScope(requester *domain.User) (team Team, ok bool) {
	switch requester.Role {
	case domain.RoleManager:
		return Team{ManagerID: requester.ID}, true
	case domain.RoleEmployee:
		if !requester.HasManager() {
			return Team{}, false
		}
		return Team{ManagerID: requester.ManagerID, ExcludeID: requester.ID}, true
	default:
		return Team{}, false
	}
}

// CanViewUser lets a requester see their own record and their manager's.
func CanViewUser(requester, target *domain.User) error {
	if target.ID == requester.ID {
		return nil
	}
	if requester.HasManager() && target.ID == requester.ManagerID {
		return nil
	}
	return domain.Denied("access denied")
}

// ListScope names the feedback field a list query filters on.
type ListScope int

const (
	// ByAuthor lists feedback written by the requester.
	ByAuthor ListScope = iota
	// BySubject lists feedback written about the requester.
	BySubject
)

// FeedbackListScope picks the default feedback list for requester: managers
// see what they wrote, employees see what they received.
func FeedbackListScope(requester *domain.User) ListScope {
	switch requester.Role {
	case domain.RoleManager:
		return ByAuthor
	case domain.RoleEmployee:
		return BySubject
	default:
		return BySubject
	}
}

// CanChangeManager checks an employee's request to report to proposed. A nil
// proposed manager means the employee is clearing the assignment.
func CanChangeManager(requester, proposed *domain.User) error {
	switch requester.Role {
	case domain.RoleEmployee:
	case domain.RoleManager:
		return domain.Denied(EmployeesOnlyChangeManager)
	default:
		return domain.Denied("invalid user role")
	}
	if proposed == nil {
		return nil
	}
	if proposed.Role != domain.RoleManager {
		return domain.Invalid("selected user is not a manager")
	}
	return nil
}

// CanRequestFeedback checks an employee's request for feedback from their
// manager.
func CanRequestFeedback(requester *domain.User) error {
	if err := RequireRole(requester, domain.RoleEmployee); err != nil {
		return domain.Denied(EmployeesOnlyRequestFeedback)
	}
	if !requester.HasManager() {
		return domain.Invalid("no manager assigned to your account")
	}
	return nil
}

// RequireRole denies requester unless their role is one of roles.
func RequireRole(requester *domain.User, roles ...domain.Role) error {
	for _, r := range roles {
		if requester.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}
