package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

func seedDirectory() *stubUserRepo {
	repo := newStubUserRepo()
	repo.add(&domain.User{ID: "m1", Email: "m1@example.com", FullName: "Maria", Role: domain.RoleManager})
	repo.add(&domain.User{ID: "m2", Email: "m2@example.com", FullName: "Otto", Role: domain.RoleManager})
	repo.add(&domain.User{ID: "e1", Email: "e1@example.com", FullName: "Alice", Role: domain.RoleEmployee, ManagerID: "m1"})
	repo.add(&domain.User{ID: "e2", Email: "e2@example.com", FullName: "Bob", Role: domain.RoleEmployee, ManagerID: "m1"})
	repo.add(&domain.User{ID: "e3", Email: "e3@example.com", FullName: "Carol", Role: domain.RoleEmployee})
	return repo
}

func TestDirectoryService_Team(t *testing.T) {
	repo := seedDirectory()
	svc := NewDirectoryService(repo, &stubGateway{ok: true}, newStubThrottle(), 0, zerolog.Nop())
	ctx := context.Background()

	m1, _ := repo.FindByID(ctx, "m1")
	team, err := svc.Team(ctx, m1)
	if err != nil {
		t.Fatalf("Team returned error: %v", err)
	}
	if len(team) != 2 {
		t.Fatalf("manager should see 2 reports, got %d", len(team))
	}

	e1, _ := repo.FindByID(ctx, "e1")
	peers, err := svc.Team(ctx, e1)
	if err != nil {
		t.Fatalf("Team returned error: %v", err)
	}
	if len(peers) != 1 || peers[0].ID != "e2" {
		t.Fatalf("employee should see only e2, got %+v", peers)
	}

	e3, _ := repo.FindByID(ctx, "e3")
	empty, err := svc.Team(ctx, e3)
	if err != nil {
		t.Fatalf("Team returned error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("unassigned employee should get an empty list, got %v", empty)
	}
}

func TestDirectoryService_Managers(t *testing.T) {
	svc := NewDirectoryService(seedDirectory(), &stubGateway{ok: true}, newStubThrottle(), 0, zerolog.Nop())

	managers, err := svc.Managers(context.Background())
	if err != nil {
		t.Fatalf("Managers returned error: %v", err)
	}
	if len(managers) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(managers))
	}
	for _, m := range managers {
		if m.Role != domain.RoleManager {
			t.Fatalf("non-manager returned: %+v", m)
		}
	}
}

func TestDirectoryService_GetUser(t *testing.T) {
	repo := seedDirectory()
	svc := NewDirectoryService(repo, &stubGateway{ok: true}, newStubThrottle(), 0, zerolog.Nop())
	ctx := context.Background()
	e1, _ := repo.FindByID(ctx, "e1")

	if u, err := svc.GetUser(ctx, e1, "m1"); err != nil || u.ID != "m1" {
		t.Fatalf("own manager: got %v, %v", u, err)
	}
	if u, err := svc.GetUser(ctx, e1, "e1"); err != nil || u.ID != "e1" {
		t.Fatalf("self: got %v, %v", u, err)
	}
	if _, err := svc.GetUser(ctx, e1, "e2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("peer: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetUser(ctx, e1, "zzz"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown: expected ErrUserNotFound, got %v", err)
	}
}

func TestDirectoryService_RequestFeedback(t *testing.T) {
	repo := seedDirectory()
	gateway := &stubGateway{ok: true}
	throttle := newStubThrottle()
	svc := NewDirectoryService(repo, gateway, throttle, 30*time.Minute, zerolog.Nop())
	ctx := context.Background()
	e1, _ := repo.FindByID(ctx, "e1")

	manager, err := svc.RequestFeedback(ctx, e1)
	if err != nil {
		t.Fatalf("RequestFeedback returned error: %v", err)
	}
	if manager.ID != "m1" {
		t.Fatalf("expected manager m1, got %s", manager.ID)
	}
	if len(gateway.calls) != 1 || gateway.calls[0] != "m1@example.com" {
		t.Fatalf("unexpected gateway calls: %v", gateway.calls)
	}
	if ttl := throttle.marked["e1:m1"]; ttl != 30*time.Minute {
		t.Fatalf("expected request marked for 30m, got %v", ttl)
	}

	if _, err := svc.RequestFeedback(ctx, e1); !errors.Is(err, domain.ErrRequestThrottled) {
		t.Fatalf("repeat: expected ErrRequestThrottled, got %v", err)
	}
	if len(gateway.calls) != 1 {
		t.Fatalf("throttled request must not send mail")
	}
}

func TestDirectoryService_RequestFeedback_Rejections(t *testing.T) {
	repo := seedDirectory()
	gateway := &stubGateway{ok: true}
	svc := NewDirectoryService(repo, gateway, newStubThrottle(), 0, zerolog.Nop())
	ctx := context.Background()

	m1, _ := repo.FindByID(ctx, "m1")
	if _, err := svc.RequestFeedback(ctx, m1); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager: expected ErrForbidden, got %v", err)
	}
	e3, _ := repo.FindByID(ctx, "e3")
	if _, err := svc.RequestFeedback(ctx, e3); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("no manager: expected ErrValidation, got %v", err)
	}
	dangling := &domain.User{ID: "e9", Role: domain.RoleEmployee, ManagerID: "gone"}
	if _, err := svc.RequestFeedback(ctx, dangling); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("missing manager: expected ErrUserNotFound, got %v", err)
	}
	if len(gateway.calls) != 0 {
		t.Fatalf("no mail expected, got %v", gateway.calls)
	}
}

func TestDirectoryService_RequestFeedback_GatewayFailure(t *testing.T) {
	repo := seedDirectory()
	throttle := newStubThrottle()
	svc := NewDirectoryService(repo, &stubGateway{ok: false}, throttle, 0, zerolog.Nop())
	ctx := context.Background()
	e1, _ := repo.FindByID(ctx, "e1")

	if _, err := svc.RequestFeedback(ctx, e1); !errors.Is(err, domain.ErrGatewayFailure) {
		t.Fatalf("expected ErrGatewayFailure, got %v", err)
	}
	if len(throttle.marked) != 0 {
		t.Fatalf("failed send must not be throttled")
	}
}

func TestDirectoryService_RequestFeedback_ThrottleDown(t *testing.T) {
	repo := seedDirectory()
	gateway := &stubGateway{ok: true}
	throttle := newStubThrottle()
	throttle.err = errors.New("redis: connection refused")
	svc := NewDirectoryService(repo, gateway, throttle, 0, zerolog.Nop())
	ctx := context.Background()
	e1, _ := repo.FindByID(ctx, "e1")

	for i := 0; i < 2; i++ {
		if _, err := svc.RequestFeedback(ctx, e1); err != nil {
			t.Fatalf("attempt %d: expected success with throttle down, got %v", i, err)
		}
	}
	if len(gateway.calls) != 2 {
		t.Fatalf("expected 2 mails, got %d", len(gateway.calls))
	}
}
