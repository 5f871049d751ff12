package app_test

import (
	"context"
	"errors"
	"testing"

	"learner-activity-service/internal/app"
	"learner-activity-service/internal/domain"
	"learner-activity-service/internal/infra/memory"
)

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := app.NewUserService(memory.NewUserStore(), app.DefaultRetryPolicy)

	user, err := svc.Create(ctx, domain.NewUser{Email: "a@example.com", FirstName: "Ada"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == "" || user.Role != domain.RoleStudent {
		t.Fatalf("unexpected new user %+v", user)
	}
	if _, err := svc.Create(ctx, domain.NewUser{Email: "a@example.com"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected duplicate email rejected, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.NewUser{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected missing email rejected, got %v", err)
	}

	hidden, err := svc.Hide(ctx, user.ID)
	if err != nil || hidden.Role != domain.RoleOffline {
		t.Fatalf("hide: %+v %v", hidden, err)
	}
	restored, err := svc.Unhide(ctx, user.ID)
	if err != nil || restored.Role != domain.RoleStudent {
		t.Fatalf("unhide: %+v %v", restored, err)
	}

	users, _ := svc.List(ctx)
	if len(users) != 1 {
		t.Fatalf("expected one user, got %d", len(users))
	}

	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Hide(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found on hide, got %v", err)
	}
}

func TestUpdateProgressScore(t *testing.T) {
	ctx := context.Background()
	svc := app.NewUserService(memory.NewUserStore(), app.DefaultRetryPolicy)
	user, _ := svc.Create(ctx, domain.NewUser{Email: "a@example.com"})

	updated, err := svc.UpdateProgressScore(ctx, user.ID, "pattern-recognition", 75)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := updated.ProgressScore(domain.ProgressPattern); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
	if got := updated.ProgressScore(domain.ProgressCobolTwo); got != -1 {
		t.Fatalf("untouched field should read -1, got %v", got)
	}

	if _, err := svc.UpdateProgressScore(ctx, user.ID, "role", 1); !errors.Is(err, domain.ErrUnknownQuizType) {
		t.Fatalf("expected unknown quiz type, got %v", err)
	}
	stored, _ := svc.Get(ctx, user.ID)
	if stored.Role != domain.RoleStudent || len(stored.Progress) != 1 {
		t.Fatalf("unknown type must not write anything: %+v", stored)
	}
}
