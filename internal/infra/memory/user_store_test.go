package memory

import (
	"context"
	"errors"
	"testing"

	"learner-activity-service/internal/domain"
)

func TestUserStoreVersionedSave(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()

	created, err := store.Create(ctx, sampleUser("u1", "a@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Version != 1 {
		t.Fatalf("expected version 1, got %d", created.Version)
	}

	first, _ := store.Load(ctx, "u1")
	second, _ := store.Load(ctx, "u1")

	first.Role = domain.RoleOffline
	saved, err := store.Save(ctx, first)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Version != 2 {
		t.Fatalf("expected version 2, got %d", saved.Version)
	}

	second.FirstName = "stale"
	if _, err := store.Save(ctx, second); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict for stale save, got %v", err)
	}

	got, _ := store.Load(ctx, "u1")
	if got.Role != domain.RoleOffline || got.FirstName == "stale" {
		t.Fatalf("stale save leaked into store: %+v", got)
	}
}

func TestUserStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	_, _ = store.Create(ctx, sampleUser("u1", "a@example.com"))

	loaded, _ := store.Load(ctx, "u1")
	loaded.Activity.ActivityLogs = append(loaded.Activity.ActivityLogs, domain.NewDailyActivityLog("2024-01-01"))
	loaded.Progress[domain.ProgressIntro] = 10

	again, _ := store.Load(ctx, "u1")
	if len(again.Activity.ActivityLogs) != 0 || len(again.Progress) != 0 {
		t.Fatalf("mutation of loaded copy reached the store: %+v", again)
	}
}

func TestUserStoreLookupsAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	_, _ = store.Create(ctx, sampleUser("u1", "a@example.com"))
	_, _ = store.Create(ctx, sampleUser("u2", "b@example.com"))

	if _, err := store.Create(ctx, sampleUser("u3", "a@example.com")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}

	byEmail, err := store.FindByEmail(ctx, "b@example.com")
	if err != nil || byEmail.ID != "u2" {
		t.Fatalf("find by email: %+v %v", byEmail, err)
	}

	users, _ := store.List(ctx)
	if len(users) != 2 || users[0].ID != "u1" || users[1].ID != "u2" {
		t.Fatalf("unexpected list %+v", users)
	}

	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := store.Delete(ctx, "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	users, _ = store.List(ctx)
	if len(users) != 1 {
		t.Fatalf("expected one user left, got %d", len(users))
	}
}

func sampleUser(id, email string) domain.User {
	return domain.User{
		ID:       id,
		Email:    email,
		Role:     domain.RoleStudent,
		Progress: map[domain.ProgressField]float64{},
	}
}
