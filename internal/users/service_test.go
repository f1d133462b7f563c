package users

import (
	"context"
	"errors"
	"testing"
)

func TestUpsertFromAuthNormalizesEmail(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	err := svc.UpsertFromAuth(context.Background(), User{
		ID:    "google:123",
		Email: "  Recruiter@Example.COM ",
	})
	if err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}

	got, err := svc.GetByID(context.Background(), "google:123")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "recruiter@example.com" {
		t.Fatalf("expected normalized email, got %q", got.Email)
	}
}

func TestUpsertFromAuthRequiresIDAndEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.UpsertFromAuth(context.Background(), User{Email: "a@b.com"}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:1"}); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestUpsertPreservesCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Upsert(ctx, User{ID: "google:1", Email: "a@b.com"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, err := repo.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("get after first upsert: %v", err)
	}

	if err := repo.Upsert(ctx, User{ID: "google:1", Email: "a@b.com", FullName: "Ada"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, err := repo.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("get after second upsert: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("CreatedAt changed across upserts: %v vs %v", first.CreatedAt, second.CreatedAt)
	}
	if second.FullName != "Ada" {
		t.Fatalf("expected profile refresh, got %q", second.FullName)
	}
}

func TestGetByIDUnknownUser(t *testing.T) {
	repo := NewMemoryRepo()

	_, err := repo.GetByID(context.Background(), "google:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDisplayNameFallsBackToEmail(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "full name wins", user: User{FullName: "Ada Lovelace", GivenName: "Ada", Email: "ada@example.com"}, want: "Ada Lovelace"},
		{name: "given name next", user: User{GivenName: "Ada", Email: "ada@example.com"}, want: "Ada"},
		{name: "email local part", user: User{Email: "ada@example.com"}, want: "ada"},
		{name: "bare email", user: User{Email: "ada"}, want: "ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Fatalf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
