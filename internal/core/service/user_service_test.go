package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/relaydesk/handover-api/internal/core/domain"
	"github.com/relaydesk/handover-api/internal/core/ports"
)

func newUserFixture() (*UserService, *stubUserRepo, *stubSessionCache) {
	users := newStubUserRepo()
	cache := newStubSessionCache()
	return NewUserService(users, cache, zerolog.Nop()), users, cache
}

func TestUserService_Create_Success(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice", Password: "pass123", Name: "Alice",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestUserService_Create_MissingFields(t *testing.T) {
	svc, _, _ := newUserFixture()

	cases := []ports.CreateUserInput{
		{Password: "pw", Name: "No Username"},
		{Username: "nopw", Name: "No Password"},
		{Username: "noname", Password: "pw"},
		{Username: "badrole", Password: "pw", Name: "Bad Role", Role: "superuser"},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); err != domain.ErrMissingFields {
			t.Fatalf("input %+v: expected ErrMissingFields, got %v", input, err)
		}
	}
}

func TestUserService_Create_Duplicate_LeavesExistingUntouched(t *testing.T) {
	svc, users, _ := newUserFixture()

	first, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "bob", Password: "original", Name: "Bob",
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "bob", Password: "changed", Name: "Impostor", Role: domain.RoleAdmin,
	}); err != domain.ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	stored := users.users["bob"]
	if stored.PasswordHash != first.PasswordHash || stored.DisplayName != "Bob" || stored.Role != domain.RoleUser {
		t.Fatalf("existing record was altered: %+v", stored)
	}
}

func TestUserService_Delete_ProtectedAdmin(t *testing.T) {
	svc, users, _ := newUserFixture()
	seedUser(t, users, "admin", "adminpw", domain.RoleAdmin, "Administrator")

	if err := svc.Delete(context.Background(), "admin"); err != domain.ErrProtectedUser {
		t.Fatalf("expected ErrProtectedUser, got %v", err)
	}
	if _, ok := users.users["admin"]; !ok {
		t.Fatalf("admin record must not be removed")
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newUserFixture()

	if err := svc.Delete(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_PurgesSessionsFromCache(t *testing.T) {
	svc, users, cache := newUserFixture()
	seedUser(t, users, "carol", "pw", domain.RoleUser, "Carol")
	users.sessionTokens["carol"] = []string{"tok-1", "tok-2"}

	if err := svc.Delete(context.Background(), "carol"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := users.users["carol"]; ok {
		t.Fatalf("user record not removed")
	}
	if len(cache.deleted) != 2 || cache.deleted[0] != "tok-1" || cache.deleted[1] != "tok-2" {
		t.Fatalf("expected cache purge of session tokens, got %v", cache.deleted)
	}
}

func TestUserService_Delete_CachePurgeFailure_FailsDelete(t *testing.T) {
	svc, users, cache := newUserFixture()
	seedUser(t, users, "dora", "pw", domain.RoleUser, "Dora")
	users.sessionTokens["dora"] = []string{"tok-9"}

	cache.deleteErr = errors.New("cache unavailable")
	if err := svc.Delete(context.Background(), "dora"); err == nil {
		t.Fatalf("delete must fail when session tokens cannot be purged")
	}
}

func TestUserService_List_OmitsPasswordHashes(t *testing.T) {
	svc, users, _ := newUserFixture()
	seedUser(t, users, "alice", "pw1", domain.RoleUser, "Alice")
	seedUser(t, users, "bob", "pw2", domain.RoleAdmin, "Bob")

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	for _, u := range list {
		if u.PasswordHash != "" {
			t.Fatalf("password hash leaked for %s", u.Username)
		}
	}
}
