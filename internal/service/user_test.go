package service

import (
	"context"
	"errors"
	"testing"

	"resumade/internal/database"
)

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := newTestUserService(t, db)

	first, err := users.Register(ctx, "Alice", "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	if _, err := users.Register(ctx, "Mallory", "alice@x.com", "secret2"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// 第一个账号不受影响。
	var stored database.User
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload first user: %v", err)
	}
	if stored.Name != "Alice" {
		t.Fatalf("first user mutated: name=%q", stored.Name)
	}

	var count int64
	if err := db.Model(&database.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestRegister_PasswordLengthBoundary(t *testing.T) {
	ctx := context.Background()
	users := newTestUserService(t, newTestDB(t))

	if _, err := users.Register(ctx, "Short", "short@x.com", "12345"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for 5-char password, got %v", err)
	}
	if _, err := users.Register(ctx, "Exact", "exact@x.com", "123456"); err != nil {
		t.Fatalf("expected 6-char password to be accepted, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	ctx := context.Background()
	users := newTestUserService(t, newTestDB(t))

	cases := [][3]string{
		{"", "a@x.com", "secret1"},
		{"A", "", "secret1"},
		{"A", "a@x.com", ""},
	}
	for _, c := range cases {
		if _, err := users.Register(ctx, c[0], c[1], c[2]); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for %v, got %v", c, err)
		}
	}
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := newTestUserService(t, db)

	pub, err := users.Register(ctx, "Alice", "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var stored database.User
	if err := db.First(&stored, pub.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Fatalf("password stored improperly: %q", stored.PasswordHash)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newTestUserService(t, newTestDB(t))

	reg, err := users.Register(ctx, "Alice", "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		user, token, err := users.Login(ctx, "alice@x.com", "secret1")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if token == "" {
			t.Fatal("expected non-empty token")
		}
		if user.ID != reg.ID || user.Email != reg.Email || user.Name != reg.Name {
			t.Fatalf("login user %+v does not match registration %+v", user, reg)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := users.Login(ctx, "alice@x.com", "wrong"); !errors.Is(err, ErrAuth) {
			t.Fatalf("expected ErrAuth, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, _, err := users.Login(ctx, "nobody@x.com", "secret1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGetByID_NotFound(t *testing.T) {
	users := newTestUserService(t, newTestDB(t))
	if _, err := users.GetByID(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_EmailKeepsIdentityAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := newTestUserService(t, db)

	reg, err := users.Register(ctx, "Alice", "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	newEmail := "alice2@x.com"
	updated, err := users.Update(ctx, reg.ID, UserUpdate{Email: &newEmail})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != reg.ID {
		t.Fatalf("identity changed: %d -> %d", reg.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(reg.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", reg.CreatedAt, updated.CreatedAt)
	}
	if updated.Email != newEmail {
		t.Fatalf("email not updated: %q", updated.Email)
	}
}

func TestUpdate_Failures(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := newTestUserService(t, db)

	reg, err := users.Register(ctx, "Alice", "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := users.Register(ctx, "Bob", "bob@x.com", "secret1"); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	t.Run("no fields", func(t *testing.T) {
		if _, err := users.Update(ctx, reg.ID, UserUpdate{}); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "X"
		if _, err := users.Update(ctx, 9999, UserUpdate{Name: &name}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("email taken", func(t *testing.T) {
		taken := "bob@x.com"
		if _, err := users.Update(ctx, reg.ID, UserUpdate{Email: &taken}); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}
