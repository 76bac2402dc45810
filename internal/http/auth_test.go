package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"cs2showroom/internal/http/handlers"
	"cs2showroom/internal/repos"
	"cs2showroom/internal/services"
)

func authService(t *testing.T) *services.AuthService {
	t.Helper()
	db, err := repos.OpenDB(":memory:", "admin@showroom.local", "op3rator-secret")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return &services.AuthService{Users: repos.NewUserRepo(db)}
}

func TestLoginBindsSession(t *testing.T) {
	auth := authService(t)

	if err := auth.Login("sid-1", "admin@showroom.local", "op3rator-secret"); err != nil {
		t.Fatal(err)
	}

	cur, err := auth.CurrentUser("sid-1")
	if err != nil || cur == nil || cur.Email != "admin@showroom.local" {
		t.Fatalf("session not bound: %v %v", cur, err)
	}
	if cur.Role != "ADMIN" {
		t.Fatalf("seeded account must be ADMIN, got %q", cur.Role)
	}

	if err := auth.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if cur, _ := auth.CurrentUser("sid-1"); cur != nil {
		t.Fatal("session survived logout")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := authService(t)

	if err := auth.Login("sid-1", "admin@showroom.local", "wrong-password"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if err := auth.Login("sid-1", "nobody@showroom.local", "op3rator-secret"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds for unknown email, got %v", err)
	}
}

func TestRequireAdminRedirectsAnonymous(t *testing.T) {
	auth := authService(t)

	app := fiber.New(fiber.Config{Views: testEngine()})
	app.Use(requestid.New())
	app.Get("/manage", handlers.RequireAdmin(auth), func(c *fiber.Ctx) error {
		return c.SendString("manage")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/manage", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("want redirect to login, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("want /login, got %q", loc)
	}
}

func TestRequireAdminBlocksUnknownSession(t *testing.T) {
	auth := authService(t)

	app := fiber.New(fiber.Config{Views: testEngine()})
	app.Use(requestid.New())
	app.Get("/manage", handlers.RequireAdmin(auth), func(c *fiber.Ctx) error {
		return c.SendString("manage")
	})

	req := httptest.NewRequest("GET", "/manage", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "ghost-session"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("want 403 for unknown session, got %d", resp.StatusCode)
	}
}
