package auth

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const testSecret = "test-secret-0123456789"

func newAuthApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/who", RequireAuth(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": MustUserID(c), "role": MustRole(c)})
	})
	app.Get("/admin", RequireAuth(testSecret), RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("insert failed for asha@example.com")
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "email already exists")
	})
	return app
}

func Test_RequireAuth_AcceptsIssuedToken(t *testing.T) {
	app := newAuthApp()
	tok, err := IssueToken(testSecret, "u-1", "hr")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/who", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, _ := app.Test(req)
	if resp.StatusCode != 200 {
		t.Fatalf("got %d", resp.StatusCode)
	}
	var out struct{ ID, Role string }
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out.ID != "u-1" || out.Role != "hr" {
		t.Fatalf("unexpected claims: %+v", out)
	}
}

func Test_RequireAuth_RejectsBadTokens(t *testing.T) {
	app := newAuthApp()
	other, _ := IssueToken("another-secret-value", "u-1", "hr")

	for _, h := range []string{"", "Bearer", "Bearer nope", "Token " + other, "Bearer " + other} {
		req := httptest.NewRequest("GET", "/who", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		resp, _ := app.Test(req)
		if resp.StatusCode != 401 {
			t.Fatalf("header %q: want 401, got %d", h, resp.StatusCode)
		}
		var body struct {
			Code  string `json:"code"`
			Error bool   `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Code != "UNAUTHORIZED" || !body.Error {
			t.Fatalf("unexpected error body: %+v", body)
		}
	}
}

func Test_RequireRole(t *testing.T) {
	app := newAuthApp()
	hr, _ := IssueToken(testSecret, "u-1", "hr")
	admin, _ := IssueToken(testSecret, "u-2", "admin")

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+hr)
	resp, _ := app.Test(req)
	if resp.StatusCode != 403 {
		t.Fatalf("hr on admin route: got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, _ = app.Test(req)
	if resp.StatusCode != 204 {
		t.Fatalf("admin on admin route: got %d", resp.StatusCode)
	}
}

func Test_ErrorHandler_KeepsMessage(t *testing.T) {
	app := newAuthApp()
	resp, _ := app.Test(httptest.NewRequest("GET", "/conflict", nil))
	if resp.StatusCode != 409 {
		t.Fatalf("got %d", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message != "email already exists" || body.Code != "CONFLICT" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func Test_ErrorHandler_HidesUnexpectedErrors(t *testing.T) {
	app := newAuthApp()
	resp, _ := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if resp.StatusCode != 500 {
		t.Fatalf("got %d", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message != "Internal Server Error" || body.Code != "INTERNAL_SERVER_ERROR" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
