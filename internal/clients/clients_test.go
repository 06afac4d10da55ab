package clients

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aldoetobex/hrms-backend/internal/auth"
	"github.com/aldoetobex/hrms-backend/internal/testdb"
	"github.com/aldoetobex/hrms-backend/pkg/models"
	"github.com/aldoetobex/hrms-backend/pkg/uniqueness"
	"github.com/aldoetobex/hrms-backend/pkg/validation"
)

func newTestApp(db *gorm.DB) *fiber.App {
	h := NewHandler(db)
	app := fiber.New(fiber.Config{ErrorHandler: auth.ErrorHandler})
	app.Get("/api/clients/options", h.Options)
	app.Get("/api/clients", h.List)
	app.Post("/api/clients", h.Create)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func Test_statusLabel(t *testing.T) {
	for in, want := range map[string]string{"BENCH": "Bench", "NOTICE_PERIOD": "Notice Period", "ON_LEAVE": "On Leave"} {
		if got := statusLabel(in); got != want {
			t.Fatalf("statusLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func Test_Create_Invalid_NoDB(t *testing.T) {
	app := newTestApp(nil)
	code, body := send(t, app, "POST", "/api/clients", `{"name":"","gstNumber":"22ABCDE1234F1Y5"}`)
	if code != 400 {
		t.Fatalf("want 400, got %d", code)
	}
	var out models.ValidationErrorResponse
	_ = json.Unmarshal(body, &out)
	if len(out.Errors["name"]) == 0 || len(out.Errors["gstNumber"]) == 0 {
		t.Fatalf("errors: %v", out.Errors)
	}
}

func Test_Create_Options(t *testing.T) {
	db := testdb.Open(t)
	app := newTestApp(db)

	code, body := send(t, app, "POST", "/api/clients", `{"name":"Globex","email":"Ops@Globex.com","gstNumber":"22abcde1234f1z5"}`)
	if code != 201 {
		t.Fatalf("create: %d %s", code, body)
	}

	code, body = send(t, app, "POST", "/api/clients", `{"name":"Globex 2","email":"ops@globex.com"}`)
	if code != 400 {
		t.Fatalf("duplicate email: %d", code)
	}
	var out models.ValidationErrorResponse
	_ = json.Unmarshal(body, &out)
	if out.Errors["email"][0] != uniqueness.MsgAlreadyExists {
		t.Fatalf("errors: %v", out.Errors)
	}

	code, body = send(t, app, "GET", "/api/clients/options", "")
	if code != 200 {
		t.Fatalf("options: %d", code)
	}
	var opts []ClientOption
	_ = json.Unmarshal(body, &opts)
	if len(opts) != len(validation.StatusClients)+1 {
		t.Fatalf("options: %+v", opts)
	}
	last := validation.ParseClientSelection(opts[len(opts)-1].Value)
	if last.Kind != validation.SelectionClient || opts[len(opts)-1].Label != "Globex" {
		t.Fatalf("client option: %+v", opts[len(opts)-1])
	}
	if opts[0].Value != "STATUS:BENCH" {
		t.Fatalf("status option: %+v", opts[0])
	}
}
