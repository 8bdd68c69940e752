package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"prestige/internal/catalog"
	"prestige/internal/http/handlers"
	"prestige/internal/money"
	"prestige/internal/repos"
	"prestige/internal/services"
	"prestige/internal/store"
	"prestige/web"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	f := money.DefaultFormatter()
	app := fiber.New(fiber.Config{
		Views:        web.Engine(f),
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())

	deps := handlers.NewDeps(store.New(repos.NewKVRepo(db)), catalog.Default(), services.DefaultPricing(), f)
	deps.Register(app)
	return app
}

// browser replays its sid cookie on every request, like a real one would.
type browser struct {
	t   *testing.T
	app *fiber.App
	sid string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, sid: uuid.NewString()}
}

func (b *browser) do(method, path string, form url.Values) (*http.Response, []byte) {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: "sid", Value: b.sid})
	resp, err := b.app.Test(req, 5000)
	if err != nil {
		b.t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp, raw
}

func (b *browser) json(method, path string, form url.Values, wantStatus int, out any) {
	b.t.Helper()
	resp, raw := b.do(method, path, form)
	if resp.StatusCode != wantStatus {
		b.t.Fatalf("%s %s: want %d, got %d; body=%s", method, path, wantStatus, resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			b.t.Fatalf("decode %s: %v; body=%s", path, err, raw)
		}
	}
}

type toast struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type cartResp struct {
	Items []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		SelectedSize string `json:"selectedSize"`
		Price        string `json:"price"`
		Quantity     int    `json:"quantity"`
	} `json:"items"`
	TotalItems int `json:"totalItems"`
	Totals     struct {
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Shipping string `json:"shipping"`
		Total    string `json:"total"`
	} `json:"totals"`
	Display struct {
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Shipping string `json:"shipping"`
		Total    string `json:"total"`
	} `json:"display"`
	Toast *toast `json:"toast"`
}

type errResp struct {
	Error string `json:"error"`
	Toast *toast `json:"toast"`
}
