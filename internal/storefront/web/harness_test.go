package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/spec-kit/storefront/internal/api/http"
	"github.com/spec-kit/storefront/internal/api/http/handlers"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/repository/memory"
	"github.com/spec-kit/storefront/internal/service"
	"github.com/spec-kit/storefront/internal/storefront/apiclient"
	"github.com/spec-kit/storefront/internal/storefront/session"
	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

// harness runs the real API in-process and a storefront pointed at it.
type harness struct {
	app     *fiber.App
	tokens  *auth.TokenManager
	storage *session.MemoryStorage
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	api := fiber.New(fiber.Config{ErrorHandler: apperrors.FiberErrorHandler})
	apihttp.RegisterMiddlewares(api, zap.NewNop(), metrics, apihttp.MiddlewareConfig{CORSAllowOrigins: "*"})
	apihttp.RegisterRoutes(api, apihttp.RouteConfig{
		Health: handlers.NewHealthHandler("storefront-api", "test", metrics, map[string]handlers.Pinger{}),
		Auth: handlers.NewAuthHandler(service.NewAuthService(service.AuthDependencies{
			UserRepo:   store.Users(),
			Tokens:     tokens,
			Dispatcher: dispatcher,
			BcryptCost: bcrypt.MinCost,
		})),
		Products: handlers.NewProductsHandler(service.NewProductService(store.Products(), dispatcher)),
		Cart: handlers.NewCartHandler(service.NewCartService(service.CartDependencies{
			CartRepo:    store.Carts(),
			ProductRepo: store.Products(),
			Dispatcher:  dispatcher,
		})),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})
	srv := httptest.NewServer(adaptor.FiberApp(api))
	t.Cleanup(srv.Close)

	storage := session.NewMemoryStorage()
	app, err := New(Dependencies{
		AppName: "storefront-test",
		API:     apiclient.New(srv.URL, 5*time.Second, zap.NewNop()),
		Storage: storage,
	})
	require.NoError(t, err)
	return &harness{app: app, tokens: tokens, storage: storage}
}

// browser keeps cookies between requests like a real one would.
type browser struct {
	t       *testing.T
	h       *harness
	cookies map[string]string
}

func (h *harness) browser(t *testing.T) *browser {
	return &browser{t: t, h: h, cookies: map[string]string{}}
}

type page struct {
	status   int
	body     string
	location string
}

func (b *browser) get(path string) page {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) page {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

func (b *browser) do(method, path string, form url.Values) page {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := b.h.app.Test(req, -1)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)

	for _, ck := range resp.Cookies() {
		if ck.Value == "" || ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck.Value
	}
	return page{status: resp.StatusCode, body: string(raw), location: resp.Header.Get(fiber.HeaderLocation)}
}

// session opens the browser's session namespace straight from storage.
func (b *browser) session() *session.Session {
	b.t.Helper()
	sid := b.cookies[SessionCookie]
	require.NotEmpty(b.t, sid, "browser has no session cookie yet")
	sess, err := session.Open(context.Background(), b.h.storage, sid)
	require.NoError(b.t, err)
	return sess
}

func (b *browser) signup(email, role string) {
	b.t.Helper()
	p := b.post("/auth/signup", url.Values{"email": {email}, "password": {"secret1"}, "role": {role}})
	require.Equal(b.t, fiber.StatusFound, p.status, p.body)
	require.Equal(b.t, "/auth/login", p.location)
}

func (b *browser) login(email string) page {
	b.t.Helper()
	return b.post("/auth/login", url.Values{"email": {email}, "password": {"secret1"}})
}

func (b *browser) signupAndLogin(email, role string) {
	b.t.Helper()
	b.signup(email, role)
	p := b.login(email)
	require.Equal(b.t, fiber.StatusFound, p.status, p.body)
	require.Equal(b.t, "/"+role+"/dashboard", p.location)
}
