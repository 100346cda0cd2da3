package apiclient

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/auth"
)

// AuthTransport attaches the session token to outbound API calls. A missing
// or expired token is never sent; instead the session is logged out and the
// token cookie cleared. Responses are returned untouched.
type AuthTransport struct {
	Base   http.RoundTripper
	Logger *zap.Logger
	Now    func() time.Time
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *AuthTransport) logger() *zap.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return zap.NewNop()
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)
	out.Header.Del("Authorization")

	sc := scopeFrom(ctx)
	if sc == nil || sc.session == nil {
		return t.base().RoundTrip(out)
	}

	token, err := sc.session.PersistedToken(ctx)
	if err != nil {
		t.logger().Warn("read session token", zap.String("session", sc.session.Namespace()), zap.Error(err))
	}

	if token != "" && !auth.IsExpired(token, t.now()) {
		out.Header.Set("Authorization", token)
		return t.base().RoundTrip(out)
	}

	if err := sc.session.Logout(ctx); err != nil {
		t.logger().Warn("logout stale session", zap.String("session", sc.session.Namespace()), zap.Error(err))
	}
	if sc.clearCookie != nil {
		sc.clearCookie()
	}
	return t.base().RoundTrip(out)
}
