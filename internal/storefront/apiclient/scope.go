package apiclient

import (
	"context"

	"github.com/spec-kit/storefront/internal/storefront/session"
)

type scopeKey struct{}

// scope ties an outbound call to the browser session that triggered it.
type scope struct {
	session     *session.Session
	clearCookie func()
}

// WithScope attaches sess to ctx so that calls made with ctx carry its token.
// clearCookie is invoked when the token turns out to be unusable.
func WithScope(ctx context.Context, sess *session.Session, clearCookie func()) context.Context {
	return context.WithValue(ctx, scopeKey{}, &scope{session: sess, clearCookie: clearCookie})
}

func scopeFrom(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}
