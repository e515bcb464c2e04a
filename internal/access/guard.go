package access

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/savoria-erp/savoria/internal/shared"
)

// Guard enforces the permission table on every navigation. It either lets
// the request through, bounces an unauthenticated visitor to the login
// page (remembering where they were headed), or sends an authenticated but
// under-privileged visitor home with an unauthorized notice.
type Guard struct {
	engine  *Engine
	logger  *slog.Logger
	exempt  []string
	denials DenialRecorder
}

// DenialRecorder counts guard rejections per route key.
type DenialRecorder interface {
	RecordDenied(route string)
}

// NewGuard constructs a Guard. Paths under the exempt prefixes (static
// assets, health and metrics endpoints) bypass the permission table.
func NewGuard(engine *Engine, logger *slog.Logger, exemptPrefixes ...string) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{engine: engine, logger: logger, exempt: exemptPrefixes}
}

// RecordDenialsTo routes guard rejections to a metrics collector.
func (g *Guard) RecordDenialsTo(rec DenialRecorder) {
	g.denials = rec
}

// Middleware evaluates the guard for each request.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		for _, prefix := range g.exempt {
			if strings.HasPrefix(path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		sess := shared.SessionFromContext(r.Context())
		store := NewStore(sess)
		id := store.Identity()
		key := RouteKey(path)

		// A signed-in visitor has no business on the login or signup page.
		if (key == PathLogin || key == PathSignup) && id.IsAuthenticated() {
			http.Redirect(w, r, PathHome, http.StatusSeeOther)
			return
		}

		if !g.engine.HasPermission(path, id.Role) {
			if g.denials != nil {
				g.denials.RecordDenied(key)
			}
			if !id.IsAuthenticated() {
				store.StashRedirect(path)
				http.Redirect(w, r, PathLogin, http.StatusSeeOther)
				return
			}
			if !g.engine.RouteKnown(path) {
				// Signed in but the path matches nothing: terminal page,
				// not a redirect loop through home.
				http.Redirect(w, r, PathUnauthorized, http.StatusSeeOther)
				return
			}
			g.logger.Info("denied", slog.String("path", path), slog.String("role", id.Role.String()))
			if sess != nil {
				sess.AddFlash(shared.FlashMessage{Kind: "error", Message: "You do not have permission to access that page."})
			}
			http.Redirect(w, r, PathHome, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
