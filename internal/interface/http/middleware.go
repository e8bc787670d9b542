package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	domuser "example.com/brewery-admin/internal/domain/user"
	"example.com/brewery-admin/internal/infra/backend"
)

const sessionCookie = "brewery_session"

type ctxKey int

const ctxUserKey ctxKey = iota

var (
	errUnauthenticated = errors.New("unauthenticated")
	errForbidden       = errors.New("forbidden")
)

type authUser struct {
	SessionID string
	UserID    int64
	Username  string
	Name      string
	Roles     []domuser.RoleCode
}

func (u *authUser) IsAdmin() bool {
	return u != nil && domuser.HasAny(u.Roles, domuser.RoleAdmin)
}

// authMiddleware resolves the session cookie and attaches the user and the
// backend credentials of the session to the request context.
func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(sessionCookie)
		if err != nil || ck.Value == "" {
			a.toLogin(w, r)
			return
		}

		claims, cookies, err := a.authSvc.Authenticate(r.Context(), ck.Value)
		if err != nil {
			a.logger.DebugContext(r.Context(), "session rejected", "err", err)
			a.clearSessionCookie(w)
			a.toLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, &authUser{
			SessionID: claims.SessionID,
			UserID:    claims.UserID,
			Username:  claims.Username,
			Name:      claims.Name,
			Roles:     claims.Roles,
		})
		ctx = backend.WithCredentials(ctx, cookies)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) requireRoles(roles ...domuser.RoleCode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := getAuthUser(r.Context())
			if user == nil {
				a.toLogin(w, r)
				return
			}
			if domuser.HasAny(user.Roles, roles...) {
				next.ServeHTTP(w, r)
				return
			}
			if wantsJSON(r) {
				respondError(w, http.StatusForbidden, errForbidden)
				return
			}
			a.renderError(w, r, http.StatusForbidden, Toast{
				Kind:    toastError,
				Title:   "Acceso denegado",
				Message: "No tiene permisos para ver esta sección.",
			})
		})
	}
}

func getAuthUser(ctx context.Context) *authUser {
	val := ctx.Value(ctxUserKey)
	if user, ok := val.(*authUser); ok {
		return user
	}
	return nil
}

func sessionID(r *http.Request) string {
	if u := getAuthUser(r.Context()); u != nil {
		return u.SessionID
	}
	return ""
}

// toLogin sends the browser to the login page, remembering where it was
// headed. JSON callers get a plain 401.
func (a *API) toLogin(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}
	target := "/login"
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// expireSession handles a 401 from the backend: the local session is dropped
// and the browser goes back to the login page.
func (a *API) expireSession(w http.ResponseWriter, r *http.Request) {
	if sid := sessionID(r); sid != "" {
		if err := a.authSvc.Drop(r.Context(), sid); err != nil {
			a.logger.WarnContext(r.Context(), "drop session", "err", err)
		}
		a.forgetControllers(sid)
	}
	a.clearSessionCookie(w)
	a.toLogin(w, r)
}

func (a *API) forgetControllers(sid string) {
	a.materialCtl.Forget(sid)
	a.movementCtl.Forget(sid)
	a.packagingCtl.Forget(sid)
	a.productCtl.Forget(sid)
	a.orderCtl.Forget(sid)
	a.userCtl.Forget(sid)
}

// SweepControllers drops per-session list state idle for longer than idle.
func (a *API) SweepControllers(idle time.Duration) int {
	return a.materialCtl.Sweep(idle) +
		a.movementCtl.Sweep(idle) +
		a.packagingCtl.Sweep(idle) +
		a.productCtl.Sweep(idle) +
		a.orderCtl.Sweep(idle) +
		a.userCtl.Sweep(idle)
}

func (a *API) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *API) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
