package http

import (
	"errors"
	"net/http"
	"strings"

	domuser "example.com/brewery-admin/internal/domain/user"
	authuc "example.com/brewery-admin/internal/usecase/auth"
)

type loginRequest struct {
	Username string `form:"username" label:"Usuario" validate:"required"`
	Password string `form:"password" label:"Contraseña" validate:"required"`
}

type loginView struct {
	Username string
	Next     string
	Errors   fieldErrors
}

func (a *API) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "login", "Iniciar sesión", "", loginView{Next: safeNext(r.URL.Query().Get("next"))}, nil)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	var req loginRequest
	errs := decodeForm(r.PostForm, &req)
	view := loginView{Username: req.Username, Next: safeNext(r.PostFormValue("next"))}

	if errs == nil {
		errs = a.validator.Check(&req)
	}
	if len(errs) > 0 {
		view.Errors = errs
		t := describeError(domuser.ErrInvalidCredential, "")
		a.render(w, r, http.StatusUnprocessableEntity, "login", "Iniciar sesión", "", view, &t)
		return
	}

	result, err := a.authSvc.Login(r.Context(), authuc.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		status, t := loginFailure(err)
		a.logger.InfoContext(r.Context(), "login failed", "username", req.Username, "status", status)
		a.render(w, r, status, "login", "Iniciar sesión", "", view, &t)
		return
	}

	a.setSessionCookie(w, result.Token)
	a.logger.InfoContext(r.Context(), "login", "username", result.Claims.Username, "sid", result.Claims.SessionID)
	http.Redirect(w, r, view.Next, http.StatusSeeOther)
}

// loginFailure keeps a rejected sign-in on the login page. A 401 from the
// backend is a wrong password here, not an expired session.
func loginFailure(err error) (int, Toast) {
	switch {
	case isUnauthorized(err), errors.Is(err, domuser.ErrInvalidCredential):
		return http.StatusUnauthorized, Toast{
			Kind:    toastError,
			Title:   "Credenciales inválidas",
			Message: "Usuario o contraseña incorrectos.",
		}
	default:
		return errorStatus(err), describeError(err, "Error al iniciar sesión")
	}
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(sessionCookie); err == nil && ck.Value != "" {
		if claims, _, err := a.authSvc.Authenticate(r.Context(), ck.Value); err == nil {
			if err := a.authSvc.Logout(r.Context(), claims.SessionID); err != nil {
				a.logger.WarnContext(r.Context(), "logout", "err", err)
			}
			a.forgetControllers(claims.SessionID)
		}
	}
	a.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// safeNext only follows local paths after sign-in.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") ||
		strings.Contains(next, `\`) || strings.HasPrefix(next, "/login") {
		return "/materials"
	}
	return next
}
