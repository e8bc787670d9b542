package http

import (
	"errors"
	"net/http"
	"strings"

	"example.com/brewery-admin/internal/domain/analytics"
	"example.com/brewery-admin/internal/domain/material"
	"example.com/brewery-admin/internal/domain/movement"
	"example.com/brewery-admin/internal/domain/packaging"
	"example.com/brewery-admin/internal/domain/product"
	"example.com/brewery-admin/internal/domain/productionorder"
	domuser "example.com/brewery-admin/internal/domain/user"
	"example.com/brewery-admin/internal/infra/backend"
	"example.com/brewery-admin/internal/infra/session"
	"example.com/brewery-admin/internal/usecase/crud"
)

type toastKind string

const (
	toastSuccess toastKind = "success"
	toastError   toastKind = "error"
	toastInfo    toastKind = "info"
)

const (
	networkTitle   = "Error de conexión"
	networkMessage = "No se pudo conectar con el servidor. Verifique su conexión e intente nuevamente."
)

// Toast is a transient notification. Lines, when present, are the per-field
// messages of a validation failure.
type Toast struct {
	Kind    toastKind `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message,omitempty"`
	Lines   []string  `json:"lines,omitempty"`
}

func successToast(title, message string) Toast {
	return Toast{Kind: toastSuccess, Title: title, Message: message}
}

// describeError turns any failure into the toast shown to the user. title
// overrides the status-derived title; network failures always use the
// connection message.
func describeError(err error, title string) Toast {
	if apiErr, ok := backend.AsAPIError(err); ok {
		if apiErr.IsNetwork() {
			return Toast{Kind: toastError, Title: networkTitle, Message: networkMessage}
		}
		t := Toast{Kind: toastError, Title: title, Message: apiErr.Message}
		if t.Title == "" {
			t.Title = statusTitle(apiErr.Status)
		}
		if lines := apiErr.DetailLines(); len(lines) > 0 {
			t.Lines = lines
			t.Message = strings.Join(lines, "\n")
		}
		if t.Message == "" {
			t.Message = http.StatusText(apiErr.Status)
		}
		return t
	}

	status := errorStatus(err)
	t := Toast{Kind: toastError, Title: title, Message: domainMessage(err)}
	if t.Title == "" {
		t.Title = statusTitle(status)
	}
	return t
}

func statusTitle(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "Solicitud inválida"
	case status == http.StatusForbidden:
		return "Acceso denegado"
	case status == http.StatusNotFound:
		return "No encontrado"
	case status == http.StatusConflict:
		return "Conflicto de datos"
	case status == http.StatusUnprocessableEntity:
		return "Datos inválidos"
	case status >= 500:
		return "Error del servidor"
	default:
		return "Error"
	}
}

// errorStatus maps a failure to the HTTP status it is reported with.
func errorStatus(err error) int {
	if apiErr, ok := backend.AsAPIError(err); ok {
		if apiErr.IsNetwork() {
			return http.StatusBadGateway
		}
		return apiErr.Status
	}
	switch {
	case errors.Is(err, crud.ErrInFlight),
		errors.Is(err, crud.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, material.ErrMaterialNotFound),
		errors.Is(err, movement.ErrMovementNotFound),
		errors.Is(err, packaging.ErrPackagingNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, productionorder.ErrOrderNotFound),
		errors.Is(err, domuser.ErrUserNotFound),
		errors.Is(err, analytics.ErrUnknownReport):
		return http.StatusNotFound
	case errors.Is(err, movement.ErrInvalidDateRange),
		errors.Is(err, analytics.ErrInvalidDateRange),
		errors.Is(err, domuser.ErrInvalidCredential),
		errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, domuser.ErrEmptyRoles),
		errors.Is(err, domuser.ErrInvalidRoleCode),
		errors.Is(err, errValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domuser.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func domainMessage(err error) string {
	switch {
	case errors.Is(err, crud.ErrInFlight):
		return "Ya hay un cambio en curso para este registro."
	case errors.Is(err, crud.ErrBusy):
		return "Ya se está guardando el formulario."
	case errors.Is(err, movement.ErrInvalidDateRange),
		errors.Is(err, analytics.ErrInvalidDateRange):
		return "El rango de fechas no es válido."
	case errors.Is(err, domuser.ErrInvalidCredential):
		return "Ingrese usuario y contraseña."
	case errors.Is(err, domuser.ErrEmptyRoles):
		return "Seleccione al menos un rol."
	case errors.Is(err, errValidation):
		return "Revise los campos marcados."
	case errorStatus(err) == http.StatusNotFound:
		return "El registro solicitado no existe."
	default:
		return "Ocurrió un error inesperado. Intente nuevamente."
	}
}

// handleDomainError answers a JSON caller with the mapped status.
func handleDomainError(w http.ResponseWriter, err error) {
	t := describeError(err, "")
	status := errorStatus(err)
	var details any
	if apiErr, ok := backend.AsAPIError(err); ok && len(apiErr.Details) > 0 {
		details = apiErr.Details
	}
	writeJSON(w, status, errorResponse{Error: t.Message, Details: details})
}

func isUnauthorized(err error) bool {
	apiErr, ok := backend.AsAPIError(err)
	return ok && apiErr.IsUnauthorized()
}

// flash keeps a toast for the next page the session renders.
func (a *API) flash(r *http.Request, t Toast) {
	sid := sessionID(r)
	if sid == "" {
		return
	}
	if err := session.Save(r.Context(), a.sessions, sid, session.KeyFlash, t); err != nil {
		a.logger.WarnContext(r.Context(), "flash toast", "err", err)
	}
}

func (a *API) takeFlash(r *http.Request) *Toast {
	sid := sessionID(r)
	if sid == "" {
		return nil
	}
	t, ok, err := session.Take[Toast](r.Context(), a.sessions, sid, session.KeyFlash)
	if err != nil {
		a.logger.WarnContext(r.Context(), "read flash toast", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &t
}
