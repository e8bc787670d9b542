package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"example.com/brewery-admin/internal/domain/analytics"
	"example.com/brewery-admin/internal/domain/material"
	"example.com/brewery-admin/internal/domain/movement"
	"example.com/brewery-admin/internal/domain/packaging"
	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/domain/product"
	"example.com/brewery-admin/internal/domain/productionorder"
	domuser "example.com/brewery-admin/internal/domain/user"
	"example.com/brewery-admin/internal/domain/warehouse"
	"example.com/brewery-admin/internal/infra/session"
	authuc "example.com/brewery-admin/internal/usecase/auth"
	"example.com/brewery-admin/internal/usecase/crud"
	"example.com/brewery-admin/internal/usecase/filter"
	"example.com/brewery-admin/internal/usecase/picker"
)

type API struct {
	authSvc    *authuc.Service
	materials  material.Repository
	movements  movement.Repository
	packagings packaging.Repository
	products   product.Repository
	orders     productionorder.Repository
	users      domuser.Repository
	analytics  analytics.Repository
	layout     warehouse.LayoutSource
	sessions   session.Store
	drafts     *filter.Drafts
	memory     *picker.Memory
	validator  *formValidator
	views      *renderer
	logger     *slog.Logger
	metrics    http.Handler

	materialSearch *picker.Searcher[material.IDName]
	productSearch  *picker.Searcher[product.IDName]

	materialCtl  *crud.Registry[material.Material]
	movementCtl  *crud.Registry[movement.Movement]
	packagingCtl *crud.Registry[packaging.Packaging]
	productCtl   *crud.Registry[product.Product]
	orderCtl     *crud.Registry[productionorder.Order]
	userCtl      *crud.Registry[domuser.User]

	pageSize      int
	cookieMaxAge  time.Duration
	secureCookies bool
}

type Dependencies struct {
	AuthService      *authuc.Service
	Materials        material.Repository
	Movements        movement.Repository
	Packagings       packaging.Repository
	Products         product.Repository
	ProductionOrders productionorder.Repository
	Users            domuser.Repository
	Analytics        analytics.Repository
	Layout           warehouse.LayoutSource
	Sessions         session.Store
	Rollbacks        crud.RollbackObserver
	MetricsHandler   http.Handler
	Logger           *slog.Logger
	SearchDebounce   time.Duration
	PageSize         int
	SessionTTL       time.Duration
	SecureCookies    bool
}

// ErrMissingDependency is returned by NewAPI when a required port is nil.
var ErrMissingDependency = errors.New("missing dependency")

func (deps Dependencies) validate() error {
	required := []struct {
		name string
		set  bool
	}{
		{"AuthService", deps.AuthService != nil},
		{"Materials", deps.Materials != nil},
		{"Movements", deps.Movements != nil},
		{"Packagings", deps.Packagings != nil},
		{"Products", deps.Products != nil},
		{"ProductionOrders", deps.ProductionOrders != nil},
		{"Users", deps.Users != nil},
		{"Analytics", deps.Analytics != nil},
		{"Layout", deps.Layout != nil},
		{"Sessions", deps.Sessions != nil},
	}
	for _, dep := range required {
		if !dep.set {
			return fmt.Errorf("%w: %s", ErrMissingDependency, dep.name)
		}
	}
	return nil
}

func NewAPI(deps Dependencies) (*API, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = page.DefaultSize
	}
	debounce := picker.NewDebouncer(deps.SearchDebounce)

	a := &API{
		authSvc:       deps.AuthService,
		materials:     deps.Materials,
		movements:     deps.Movements,
		packagings:    deps.Packagings,
		products:      deps.Products,
		orders:        deps.ProductionOrders,
		users:         deps.Users,
		analytics:     deps.Analytics,
		layout:        deps.Layout,
		sessions:      deps.Sessions,
		drafts:        filter.NewDrafts(deps.Sessions),
		memory:        picker.NewMemory(deps.Sessions),
		validator:     newFormValidator(),
		views:         newRenderer(),
		logger:        logger,
		metrics:       deps.MetricsHandler,
		materialCtl:   crud.NewRegistry[material.Material]("materials", deps.Rollbacks),
		movementCtl:   crud.NewRegistry[movement.Movement]("movements", deps.Rollbacks),
		packagingCtl:  crud.NewRegistry[packaging.Packaging]("packagings", deps.Rollbacks),
		productCtl:    crud.NewRegistry[product.Product]("products", deps.Rollbacks),
		orderCtl:      crud.NewRegistry[productionorder.Order]("production_orders", deps.Rollbacks),
		userCtl:       crud.NewRegistry[domuser.User]("users", deps.Rollbacks),
		pageSize:      pageSize,
		cookieMaxAge:  deps.SessionTTL,
		secureCookies: deps.SecureCookies,
	}
	a.materialSearch = picker.NewSearcher(debounce, func(ctx context.Context, term string) ([]material.IDName, error) {
		active := true
		return deps.Materials.IDNameList(ctx, material.IDNameQuery{Name: term, Active: &active})
	})
	a.productSearch = picker.NewSearcher(debounce, func(ctx context.Context, term string) ([]product.IDName, error) {
		active := true
		return deps.Products.IDNameList(ctx, product.IDNameQuery{Name: term, Active: &active})
	})
	return a, nil
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/x-www-form-urlencoded", "multipart/form-data", "application/json"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if a.metrics != nil {
		r.Method(http.MethodGet, "/metrics", a.metrics)
	}

	r.Get("/login", a.handleLoginPage)
	r.Post("/login", a.handleLogin)
	r.Post("/logout", a.handleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(a.authMiddleware)

		pr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/materials", http.StatusSeeOther)
		})

		pr.Route("/materials", a.materialRoutes)
		pr.Route("/movements", a.movementRoutes)
		pr.Route("/packagings", a.packagingRoutes)
		pr.Route("/products", a.productRoutes)
		pr.Route("/production-orders", a.productionOrderRoutes)

		pr.Get("/warehouse", a.handleWarehouse)
		pr.Get("/warehouse/materials.json", a.handleWarehouseMaterials)

		pr.Get("/analytics", a.handleAnalyticsIndex)
		pr.Get("/analytics/{report}", a.handleAnalytics)

		pr.Route("/ui/pickers", func(ur chi.Router) {
			ur.Get("/materials", a.handleMaterialPicker)
			ur.Post("/materials/select", a.handleMaterialPickerSelect)
			ur.Get("/products", a.handleProductPicker)
			ur.Post("/products/select", a.handleProductPickerSelect)
		})

		pr.Group(func(ar chi.Router) {
			ar.Use(a.requireRoles(domuser.RoleAdmin))
			ar.Route("/users", a.userRoutes)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err == nil && id <= 0 {
		return 0, errInvalidID
	}
	return id, err
}

var errInvalidID = errors.New("invalid id")

// wantsJSON reports whether the caller asked for a JSON answer instead of a
// redirect, as scripted row actions do.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// returnTo is where a form post goes back to: the list URL it came from, kept
// in a hidden field, or base.
func returnTo(r *http.Request, base string) string {
	ret := strings.TrimSpace(r.PostFormValue("return"))
	if ret == "" || !strings.HasPrefix(ret, base) || strings.HasPrefix(ret, "//") || strings.Contains(ret, `\`) {
		return base
	}
	return ret
}
