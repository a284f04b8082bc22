package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/middleware"
)

// ============================================================================
// MIDDLEWARE REGISTRATION
// ============================================================================
//
// Middleware passed inline (router.Get(path, mw, handler)) is not reliably invoked in
// Fiber v3. Register it on a prefix group with .Use() instead:
//
//	r.RegisterProtected(v1, "/auth/me", Route{Method: fiber.MethodGet, Path: "/", Handler: h})
//
// .Use() binds to the whole prefix, so each prefix gets its middleware once and
// per-route role checks go through middleware.RequireRoles as a handler wrapper. Public
// endpoints live under their own prefixes (/auth, /public).
//
// ============================================================================

// ResourceHandler is implemented by every collection handler exposed through
// RegisterResourceRoutes.
type ResourceHandler interface {
	FindWithPagination(c fiber.Ctx) error
	FindByKey(c fiber.Ctx) error
	HandleCreate(c fiber.Ctx) error
	HandleUpdate(c fiber.Ctx) error
	DeleteByKey(c fiber.Ctx) error
}

// Router wires the domain routers onto the app.
type Router struct {
	app *fiber.App
	// Auth authenticates protected prefixes; middleware.AuthMiddleware when nil.
	Auth fiber.Handler
}

// ResourceConfig selects the endpoints of a collection and who may call them. Empty
// role lists allow every authenticated account.
type ResourceConfig struct {
	List   bool // GET /
	Get    bool // GET /:id
	Create bool // POST /
	Update bool // PUT /:id
	Delete bool // DELETE /:id

	ReadRoles  []string
	WriteRoles []string
}

var (
	// ReadWriteConfig exposes every endpoint.
	ReadWriteConfig = ResourceConfig{List: true, Get: true, Create: true, Update: true, Delete: true}

	// ReadOnlyConfig exposes the list and lookup endpoints.
	ReadOnlyConfig = ResourceConfig{List: true, Get: true}
)

// WithRoles returns a copy of cfg restricted to the given roles.
func (cfg ResourceConfig) WithRoles(read, write []string) ResourceConfig {
	cfg.ReadRoles = read
	cfg.WriteRoles = write
	return cfg
}

// RoutePrefix holds the base prefixes of the API.
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix returns the default prefixes.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter creates a Router.
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// AuthHandler returns the authentication middleware of protected prefixes.
func (r *Router) AuthHandler() fiber.Handler {
	if r.Auth == nil {
		r.Auth = middleware.AuthMiddleware()
	}
	return r.Auth
}

func addRoute(group fiber.Router, method, path string, handler fiber.Handler) {
	switch method {
	case fiber.MethodGet:
		group.Get(path, handler)
	case fiber.MethodPost:
		group.Post(path, handler)
	case fiber.MethodPut:
		group.Put(path, handler)
	case fiber.MethodPatch:
		group.Patch(path, handler)
	case fiber.MethodDelete:
		group.Delete(path, handler)
	}
}

// Route is one endpoint of a protected group.
type Route struct {
	Method  string
	Path    string
	Roles   []string // empty = every authenticated account
	Handler fiber.Handler
}

// RegisterProtected registers routes on prefix behind the authentication middleware,
// attached once for the whole group.
func (r *Router) RegisterProtected(router fiber.Router, prefix string, routes ...Route) fiber.Router {
	group := router.Group(prefix)
	group.Use(r.AuthHandler())
	for _, rt := range routes {
		handler := rt.Handler
		if len(rt.Roles) > 0 {
			handler = middleware.RequireRoles(rt.Roles...)(handler)
		}
		addRoute(group, rt.Method, rt.Path, handler)
	}
	return group
}

// RegisterResourceRoutes registers the collection endpoints selected by config on prefix
// followed by any extra routes.
func (r *Router) RegisterResourceRoutes(router fiber.Router, prefix string, h ResourceHandler, config ResourceConfig, extra ...Route) fiber.Router {
	// extra routes first so that fixed paths such as /export win over /:id
	routes := append([]Route{}, extra...)
	if config.List {
		routes = append(routes, Route{fiber.MethodGet, "/", config.ReadRoles, h.FindWithPagination})
	}
	if config.Get {
		routes = append(routes, Route{fiber.MethodGet, "/:id", config.ReadRoles, h.FindByKey})
	}
	if config.Create {
		routes = append(routes, Route{fiber.MethodPost, "/", config.WriteRoles, h.HandleCreate})
	}
	if config.Update {
		routes = append(routes, Route{fiber.MethodPut, "/:id", config.WriteRoles, h.HandleUpdate})
	}
	if config.Delete {
		routes = append(routes, Route{fiber.MethodDelete, "/:id", config.WriteRoles, h.DeleteByKey})
	}
	return r.RegisterProtected(router, prefix, routes...)
}

// RegisterFunc registers the routes of one domain.
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes mounts every domain router under /api/v1. Domains are passed in by the caller
// to keep this package free of domain imports.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	return SetupRoutesWith(NewRouter(app), regs...)
}

// SetupRoutesWith is SetupRoutes with a preconfigured Router.
func SetupRoutesWith(r *Router, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := r.app.Group(prefix.V1)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
