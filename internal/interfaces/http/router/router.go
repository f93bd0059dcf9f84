// Package router mounts the read-only audit API under a versioned prefix.
package router

import (
	"path"

	"github.com/gin-gonic/gin"
)

// Registrar mounts its routes on the versioned API group
type Registrar interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	version    string
	registrars []Registrar
}

// Option configures a Router
type Option func(*Router)

// WithAPIVersion mounts the API under /api/<version> instead of /api/v1
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.version = version
	}
}

// NewRouter creates a Router on engine
func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{
		engine:  engine,
		version: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BasePath is the prefix shared by every API route
func (r *Router) BasePath() string {
	return "/api/" + r.version
}

// Register queues a registrar for Setup
func (r *Router) Register(registrar Registrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every queued registrar
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath())
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Paths lists the full path of every GET route queued on the router
func (r *Router) Paths() []string {
	var paths []string
	for _, registrar := range r.registrars {
		if g, ok := registrar.(*ResourceGroup); ok {
			for _, p := range g.Paths() {
				paths = append(paths, path.Join(r.BasePath(), p))
			}
		}
	}
	return paths
}

// ResourceGroup is a set of GET endpoints sharing a prefix and middleware.
// The audit API never mutates state, so no other verb is offered.
type ResourceGroup struct {
	name       string
	prefix     string
	endpoints  []endpoint
	middleware []gin.HandlerFunc
}

type endpoint struct {
	path     string
	handlers []gin.HandlerFunc
}

// NewResourceGroup creates a group mounted at prefix
func NewResourceGroup(name, prefix string) *ResourceGroup {
	return &ResourceGroup{name: name, prefix: prefix}
}

// Use adds middleware run before every endpoint of the group
func (g *ResourceGroup) Use(middleware ...gin.HandlerFunc) *ResourceGroup {
	g.middleware = append(g.middleware, middleware...)
	return g
}

// GET adds an endpoint
func (g *ResourceGroup) GET(p string, handlers ...gin.HandlerFunc) *ResourceGroup {
	g.endpoints = append(g.endpoints, endpoint{path: p, handlers: handlers})
	return g
}

// RegisterRoutes implements Registrar
func (g *ResourceGroup) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group(g.prefix)
	if len(g.middleware) > 0 {
		group.Use(g.middleware...)
	}
	for _, e := range g.endpoints {
		group.GET(e.path, e.handlers...)
	}
}

// Name identifies the group in logs
func (g *ResourceGroup) Name() string {
	return g.name
}

// Paths lists the endpoint paths relative to the API base path
func (g *ResourceGroup) Paths() []string {
	paths := make([]string, len(g.endpoints))
	for i, e := range g.endpoints {
		paths[i] = path.Join("/", g.prefix, e.path)
	}
	return paths
}
