package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/gym-backend/pkg/response"
)

// Registry collects API-wide middleware and feature modules, then mounts them under /api.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll applies the middleware, mounts GET /api/health and every module. Call once.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	r.API.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"modules": len(r.modules)}, "ok", nil)
	})
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
