package http

import "github.com/gin-gonic/gin"

// Register attaches the public explorer routes. The /p addressing scheme is
// the contract consumed by the frontend router: /p/{projectSlug} is the
// splash, every further segment descends one layer by slug.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/p/:project", h.page)
	r.GET("/p/:project/*path", h.page)
}

// RegisterAPI attaches the explorer JSON API group (tour graph and
// viewpoint navigation).
func (h *Handler) RegisterAPI(rg *gin.RouterGroup) {
	rg.GET("/:project/tour", h.tour)
	rg.GET("/:project/tour/next", h.tourStep(1))
	rg.GET("/:project/tour/prev", h.tourStep(-1))
}
