package unittypes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
	"github.com/inmoview/explorer-backend/internal/unittypes/repository"
)

// Handler bundles the dependencies for the admin unit-type endpoints.
type Handler struct {
	repo       *repository.UnitTypeRepository
	invalidate func(c *gin.Context, projectID string)
}

func NewHandler(repo *repository.UnitTypeRepository, invalidate func(c *gin.Context, projectID string)) *Handler {
	if invalidate == nil {
		invalidate = func(*gin.Context, string) {}
	}
	return &Handler{repo: repo, invalidate: invalidate}
}

// Register attaches the unit-type routes to an authenticated group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects/:project_id/unit-types", h.list)
	rg.POST("/projects/:project_id/unit-types", h.create)
	rg.PATCH("/unit-types/:id", h.update)
	rg.DELETE("/unit-types/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "unit_types": items})
}

func (h *Handler) create(c *gin.Context) {
	var req domain.UnitType
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	u, err := h.repo.Create(c.Request.Context(), c.Param("project_id"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c, u.ProjectID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "unit_type": u})
}

func (h *Handler) update(c *gin.Context) {
	var req domain.UnitType
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	u, err := h.repo.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, domain.ErrUnitTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unit type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c, u.ProjectID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "unit_type": u})
}

func (h *Handler) delete(c *gin.Context) {
	u, err := h.repo.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUnitTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unit type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unit type not found"})
		return
	}

	h.invalidate(c, u.ProjectID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
