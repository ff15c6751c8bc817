package layers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inmoview/explorer-backend/internal/admin/importer"
	"github.com/inmoview/explorer-backend/internal/auth"
	"github.com/inmoview/explorer-backend/internal/explorer/domain"
	"github.com/inmoview/explorer-backend/internal/explorer/tree"
)

// Handler bundles the dependencies for the admin layer endpoints.
type Handler struct {
	repo       *Repo
	invalidate func(c *gin.Context, projectID string)
}

// NewHandler wires the repo and a cache-invalidation callback keyed by
// project id (the callback resolves slug internally).
func NewHandler(repo *Repo, invalidate func(c *gin.Context, projectID string)) *Handler {
	if invalidate == nil {
		invalidate = func(*gin.Context, string) {}
	}
	return &Handler{repo: repo, invalidate: invalidate}
}

// Register attaches the admin layer routes to an authenticated group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects/:project_id/layers", h.list)
	rg.POST("/layers", h.create)
	rg.PATCH("/layers/:id", h.update)
	rg.DELETE("/layers/:id", h.delete)
	rg.POST("/layers/:id/import", h.importCSV)
}

// list returns a project's layer rows in tree order. Tour layers are
// managed through the media screens, so they are left out of the layer
// tree unless ?include_tour=1 asks for them.
func (h *Handler) list(c *gin.Context) {
	rows, err := h.repo.ByProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	items := rows
	if c.Query("include_tour") != "1" {
		items = navigableRows(rows)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "layers": items})
}

// navigableRows drops tour roots and their subtrees, keeping the remaining
// rows in depth-first tree order.
func navigableRows(rows []domain.Layer) []domain.Layer {
	forest := tree.Build(rows)
	nodes := forest.FlattenRoots(forest.NavigableRoots())
	out := make([]domain.Layer, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, *n.Layer)
	}
	return out
}

func (h *Handler) create(c *gin.Context) {
	var req CreateLayerRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	l, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c, l.ProjectID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "layer": l})
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateLayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	l, err := h.repo.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, domain.ErrLayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "layer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c, l.ProjectID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "layer": l})
}

func (h *Handler) delete(c *gin.Context) {
	layer, err := h.repo.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "layer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), layer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "layer not found"})
		return
	}

	log.Printf("[info] operation=layer_delete layer=%s project=%s actor=%s",
		layer.ID, layer.ProjectID, auth.ActorUID(c))
	h.invalidate(c, layer.ProjectID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// importCSV bulk-creates lot layers under the target parent from an
// uploaded CSV. Partial success: bad rows are reported, good rows land.
func (h *Handler) importCSV(c *gin.Context) {
	parent, err := h.repo.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "parent layer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	slugs, nextSort, err := h.repo.ChildState(c.Request.Context(), parent.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	result, err := importer.Parse(c.Request.Body, parent, slugs, nextSort)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.repo.BulkInsertLots(c.Request.Context(), parent, result.Requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	log.Printf("[info] operation=lot_import parent=%s imported=%d failed=%d actor=%s",
		parent.ID, result.Imported, result.Failed, auth.ActorUID(c))
	h.invalidate(c, parent.ProjectID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": result})
}
