package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inmoview/explorer-backend/internal/explorer/domain"
	"github.com/inmoview/explorer-backend/internal/explorer/navigation"
)

func (h *Handler) page(c *gin.Context) {
	projectSlug := c.Param("project")
	segments := splitPath(c.Param("path"))

	wantBundle := c.Query("bundle") == "1"

	if wantBundle {
		bundle, err := h.svc.SiblingBundle(c.Request.Context(), projectSlug, segments)
		if err != nil {
			respondErr(c, err)
			return
		}
		if !publiclyVisible(bundle.Current.Project) {
			respondErr(c, domain.ErrProjectNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":       true,
			"page":     bundle.Current,
			"bundle":   bundle,
			"home_url": navigation.HomeURL(bundle.Current),
			"back_url": navigation.BackURL(bundle.Current),
		})
		return
	}

	page, err := h.svc.Page(c.Request.Context(), projectSlug, segments)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !publiclyVisible(page.Project) {
		respondErr(c, domain.ErrProjectNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"page":     page,
		"home_url": navigation.HomeURL(page),
		"back_url": navigation.BackURL(page),
	})
}

func (h *Handler) tour(c *gin.Context) {
	graph, err := h.svc.TourGraph(c.Request.Context(), c.Param("project"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stops": graph.Stops, "pairs": graph.Pairs})
}

func (h *Handler) tourStep(delta int) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewpoint := c.Query("viewpoint")
		if viewpoint == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "viewpoint is required"})
			return
		}

		graph, err := h.svc.TourGraph(c.Request.Context(), c.Param("project"))
		if err != nil {
			respondErr(c, err)
			return
		}

		var next string
		var ok bool
		if delta > 0 {
			next, ok = graph.Next(viewpoint)
		} else {
			next, ok = graph.Prev(viewpoint)
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown viewpoint"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "viewpoint": next})
	}
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrLayerNotFound),
		errors.Is(err, domain.ErrNoTourLayer):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

func publiclyVisible(p *domain.Project) bool {
	return p != nil && p.Status == domain.ProjectActive
}

func splitPath(raw string) []string {
	raw = strings.Trim(raw, "/")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "/")
}
