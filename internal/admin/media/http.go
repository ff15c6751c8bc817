package media

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inmoview/explorer-backend/internal/auth"
	"github.com/inmoview/explorer-backend/internal/explorer/domain"
	storage "github.com/inmoview/explorer-backend/internal/storage/s3"
)

// Handler bundles the dependencies for the admin media endpoints: the row
// repo, the object store and a cache-invalidation callback.
type Handler struct {
	repo       *Repo
	store      *storage.Client
	invalidate func(c *gin.Context, projectID string)
}

func NewHandler(repo *Repo, store *storage.Client, invalidate func(c *gin.Context, projectID string)) *Handler {
	if invalidate == nil {
		invalidate = func(*gin.Context, string) {}
	}
	return &Handler{repo: repo, store: store, invalidate: invalidate}
}

// Register attaches the admin media routes to an authenticated group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/media", h.upload)
	rg.DELETE("/media/:id", h.delete)
}

// upload stores the file in the object store and inserts the media row.
// Owner scope comes from the form: exactly one of layer_id / unit_type_id,
// or neither for project-root media. Tour metadata is accepted as typed
// fields and validated per purpose before the row is written, so the
// invariant the tour resolver relies on (transitions carry both endpoints)
// holds for everything uploaded through here.
func (h *Handler) upload(c *gin.Context) {
	projectID := strings.TrimSpace(c.PostForm("project_id"))
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "project_id is required"})
		return
	}

	layerID := optionalForm(c, "layer_id")
	unitTypeID := optionalForm(c, "unit_type_id")
	if layerID != nil && unitTypeID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "media belongs to a layer or a unit type, not both"})
		return
	}

	purpose := domain.MediaPurpose(strings.TrimSpace(c.PostForm("purpose")))
	if purpose == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "purpose is required"})
		return
	}

	metadata, err := metadataFor(c, purpose)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("projects/%s/%s/%s%s", projectID, purpose, uuid.New().String(), ext)
	url, err := h.store.Put(c.Request.Context(), key, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	sortOrder, err := h.repo.NextSortOrder(c.Request.Context(), projectID, layerID, unitTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	m := &domain.Media{
		ProjectID:   projectID,
		LayerID:     layerID,
		UnitTypeID:  unitTypeID,
		Purpose:     purpose,
		Type:        mediaType(contentType, ext),
		URL:         url,
		StoragePath: key,
		SortOrder:   sortOrder,
		Metadata:    metadata,
	}
	if err := h.repo.Create(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	log.Printf("[info] operation=media_upload media=%s project=%s purpose=%s actor=%s email=%s",
		m.ID, projectID, purpose, auth.ActorUID(c), auth.ActorEmail(c))
	h.invalidate(c, projectID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "media": m})
}

func (h *Handler) delete(c *gin.Context) {
	m, err := h.repo.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "media not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "media not found"})
		return
	}

	// Object cleanup is best effort: the row is the source of truth and an
	// orphaned object only costs storage.
	if m.StoragePath != "" {
		if err := h.store.Delete(c.Request.Context(), m.StoragePath); err != nil {
			log.Printf("[warn] operation=media_delete_object key=%s error=%v", m.StoragePath, err)
		}
	}

	h.invalidate(c, m.ProjectID)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// metadataFor validates the typed payload a purpose requires.
func metadataFor(c *gin.Context, purpose domain.MediaPurpose) (domain.Metadata, error) {
	viewpoint := strings.TrimSpace(c.PostForm("viewpoint"))
	from := strings.TrimSpace(c.PostForm("from_viewpoint"))
	to := strings.TrimSpace(c.PostForm("to_viewpoint"))
	name := strings.TrimSpace(c.PostForm("name"))

	switch purpose {
	case domain.PurposeTransition:
		if from == "" || to == "" {
			return nil, fmt.Errorf("transition media requires from_viewpoint and to_viewpoint")
		}
		return domain.NewTransitionMetadata(from, to), nil
	case domain.PurposeGallery:
		if viewpoint != "" {
			return domain.NewGalleryMetadata(viewpoint, name), nil
		}
	case domain.PurposeHotspot:
		if viewpoint != "" {
			return domain.NewHotspotMetadata(viewpoint), nil
		}
	}

	if name != "" {
		return domain.Metadata{"name": name}, nil
	}
	return nil, nil
}

func mediaType(contentType, ext string) domain.MediaType {
	switch {
	case ext == ".svg" || contentType == "image/svg+xml":
		return domain.MediaSVG
	case strings.HasPrefix(contentType, "video/"):
		return domain.MediaVideo
	default:
		return domain.MediaImage
	}
}

func optionalForm(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.PostForm(key))
	if v == "" {
		return nil
	}
	return &v
}
