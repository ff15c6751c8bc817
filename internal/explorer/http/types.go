package http

import "github.com/inmoview/explorer-backend/internal/explorer/service"

// Handler bundles the dependencies for the public explorer endpoints.
type Handler struct {
	svc *service.ExplorerService
}

func New(svc *service.ExplorerService) *Handler {
	return &Handler{svc: svc}
}
