package catalog

import (
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers"
)

const msgInvalidProductID = "некорректный ID теста"

type Handler struct {
	client CatalogClient
	logger Logger
}

func NewHandler(client CatalogClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Products GET /api/v1/products
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("GET /products - Failed to list products: %v", err)
		handlers.RespondUpstream(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, fromProducts(products))
}

// Sessions GET /api/v1/products/{productId}/sessions
func (h *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	productID, err := handlers.PathInt64(r, "productId")
	if err != nil {
		h.logger.Warn("GET /products/{id}/sessions - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidProductID)
		return
	}

	sessions, err := h.client.ListSessions(r.Context(), productID)
	if err != nil {
		h.logger.Error("GET /products/{id}/sessions - Failed to list sessions: product_id=%d, error=%v", productID, err)
		handlers.RespondUpstream(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromSessions(sessions))
}
