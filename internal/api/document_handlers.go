package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"flightbay/techlog/internal/auth"
	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/models/dtos"
)

// CreateDocumentHandler handles POST /api/v1/documents
//
// Registers metadata for an already-uploaded file key.
func (h *Handlers) CreateDocumentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.DocumentCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		doc, err := h.deps.Services.Document.CreateDocument(r.Context(), claims.OrganizationID(), claims.UserID(), &req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Document registered", doc, http.StatusCreated)
	}
}

// ListDocumentsHandler handles GET /api/v1/documents
func (h *Handlers) ListDocumentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		docs, err := h.deps.Services.Document.ListDocuments(r.Context(), claims.OrganizationID(), r.URL.Query().Get("category"))
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "", docs)
	}
}

// DeleteDocumentHandler handles DELETE /api/v1/documents/{id}
func (h *Handlers) DeleteDocumentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := h.deps.Services.Document.DeleteDocument(r.Context(), claims.OrganizationID(), chi.URLParam(r, "id")); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Document deleted", nil)
	}
}

// DocumentLinkHandler handles POST /api/v1/documents/{id}/link
//
// Issues a short-lived single-use download link.
func (h *Handlers) DocumentLinkHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		link, err := h.deps.Services.Document.GenerateDownloadLink(
			r.Context(),
			claims.OrganizationID(),
			claims.UserID(),
			chi.URLParam(r, "id"),
			10*time.Minute,
		)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Download link generated", link)
	}
}
