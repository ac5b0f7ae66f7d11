package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	usecases_port "listings-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ListingHandlers struct {
	getPublishedUC usecases_port.GetPublishedListingsUseCase
	getAllUC       usecases_port.GetAllListingsUseCase
	upsertUC       usecases_port.UpsertListingUseCase
	deleteUC       usecases_port.DeleteListingUseCase
}

func NewListingHandlers(getPublishedUC usecases_port.GetPublishedListingsUseCase,
	getAllUC usecases_port.GetAllListingsUseCase,
	upsertUC usecases_port.UpsertListingUseCase,
	deleteUC usecases_port.DeleteListingUseCase) *ListingHandlers {
	return &ListingHandlers{
		getPublishedUC: getPublishedUC,
		getAllUC:       getAllUC,
		upsertUC:       upsertUC,
		deleteUC:       deleteUC,
	}
}

func (h *ListingHandlers) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetPublishedListings serves the public pages: published scope, projected
// through the public mapper.
func (h *ListingHandlers) GetPublishedListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "GetPublishedListings"})
	handlerLogger.Debug("Processing request", nil)

	records := h.getPublishedUC.GetPublishedListings(r.Context())

	response := make([]PublicListingResponse, len(records))
	for i, pub := range domain.MapAllToPublic(records) {
		response[i] = toPublicListingResponse(pub)
	}

	handlerLogger.Info("Successfully listed published listings", port.Fields{"count": len(response)})
	RespondWithJSON(w, http.StatusOK, response)
}

// GetListing serves one public listing card by id or slug.
func (h *ListingHandlers) GetListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	key := chi.URLParam(r, "listingID")
	if key == "" {
		logger.Warn("Missing 'listingID' parameter", nil)
		WriteJSONError(w, http.StatusBadRequest, "GetListing: listing id is required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":    "GetListing",
		"listing_id": key,
	})
	handlerLogger.Debug("Processing request", nil)

	for _, rec := range h.getPublishedUC.GetPublishedListings(r.Context()) {
		if rec.ID == key || rec.Slug == key {
			handlerLogger.Info("Successfully found listing", nil)
			RespondWithJSON(w, http.StatusOK, toPublicListingResponse(domain.MapToPublic(rec)))
			return
		}
	}

	handlerLogger.Warn("Listing not found", nil)
	WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("GetListing: no published listing %q", key))
}

// GetAllListings serves the admin scope, drafts included.
func (h *ListingHandlers) GetAllListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "GetAllListings"})
	handlerLogger.Debug("Processing request", nil)

	records := h.getAllUC.GetAllListings(r.Context())

	response := make([]ListingResponse, len(records))
	for i, rec := range records {
		response[i] = toListingResponse(rec)
	}

	handlerLogger.Info("Successfully listed all listings", port.Fields{"count": len(response)})
	RespondWithJSON(w, http.StatusOK, response)
}

func (h *ListingHandlers) UpsertListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var payload domain.UpsertPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "UpsertListing: invalid JSON body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":    "UpsertListing",
		"listing_id": payload.ID,
	})
	handlerLogger.Debug("Processing request", nil)

	result, err := h.upsertUC.UpsertListing(r.Context(), payload)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			handlerLogger.Warn("Payload failed validation", port.Fields{"missing": validationErr.Missing})
			WriteJSONError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("UpsertListing: %v", err))
		return
	}

	handlerLogger.Info("Successfully upserted listing", port.Fields{
		"listing_id": result.Listing.ID,
		"storage":    result.Storage,
		"synced":     result.Synced,
	})
	RespondWithJSON(w, http.StatusOK, UpsertListingResponse{
		Listing: toListingResponse(result.Listing),
		Storage: result.Storage,
		Synced:  result.Synced,
	})
}

func (h *ListingHandlers) DeleteListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id := chi.URLParam(r, "listingID")
	if id == "" {
		logger.Warn("Missing 'listingID' parameter", nil)
		WriteJSONError(w, http.StatusBadRequest, "DeleteListing: listing id is required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":    "DeleteListing",
		"listing_id": id,
	})
	handlerLogger.Debug("Processing request", nil)

	deleted := h.deleteUC.DeleteListing(r.Context(), id)

	handlerLogger.Info("Delete finished", port.Fields{"deleted": deleted})
	RespondWithJSON(w, http.StatusOK, DeleteListingResponse{Deleted: deleted})
}
