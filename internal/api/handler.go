package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"amenityfinder/internal/core"
	"amenityfinder/internal/domain/model"
)

const (
	minRadiusMeters     = 500
	maxRadiusMeters     = 2000
	defaultRadiusMeters = 1000
)

// PropertySource is the listing backend surface the handler needs.
type PropertySource interface {
	ListProperties(ctx context.Context) ([]model.PropertySummary, error)
	GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error)
}

// InsightsProvider computes amenity insights around a point.
type InsightsProvider interface {
	Insights(ctx context.Context, req model.InsightsRequest) (*model.InsightsResult, error)
}

// SearchHistory reads back persisted lookups. Optional; nil when no
// database is configured.
type SearchHistory interface {
	RecentSearches(ctx context.Context, limit int) ([]model.SearchRecord, error)
}

type Handler struct {
	properties PropertySource
	insights   InsightsProvider
	history    SearchHistory
	logger     *zap.Logger
}

func NewHandler(properties PropertySource, insights InsightsProvider, history SearchHistory, logger *zap.Logger) *Handler {
	return &Handler{
		properties: properties,
		insights:   insights,
		history:    history,
		logger:     logger,
	}
}

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.properties.ListProperties(r.Context())
	if err != nil {
		h.logger.Error("property list fetch failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "error fetching property list")
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	detail, err := h.properties.GetProperty(r.Context(), id)
	if err != nil {
		h.logger.Error("property detail fetch failed", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusBadGateway, "error fetching property details")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	req, err := parseInsightsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.insights.Insights(r.Context(), req)
	if err != nil {
		h.logger.Error("insights computation failed",
			zap.Float64("lat", req.Center.Lat),
			zap.Float64("lon", req.Center.Lon),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "error computing amenity insights")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotFound, "search history is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.history.RecentSearches(r.Context(), limit)
	if err != nil {
		h.logger.Error("search history query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "error reading search history")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Amenities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.SupportedAmenities())
}

func parseInsightsQuery(r *http.Request) (model.InsightsRequest, error) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return model.InsightsRequest{}, errors.New("lat must be a number in [-90, 90]")
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return model.InsightsRequest{}, errors.New("lon must be a number in [-180, 180]")
	}

	radius := float64(defaultRadiusMeters)
	if raw := q.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.InsightsRequest{}, errors.New("radius must be a number")
		}
	}
	if radius < minRadiusMeters {
		radius = minRadiusMeters
	}
	if radius > maxRadiusMeters {
		radius = maxRadiusMeters
	}

	var kinds []string
	for _, part := range strings.Split(q.Get("amenities"), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			kinds = append(kinds, part)
		}
	}
	if len(kinds) == 0 {
		return model.InsightsRequest{}, errors.New("at least one amenity type is required")
	}

	var propertyID int64
	if raw := q.Get("property_id"); raw != "" {
		propertyID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.InsightsRequest{}, errors.New("invalid property_id")
		}
	}

	return model.InsightsRequest{
		Center:       model.Coordinate{Lat: lat, Lon: lon},
		RadiusMeters: radius,
		AmenityTypes: kinds,
		PropertyID:   propertyID,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
