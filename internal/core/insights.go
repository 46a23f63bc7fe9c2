package core

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"amenityfinder/internal/domain/model"
)

// OSMRepository supplies OpenStreetMap data around a point.
type OSMRepository interface {
	FetchAmenities(ctx context.Context, center model.Coordinate, radiusMeters float64, kinds []string) ([]model.Amenity, error)
	FetchWalkNetwork(ctx context.Context, center model.Coordinate, radiusMeters float64) ([]model.Way, error)
}

// SearchRecorder persists completed lookups.
type SearchRecorder interface {
	SaveSearch(ctx context.Context, rec model.SearchRecord) error
}

// markerColors mirrors the map legend. Unknown kinds render blue.
var markerColors = map[string]string{
	"hospital":    "red",
	"school":      "blue",
	"pharmacy":    "green",
	"atm":         "orange",
	"restaurant":  "purple",
	"hotel":       "darkblue",
	"college":     "cadetblue",
	"police":      "darkred",
	"gym":         "lightgreen",
	"bus_station": "darkgreen",
	"supermarket": "lightblue",
}

func MarkerColor(kind string) string {
	if color, ok := markerColors[kind]; ok {
		return color
	}
	return "blue"
}

// SupportedAmenities lists the kinds the front end offers, in menu order.
func SupportedAmenities() []string {
	return []string{
		"hospital", "school", "pharmacy", "atm", "restaurant", "hotel",
		"college", "police", "gym", "bus_station", "supermarket",
	}
}

type graphBundle struct {
	graph *Graph
	index *NodeIndex
}

// InsightService fetches amenities and the walking network around a point,
// routes from the point to every amenity, and assembles map overlays plus
// the results table.
type InsightService struct {
	osm         OSMRepository
	recorder    SearchRecorder
	saveHistory bool
	logger      *zap.Logger

	amenityCache *Cache[[]model.Amenity]
	graphCache   *Cache[*graphBundle]
}

func NewInsightService(osm OSMRepository, recorder SearchRecorder, saveHistory bool, cacheTTL time.Duration, logger *zap.Logger) *InsightService {
	return &InsightService{
		osm:          osm,
		recorder:     recorder,
		saveHistory:  saveHistory,
		logger:       logger,
		amenityCache: NewCache[[]model.Amenity](cacheTTL),
		graphCache:   NewCache[*graphBundle](cacheTTL),
	}
}

func (s *InsightService) Insights(ctx context.Context, req model.InsightsRequest) (*model.InsightsResult, error) {
	amenities, err := s.amenities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch amenities: %w", err)
	}

	bundle, err := s.walkGraph(ctx, req.Center, req.RadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch walking network: %w", err)
	}

	origin, originOK := bundle.index.Nearest(req.Center)
	if !originOK {
		s.logger.Warn("no walkable node near origin",
			zap.Float64("lat", req.Center.Lat),
			zap.Float64("lon", req.Center.Lon))
	}

	counts := make(map[string]int)
	for _, a := range amenities {
		counts[a.Kind]++
	}

	overlay := model.NewFeatureCollection()
	overlay.Features = append(overlay.Features, model.NewPointFeature(req.Center, map[string]any{
		"role":      "property",
		"popup":     "Property Location",
		"draggable": true,
	}))

	rows := make([]model.FacilityRow, 0, len(amenities))
	for _, amenity := range amenities {
		route := s.routeTo(bundle, origin, originOK, amenity.Location)

		color := MarkerColor(amenity.Kind)
		// GeoJSON requires at least two positions per LineString; a route
		// that starts and ends on the same node draws nothing.
		if route.Found && len(route.Points) > 1 {
			overlay.Features = append(overlay.Features, model.NewLineStringFeature(route.Points, map[string]any{
				"role":             "route",
				"kind":             amenity.Kind,
				"color":            color,
				"weight":           2.5,
				"duration_seconds": route.DurationSeconds,
			}))
		}

		name := amenity.Name
		if name == "" {
			name = "Unnamed"
		}
		overlay.Features = append(overlay.Features, model.NewPointFeature(amenity.Location, map[string]any{
			"role":  "amenity",
			"kind":  amenity.Kind,
			"color": color,
			"popup": capitalize(amenity.Kind),
			"name":  name,
		}))

		row := model.FacilityRow{
			Amenity:       capitalize(amenity.Kind),
			Name:          name,
			CountInRadius: counts[amenity.Kind],
		}
		if route.Found {
			length := route.LengthMeters
			duration := route.DurationSeconds
			row.DistanceMeters = &length
			row.WalkTimeSeconds = &duration
		}
		rows = append(rows, row)
	}

	result := &model.InsightsResult{
		Center:       req.Center,
		RadiusMeters: req.RadiusMeters,
		Overlay:      overlay,
		Table:        rows,
		Counts:       counts,
	}

	s.record(ctx, req, counts)
	return result, nil
}

func (s *InsightService) amenities(ctx context.Context, req model.InsightsRequest) ([]model.Amenity, error) {
	kinds := append([]string(nil), req.AmenityTypes...)
	sort.Strings(kinds)

	key := PointKey(req.Center.Lat, req.Center.Lon, req.RadiusMeters, kinds...)
	if cached, ok := s.amenityCache.Get(key); ok {
		return cached, nil
	}

	amenities, err := s.osm.FetchAmenities(ctx, req.Center, req.RadiusMeters, kinds)
	if err != nil {
		return nil, err
	}
	sort.Slice(amenities, func(i, j int) bool {
		if amenities[i].Kind != amenities[j].Kind {
			return amenities[i].Kind < amenities[j].Kind
		}
		return amenities[i].ID < amenities[j].ID
	})

	s.amenityCache.Set(key, amenities)
	return amenities, nil
}

func (s *InsightService) walkGraph(ctx context.Context, center model.Coordinate, radius float64) (*graphBundle, error) {
	key := PointKey(center.Lat, center.Lon, radius, "walk")
	if cached, ok := s.graphCache.Get(key); ok {
		return cached, nil
	}

	ways, err := s.osm.FetchWalkNetwork(ctx, center, radius)
	if err != nil {
		return nil, err
	}

	graph := BuildWalkGraph(ways)
	bundle := &graphBundle{graph: graph, index: NewNodeIndex(graph)}
	s.logger.Debug("walk graph built",
		zap.Int("ways", len(ways)),
		zap.Int("nodes", graph.NodeCount()))

	s.graphCache.Set(key, bundle)
	return bundle, nil
}

func (s *InsightService) routeTo(bundle *graphBundle, origin int64, originOK bool, target model.Coordinate) Route {
	if !originOK {
		return Route{LengthMeters: math.Inf(1), DurationSeconds: math.Inf(1)}
	}
	dest, ok := bundle.index.Nearest(target)
	if !ok {
		return Route{LengthMeters: math.Inf(1), DurationSeconds: math.Inf(1)}
	}
	return ShortestPath(bundle.graph, origin, dest)
}

func (s *InsightService) record(ctx context.Context, req model.InsightsRequest, counts map[string]int) {
	if !s.saveHistory || s.recorder == nil {
		return
	}

	payload, err := json.Marshal(counts)
	if err != nil {
		s.logger.Warn("failed to marshal amenity counts", zap.Error(err))
		return
	}

	rec := model.SearchRecord{
		PropertyID:   req.PropertyID,
		Lat:          req.Center.Lat,
		Lon:          req.Center.Lon,
		RadiusMeters: req.RadiusMeters,
		Counts:       payload,
	}
	if err := s.recorder.SaveSearch(ctx, rec); err != nil {
		s.logger.Warn("failed to save search history", zap.Error(err))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
