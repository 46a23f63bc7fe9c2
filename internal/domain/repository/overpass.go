package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/serjvanilla/go-overpass"

	"amenityfinder/internal/core"
	"amenityfinder/internal/domain/model"
)

type OverpassRepository struct {
	client  *overpass.Client
	timeout time.Duration
}

func NewOverpassRepository(endpoint string, timeout time.Duration) *OverpassRepository {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassRepository{
		client:  &client,
		timeout: timeout,
	}
}

// FetchAmenities queries nodes and ways tagged with any of the given
// amenity kinds around a point. Way amenities come back as the centroid of
// their member nodes.
func (r *OverpassRepository) FetchAmenities(ctx context.Context, center model.Coordinate, radiusMeters float64, kinds []string) ([]model.Amenity, error) {
	if len(kinds) == 0 {
		return nil, nil
	}

	filter := amenityFilter(kinds)
	around := fmt.Sprintf("around:%.0f,%.6f,%.6f", radiusMeters, center.Lat, center.Lon)
	query := fmt.Sprintf(`
		[out:json];
		(
			node["amenity"~"%s"](%s);
			way["amenity"~"%s"](%s);
		);
		out body;
		>;
		out skel qt;
	`,
		filter, around,
		filter, around)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute amenity query: %w", err)
	}

	return convertToAmenities(result), nil
}

// FetchWalkNetwork queries the foot-traversable street segments around a
// point. The tag filter approximates a pedestrian network: cars-only roads
// and explicit foot=no ways are excluded.
func (r *OverpassRepository) FetchWalkNetwork(ctx context.Context, center model.Coordinate, radiusMeters float64) ([]model.Way, error) {
	around := fmt.Sprintf("around:%.0f,%.6f,%.6f", radiusMeters, center.Lat, center.Lon)
	query := fmt.Sprintf(`
		[out:json];
		(
			way["highway"]["highway"!~"motorway|motorway_link|trunk|trunk_link|raceway"]["foot"!~"no"]["area"!~"yes"](%s);
		);
		out body;
		>;
		out skel qt;
	`, around)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute walk network query: %w", err)
	}

	return convertToWays(result), nil
}

func (r *OverpassRepository) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &result, nil
}

func convertToAmenities(result *overpass.Result) []model.Amenity {
	var amenities []model.Amenity

	for _, node := range result.Nodes {
		kind := node.Tags["amenity"]
		if kind == "" {
			continue
		}
		amenities = append(amenities, model.Amenity{
			ID:       node.ID,
			Type:     string(overpass.ElementTypeNode),
			Kind:     kind,
			Name:     node.Tags["name"],
			Location: model.Coordinate{Lat: node.Lat, Lon: node.Lon},
			Tags:     node.Tags,
		})
	}

	for _, way := range result.Ways {
		kind := way.Tags["amenity"]
		if kind == "" || len(way.Nodes) == 0 {
			continue
		}
		nodes := make([]model.GraphNode, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			nodes = append(nodes, model.GraphNode{ID: node.ID, Lat: node.Lat, Lon: node.Lon})
		}
		amenities = append(amenities, model.Amenity{
			ID:       way.ID,
			Type:     string(overpass.ElementTypeWay),
			Kind:     kind,
			Name:     way.Tags["name"],
			Location: core.Centroid(nodes),
			Tags:     way.Tags,
		})
	}

	return amenities
}

func convertToWays(result *overpass.Result) []model.Way {
	var ways []model.Way

	for _, way := range result.Ways {
		if way.Tags["highway"] == "" {
			continue
		}
		nodes := make([]model.GraphNode, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			nodes = append(nodes, model.GraphNode{
				ID:  node.ID,
				Lat: node.Lat,
				Lon: node.Lon,
			})
		}
		ways = append(ways, model.Way{
			ID:    way.ID,
			Tags:  way.Tags,
			Nodes: nodes,
		})
	}

	return ways
}

// amenityFilter builds an anchored Overpass regex matching exactly the
// requested kinds.
func amenityFilter(kinds []string) string {
	return fmt.Sprintf("^(%s)$", strings.Join(kinds, "|"))
}
