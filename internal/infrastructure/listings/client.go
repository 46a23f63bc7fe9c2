// Package listings wraps the property listing backend's read API.
package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"amenityfinder/internal/core"
	"amenityfinder/internal/domain/model"
)

const listCacheKey = "all-properties"

type Client struct {
	baseURL       string
	publicBaseURL string
	client        *http.Client

	listCache   *core.Cache[[]model.PropertySummary]
	detailCache *core.Cache[*model.PropertyDetail]
}

func NewClient(baseURL, publicBaseURL string, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		client:        &http.Client{Timeout: 15 * time.Second},
		listCache:     core.NewCache[[]model.PropertySummary](cacheTTL),
		detailCache:   core.NewCache[*model.PropertyDetail](cacheTTL),
	}
}

// propertyPayload is the backend's detail shape. Location is a single
// "lat,lon" string.
type propertyPayload struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Thumbnail     string `json:"thumbnail"`
	LocationValue string `json:"location_value"`
}

func (c *Client) ListProperties(ctx context.Context) ([]model.PropertySummary, error) {
	if cached, ok := c.listCache.Get(listCacheKey); ok {
		return cached, nil
	}

	var payload []propertyPayload
	if err := c.getJSON(ctx, c.baseURL+"/properties/all-properties/", &payload); err != nil {
		return nil, fmt.Errorf("error fetching property list: %w", err)
	}

	properties := make([]model.PropertySummary, 0, len(payload))
	for _, p := range payload {
		properties = append(properties, model.PropertySummary{
			ID:    p.ID,
			Title: p.Title,
			Slug:  p.Slug,
		})
	}

	c.listCache.Set(listCacheKey, properties)
	return properties, nil
}

func (c *Client) GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error) {
	key := strconv.FormatInt(id, 10)
	if cached, ok := c.detailCache.Get(key); ok {
		return cached, nil
	}

	var payload propertyPayload
	url := fmt.Sprintf("%s/properties/properties/%d", c.baseURL, id)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("error fetching property details for ID %d: %w", id, err)
	}

	detail := &model.PropertyDetail{
		ID:         payload.ID,
		Title:      payload.Title,
		Slug:       payload.Slug,
		Thumbnail:  payload.Thumbnail,
		Location:   parseLocation(payload.LocationValue),
		ListingURL: fmt.Sprintf("%s/properties/%s-%d", c.publicBaseURL, payload.Slug, payload.ID),
	}

	c.detailCache.Set(key, detail)
	return detail, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// parseLocation parses the backend's "lat,lon" string, falling back to the
// default location when the value is missing or malformed.
func parseLocation(value string) model.Coordinate {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return model.DefaultLocation
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return model.DefaultLocation
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return model.DefaultLocation
	}

	return model.Coordinate{Lat: lat, Lon: lon}
}
