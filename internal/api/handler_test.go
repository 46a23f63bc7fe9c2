package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"amenityfinder/internal/domain/model"
)

type fakeProperties struct {
	list    []model.PropertySummary
	detail  *model.PropertyDetail
	listErr error
}

func (f *fakeProperties) ListProperties(ctx context.Context) ([]model.PropertySummary, error) {
	return f.list, f.listErr
}

func (f *fakeProperties) GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error) {
	if f.detail == nil || f.detail.ID != id {
		return nil, errors.New("not found")
	}
	return f.detail, nil
}

type fakeInsights struct {
	lastReq model.InsightsRequest
	result  *model.InsightsResult
	err     error
}

func (f *fakeInsights) Insights(ctx context.Context, req model.InsightsRequest) (*model.InsightsResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func newTestRouter(t *testing.T, properties *fakeProperties, insights *fakeInsights) http.Handler {
	t.Helper()
	h := NewHandler(properties, insights, nil, zap.NewNop())
	static := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte("<html></html>")},
	}
	return NewRouter(h, static)
}

func defaultInsightsResult() *model.InsightsResult {
	overlay := model.NewFeatureCollection()
	return &model.InsightsResult{
		Center:       model.Coordinate{Lat: 27.7172, Lon: 85.3240},
		RadiusMeters: 1000,
		Overlay:      overlay,
		Table:        []model.FacilityRow{},
		Counts:       map[string]int{},
	}
}

func TestListPropertiesEndpoint(t *testing.T) {
	properties := &fakeProperties{
		list: []model.PropertySummary{{ID: 1, Title: "Sunny Villa", Slug: "sunny-villa"}},
	}
	router := newTestRouter(t, properties, &fakeInsights{result: defaultInsightsResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []model.PropertySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, properties.list, got)
}

func TestListPropertiesBackendDown(t *testing.T) {
	properties := &fakeProperties{listErr: errors.New("connection refused")}
	router := newTestRouter(t, properties, &fakeInsights{result: defaultInsightsResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "error fetching property list")
}

func TestGetPropertyEndpoint(t *testing.T) {
	properties := &fakeProperties{
		detail: &model.PropertyDetail{
			ID:         12,
			Title:      "Sunny Villa",
			Slug:       "sunny-villa",
			Location:   model.Coordinate{Lat: 27.70, Lon: 85.33},
			ListingURL: "https://lalpurjanepal.com.np/properties/sunny-villa-12",
		},
	}
	router := newTestRouter(t, properties, &fakeInsights{result: defaultInsightsResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/12", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got model.PropertyDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, *properties.detail, got)
}

func TestGetPropertyInvalidID(t *testing.T) {
	router := newTestRouter(t, &fakeProperties{}, &fakeInsights{result: defaultInsightsResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsEndpoint(t *testing.T) {
	insights := &fakeInsights{result: defaultInsightsResult()}
	router := newTestRouter(t, &fakeProperties{}, insights)

	rec := httptest.NewRecorder()
	url := "/api/insights?lat=27.7172&lon=85.3240&radius=1200&amenities=hospital,school&property_id=7"
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Coordinate{Lat: 27.7172, Lon: 85.3240}, insights.lastReq.Center)
	assert.Equal(t, 1200.0, insights.lastReq.RadiusMeters)
	assert.Equal(t, []string{"hospital", "school"}, insights.lastReq.AmenityTypes)
	assert.Equal(t, int64(7), insights.lastReq.PropertyID)
}

func TestInsightsRadiusClamped(t *testing.T) {
	insights := &fakeInsights{result: defaultInsightsResult()}
	router := newTestRouter(t, &fakeProperties{}, insights)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights?lat=27.7&lon=85.3&radius=9999&amenities=school", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2000.0, insights.lastReq.RadiusMeters)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/insights?lat=27.7&lon=85.3&radius=10&amenities=school", nil))
	assert.Equal(t, 500.0, insights.lastReq.RadiusMeters)
}

func TestInsightsValidation(t *testing.T) {
	router := newTestRouter(t, &fakeProperties{}, &fakeInsights{result: defaultInsightsResult()})

	cases := []struct {
		name string
		url  string
	}{
		{"missing lat", "/api/insights?lon=85.3&amenities=school"},
		{"lat out of range", "/api/insights?lat=95&lon=85.3&amenities=school"},
		{"lon out of range", "/api/insights?lat=27.7&lon=190&amenities=school"},
		{"no amenities", "/api/insights?lat=27.7&lon=85.3"},
		{"bad radius", "/api/insights?lat=27.7&lon=85.3&radius=wide&amenities=school"},
		{"bad property id", "/api/insights?lat=27.7&lon=85.3&amenities=school&property_id=x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestInsightsUpstreamFailure(t *testing.T) {
	insights := &fakeInsights{err: errors.New("overpass timeout")}
	router := newTestRouter(t, &fakeProperties{}, insights)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights?lat=27.7&lon=85.3&amenities=school", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "error computing amenity insights")
}

func TestSearchesNotConfigured(t *testing.T) {
	router := newTestRouter(t, &fakeProperties{}, &fakeInsights{result: defaultInsightsResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/searches", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, &fakeProperties{}, &fakeInsights{result: defaultInsightsResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAmenitiesEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeProperties{}, &fakeInsights{result: defaultInsightsResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/amenities", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var kinds []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kinds))
	assert.Contains(t, kinds, "hospital")
	assert.Contains(t, kinds, "bus_station")
}

func TestStaticIndexServed(t *testing.T) {
	router := newTestRouter(t, &fakeProperties{}, &fakeInsights{result: defaultInsightsResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html>")
}
