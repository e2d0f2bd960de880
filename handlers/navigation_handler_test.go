package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campus-nav-server/apperrors"
	"campus-nav-server/observability"
	"campus-nav-server/routing"
	"campus-nav-server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, g *routing.Graph) (*gin.Engine, *observability.Collector) {
	t.Helper()
	metrics := observability.NewCollector("campusnav")
	svc := services.NewNavigationService(g, zap.NewNop(), metrics, 1.4)
	return NewRouter(svc, RouterOptions{Logger: zap.NewNop(), Metrics: metrics}), metrics
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	rec := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestListLocations(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	rec := do(r, http.MethodGet, "/api/locations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Locations []routing.Node `json:"locations"`
		Count     int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 10, body.Count)
	assert.Equal(t, routing.MainGate, body.Locations[0].ID)
	assert.Equal(t, routing.Hostel, body.Locations[9].ID)
}

func TestGetLocation(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	rec := do(r, http.MethodGet, "/api/locations/LIBRARY", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"LIBRARY","label":"Library","x":30,"y":60}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/locations/GYM", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodeUnknownNode, decodeError(t, rec).Error.Code)
}

func TestGetNeighbors(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	rec := do(r, http.MethodGet, "/api/locations/WORKSHOP/neighbors", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ID        routing.NodeID          `json:"id"`
		Neighbors []services.NeighborView `json:"neighbors"`
		Count     int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, routing.Workshop, body.ID)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, routing.MechCivilDept, body.Neighbors[0].Node.ID)
	assert.Equal(t, 20, body.Neighbors[0].Weight)
}

func TestGetReachable(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	rec := do(r, http.MethodGet, "/api/locations/MAIN_GATE/reachable?within=80", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Locations []services.NeighborView `json:"locations"`
		Count     int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Count)
	assert.Equal(t, routing.Canteen, body.Locations[3].Node.ID)

	rec = do(r, http.MethodGet, "/api/locations/MAIN_GATE/reachable?within=-5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodGet, "/api/locations/GYM/reachable?within=5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMap(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	rec := do(r, http.MethodGet, "/api/map", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body services.MapView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Nodes, 10)
	assert.Equal(t, routing.Campus().Links(), body.Links)
}

func TestGetMap_WithoutEdges(t *testing.T) {
	g := routing.MustNewGraph(routing.Table{Nodes: []routing.NodeRecord{{ID: "A", Label: "A", X: 1, Y: 1}}})
	r, _ := newTestRouter(t, g)

	rec := do(r, http.MethodGet, "/api/map", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []interface{}{}, body["links"])
}

func TestGetNearest(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	rec := do(r, http.MethodGet, "/api/nearest?x=51&y=89", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body services.NearestView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, routing.MainGate, body.Node.ID)

	rec = do(r, http.MethodGet, "/api/nearest?x=51", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.CodeInvalidRequest, decodeError(t, rec).Error.Code)

	rec = do(r, http.MethodGet, "/api/nearest?x=abc&y=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodGet, "/api/nearest?x=NaN&y=10", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.CodeOutOfBounds, decodeError(t, rec).Error.Code)

	rec = do(r, http.MethodGet, "/api/nearest?x=150&y=1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.CodeOutOfBounds, decodeError(t, rec).Error.Code)
}

func TestNavigate(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	rec := do(r, http.MethodPost, "/api/navigate", `{"start":"MAIN_GATE","end":"HOSTEL"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body routing.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Reachable)
	assert.Equal(t, []routing.NodeID{routing.MainGate, routing.AdminBuilding, routing.Canteen, routing.Hostel}, body.Path)
	require.NotNil(t, body.TotalDistanceM)
	assert.Equal(t, 120, *body.TotalDistanceM)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), body.RequestID)
	require.Len(t, body.Steps, 4)
	assert.Equal(t, "Canteen", body.Steps[2].Node.Label)
	assert.Equal(t, 40, body.Steps[2].DistanceToNextM)
}

func TestNavigate_Errors(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"same endpoints", `{"start":"LIBRARY","end":"LIBRARY"}`, http.StatusBadRequest, apperrors.CodeSameEndpoints},
		{"unknown node", `{"start":"LIBRARY","end":"GYM"}`, http.StatusNotFound, apperrors.CodeUnknownNode},
		{"missing end", `{"start":"LIBRARY"}`, http.StatusBadRequest, apperrors.CodeInvalidRequest},
		{"malformed id", `{"start":"LIBRARY","end":"main gate"}`, http.StatusBadRequest, apperrors.CodeInvalidRequest},
		{"not json", `start=LIBRARY`, http.StatusBadRequest, apperrors.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/api/navigate", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestNavigate_Unreachable(t *testing.T) {
	tbl := routing.CampusTable()
	tbl.Nodes = append(tbl.Nodes, routing.NodeRecord{ID: "ANNEX", Label: "Annex", X: 95, Y: 95})
	r, _ := newTestRouter(t, routing.MustNewGraph(tbl))

	rec := do(r, http.MethodPost, "/api/navigate", `{"start":"MAIN_GATE","end":"ANNEX"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["reachable"])
	assert.Nil(t, body["totalDistanceM"])
	assert.Empty(t, body["path"])
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, routing.Campus())

	do(r, http.MethodPost, "/api/navigate", `{"start":"MAIN_GATE","end":"COMP_IT_DEPT"}`)
	rec := do(r, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `campusnav_route_queries_total{outcome="found"} 1`)
	assert.Contains(t, rec.Body.String(), `campusnav_http_requests_total{method="POST",route="/api/navigate",status="200"} 1`)
}

func TestRegisterValidators(t *testing.T) {
	assert.NotPanics(t, registerValidators)

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NoError(t, v.Var("MAIN_GATE", "nodeid"))
	assert.Error(t, v.Var("main gate", "nodeid"))
}

func TestRouterWithoutMetrics(t *testing.T) {
	svc := services.NewNavigationService(routing.Campus(), nil, nil, 0)
	r := NewRouter(svc, RouterOptions{AllowedOrigins: []string{"https://campus.example"}})

	rec := do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://campus.example")
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	assert.Equal(t, "https://campus.example", res.Header().Get("Access-Control-Allow-Origin"))
}
