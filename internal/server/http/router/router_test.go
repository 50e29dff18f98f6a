package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
	"github.com/ledgerkit/pointsvc/internal/server/http/dto"
	testhelpers "github.com/ledgerkit/pointsvc/internal/test"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.PointFacadeStub{
		BalanceFn: func(ctx context.Context, userID int64) (*model.UserPoint, error) {
			return &model.UserPoint{UserID: userID, Balance: 5_000, UpdatedAt: time.Now()}, nil
		},
	}
	return Setup(facade, testhelpers.HealthCheckerStub{}, logger)
}

func TestRoutes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{method: http.MethodGet, path: "/ping", status: http.StatusOK},
		{method: http.MethodGet, path: "/point/1", status: http.StatusOK},
		{method: http.MethodGet, path: "/point/1/histories", status: http.StatusOK},
		{method: http.MethodPatch, path: "/point/1/charge", body: `{"amount":10000}`, status: http.StatusOK},
		{method: http.MethodPatch, path: "/point/1/use", body: `{"amount":1000}`, status: http.StatusOK},
		{method: http.MethodGet, path: "/unknown", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestBalanceRouteReturnsJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/point/9", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body dto.PointResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.ID != 9 || body.Point != 5_000 {
		t.Fatalf("unexpected response: %+v", body)
	}
}
