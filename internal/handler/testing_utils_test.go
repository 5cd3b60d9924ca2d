package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BlueprintCost_Go/internal/cache"
	"github.com/osse101/BlueprintCost_Go/internal/costing"
	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/industry"
)

// MockCostingService mocks costing.Service
type MockCostingService struct {
	mock.Mock
}

func (m *MockCostingService) Calculate(ctx context.Context, params domain.RunParams) (*industry.Report, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*industry.Report), args.Error(1)
}

func (m *MockCostingService) GetBlueprint(ctx context.Context, params domain.RunParams, id domain.TypeID) (*costing.BlueprintCost, error) {
	args := m.Called(ctx, params, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costing.BlueprintCost), args.Error(1)
}

func (m *MockCostingService) WhereUsed(ctx context.Context, typeID domain.TypeID) ([]domain.TypeID, error) {
	args := m.Called(ctx, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TypeID), args.Error(1)
}

func (m *MockCostingService) GetEfficiency(ctx context.Context, id domain.TypeID) (domain.Efficiency, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Efficiency), args.Error(1)
}

func (m *MockCostingService) SetEfficiency(ctx context.Context, id domain.TypeID, eff domain.Efficiency) error {
	return m.Called(ctx, id, eff).Error(0)
}

func (m *MockCostingService) ClearEfficiency(ctx context.Context, id domain.TypeID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCostingService) ListEfficiency(ctx context.Context) ([]domain.EfficiencyOverride, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EfficiencyOverride), args.Error(1)
}

func (m *MockCostingService) Reload(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCostingService) Defaults() domain.RunParams {
	return m.Called().Get(0).(domain.RunParams)
}

func (m *MockCostingService) Ready() bool {
	return m.Called().Bool(0)
}

func (m *MockCostingService) Info() (costing.Info, bool) {
	args := m.Called()
	return args.Get(0).(costing.Info), args.Bool(1)
}

func (m *MockCostingService) CacheStats() cache.Stats {
	return m.Called().Get(0).(cache.Stats)
}

// serve routes one request through a chi router so URL params resolve
func serve(method, pattern, target string, body io.Reader, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// sampleReport evaluates a two blueprint chain where blueprint 2 needs blueprint 1's product
// and blueprint 3 needs a type without a price
func sampleReport(params domain.RunParams) *industry.Report {
	cat := &domain.Catalog{Blueprints: []domain.Blueprint{
		{ID: 1, Manufacturing: &domain.Activity{
			Time:      100,
			Products:  []domain.Quantity{{TypeID: 11, Quantity: 1}},
			Materials: []domain.Quantity{{TypeID: 34, Quantity: 10}},
		}},
		{ID: 2, Manufacturing: &domain.Activity{
			Time:      200,
			Products:  []domain.Quantity{{TypeID: 21, Quantity: 1}},
			Materials: []domain.Quantity{{TypeID: 11, Quantity: 2}},
		}},
		{ID: 3, Manufacturing: &domain.Activity{
			Time:      50,
			Products:  []domain.Quantity{{TypeID: 31, Quantity: 1}},
			Materials: []domain.Quantity{{TypeID: 99, Quantity: 1}},
		}},
	}}
	return industry.Evaluate(cat, nil, domain.PriceTable{34: 5}, params)
}
