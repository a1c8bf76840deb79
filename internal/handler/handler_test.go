package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"statutory-engine/internal/handler"
	"statutory-engine/internal/middleware"
	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"
	"statutory-engine/internal/rules"
	"statutory-engine/internal/service"
	"statutory-engine/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const testSecret = "handler-test-secret"

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Code       string          `json:"code"`
	Data       json.RawMessage `json:"data"`
	Meta       *struct {
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
	Error string `json:"error"`
}

type testServer struct {
	router      *gin.Engine
	india       *model.Country
	philippines *model.Country
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	countries := repository.NewCountryRepository(db)
	configs := repository.NewRegionConfigurationRepository(db)
	india := &model.Country{Code: "IN", Name: "India", TaxYearStartMonth: 4, IsActive: true}
	philippines := &model.Country{Code: "PH", Name: "Philippines", TaxYearStartMonth: 1, IsActive: true}
	require.NoError(t, countries.Create(ctx, india))
	require.NoError(t, countries.Create(ctx, philippines))
	require.NoError(t, configs.Create(ctx, &model.RegionConfiguration{
		CountryID: india.ID,
		Key:       model.RegionConfigKeyStatutoryRules,
		Value:     datatypes.JSON(`{"LABOUR_WELFARE_FUND": {"max_employee_percentage": "1"}}`),
		IsActive:  true,
	}))

	audits := repository.NewAuditRepository(db)
	components := service.NewStatutoryComponentService(
		repository.NewStatutoryComponentRepository(db),
		countries,
		configs,
		audits,
		repository.NewTransactionManager(db),
		rules.NewEngine(rules.DefaultRegistry(), zap.NewNop()),
	)

	auth := middleware.NewAuthenticator(testSecret)
	router := gin.New()
	api := router.Group("")
	handler.NewStatutoryComponentHandler(components, auth).RegisterRoutes(api)
	handler.NewCountryHandler(service.NewCountryService(countries, configs), auth).RegisterRoutes(api)
	handler.NewAuditHandler(service.NewAuditService(audits), auth).RegisterRoutes(api)
	handler.NewStatisticsHandler(service.NewStatisticsService(repository.NewStatisticsRepository(db), countries), auth).RegisterRoutes(api)

	return &testServer{router: router, india: india, philippines: philippines}
}

func token(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-42",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (s *testServer) do(t *testing.T, method, path, role string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, role))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) componentsPath(country *model.Country) string {
	return "/api/countries/" + country.ID.String() + "/statutory-components"
}

func providentFundBody() map[string]interface{} {
	return map[string]interface{}{
		"component_name":      "Employees' Provident Fund",
		"component_code":      "EPF",
		"component_type":      "PROVIDENT_FUND",
		"contribution_type":   "BOTH",
		"calculation_basis":   "BASIC_SALARY",
		"employee_percentage": "12",
		"employer_percentage": "12",
		"wage_ceiling":        "15000",
		"effective_from":      "2024-01-01",
		"is_mandatory":        true,
		"display_order":       1,
	}
}

func labourWelfareBody() map[string]interface{} {
	return map[string]interface{}{
		"component_name":      "Labour Welfare Fund",
		"component_code":      "LWF",
		"component_type":      "LABOUR_WELFARE_FUND",
		"contribution_type":   "EMPLOYEE",
		"calculation_basis":   "GROSS_SALARY",
		"employee_percentage": "0.2",
		"effective_from":      "2024-01-01",
		"effective_to":        "2024-12-31",
		"display_order":       5,
	}
}

func (s *testServer) create(t *testing.T, country *model.Country, body map[string]interface{}) service.StatutoryComponentResponse {
	t.Helper()
	w, env := s.do(t, http.MethodPost, s.componentsPath(country), middleware.RolePayrollAdmin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res service.StatutoryComponentResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res
}

func with(body map[string]interface{}, key string, value interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(body))
	for k, v := range body {
		out[k] = v
	}
	out[key] = value
	return out
}
