package serving

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/artifact"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/logger"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/survival"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// fixtureBundle predicts bias + 10*age over an identity scaler.
func fixtureBundle(bias float64) *artifact.Bundle {
	features := []string{
		"Age", "Gender",
		"Protein1", "Protein2", "Protein3", "Protein4",
		"Tumour_Stage", "Histology",
		"ER status", "PR status", "HER2 status",
		"Surgery_type",
	}
	coefficients := make([]float64, len(features))
	coefficients[0] = 10

	mean := make([]float64, len(features))
	scale := make([]float64, len(features))
	for i := range scale {
		scale[i] = 1
	}

	return &artifact.Bundle{
		Model: &artifact.LinearModel{
			ModelName: "test-regressor",
			Weights:   artifact.Weights{Bias: bias, Coefficients: coefficients},
		},
		Scaler: &artifact.StandardScaler{Mean: mean, Scale: scale},
		Encoders: map[string]*artifact.LabelEncoder{
			"Gender":       {Classes: []string{"FEMALE", "MALE"}},
			"Tumour_Stage": {Classes: []string{"I", "II", "III"}},
			"Histology":    {Classes: []string{"Infiltrating Ductal Carcinoma"}},
			"ER status":    {Classes: []string{"Negative", "Positive"}},
			"PR status":    {Classes: []string{"Negative", "Positive"}},
			"HER2 status":  {Classes: []string{"Negative", "Positive"}},
			"Surgery_type": {Classes: []string{"Lumpectomy", "Mastectomy"}},
		},
		Metadata: &artifact.Metadata{
			ModelName: "test-regressor",
			Features:  features,
			TestR2:    0.84,
			TestRMSE:  312.5,
		},
	}
}

func fixtureRouter(bundle *artifact.Bundle) *mux.Router {
	pipeline := survival.NewPipeline(bundle, survival.DefaultPolicy())
	handler := NewHTTPHandler(pipeline, survival.NewValidator(), 1024*1024)

	router := mux.NewRouter()
	handler.Register(router)
	return router
}

const validBody = `{
	"Age": 68, "Gender": "FEMALE",
	"Protein1": -0.5, "Protein2": 0.8, "Protein3": 0.2, "Protein4": -0.3,
	"Tumour_Stage": "III", "Histology": "Infiltrating Ductal Carcinoma",
	"ER status": "Negative", "PR status": "Negative", "HER2 status": "Positive",
	"Surgery_type": "Mastectomy"
}`

func TestPredictEndpoint(t *testing.T) {
	router := fixtureRouter(fixtureBundle(-200))

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var result survival.PredictionResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	// -200 + 10*68 = 480 days
	if result.PredictedDays != 480 {
		t.Fatalf("expected 480 days, got %v", result.PredictedDays)
	}
	if result.RiskCategory != "MODERATE RISK" {
		t.Fatalf("expected MODERATE RISK, got %s", result.RiskCategory)
	}
	if result.Recommendation == "" {
		t.Fatal("expected a recommendation")
	}
}

func TestPredictEndpointRejectsInvalidField(t *testing.T) {
	router := fixtureRouter(fixtureBundle(0))

	body := strings.Replace(validBody, `"Age": 68`, `"Age": 17`, 1)
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Age") {
		t.Fatalf("expected error naming the Age field, got %s", rr.Body.String())
	}
}

func TestPredictEndpointRejectsMalformedBody(t *testing.T) {
	router := fixtureRouter(fixtureBundle(0))

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPredictEndpointHidesPipelineInternals(t *testing.T) {
	bundle := fixtureBundle(0)
	// break the scaler so the pipeline fails after validation
	bundle.Scaler = &artifact.StandardScaler{Mean: []float64{0}, Scale: []float64{1}}
	router := fixtureRouter(bundle)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(validBody))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "scaler") {
		t.Fatalf("response must not leak artifact details: %s", rr.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := fixtureRouter(fixtureBundle(0))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if payload["model_loaded"] != true {
		t.Fatal("expected model_loaded true")
	}
	if payload["model_name"] != "test-regressor" {
		t.Fatalf("unexpected model_name %v", payload["model_name"])
	}
	if payload["test_r2"] != 0.84 {
		t.Fatalf("unexpected test_r2 %v", payload["test_r2"])
	}
}

func TestRootEndpoint(t *testing.T) {
	router := fixtureRouter(fixtureBundle(0))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Breast Cancer Survival Prediction API") {
		t.Fatalf("unexpected root payload: %s", rr.Body.String())
	}
}
