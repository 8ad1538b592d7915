package serving

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/kafka"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/logger"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/survival"
)

const serviceVersion = "1.0.0"

// HTTPHandler exposes the prediction pipeline over HTTP. Cache and producer
// are optional side channels; the handler works with either set to nil.
type HTTPHandler struct {
	pipeline  *survival.Pipeline
	validator *survival.Validator
	cache     *ResultCache
	producer  *kafka.Producer
	maxBody   int64
}

func NewHTTPHandler(pipeline *survival.Pipeline, validator *survival.Validator, maxBody int64) *HTTPHandler {
	return &HTTPHandler{
		pipeline:  pipeline,
		validator: validator,
		maxBody:   maxBody,
	}
}

// WithCache attaches a redis-backed result cache.
func (h *HTTPHandler) WithCache(cache *ResultCache) *HTTPHandler {
	h.cache = cache
	return h
}

// WithProducer attaches a prediction event publisher.
func (h *HTTPHandler) WithProducer(producer *kafka.Producer) *HTTPHandler {
	h.producer = producer
	return h
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/predict", h.handlePredict).Methods(http.MethodPost)
}

func (h *HTTPHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Breast Cancer Survival Prediction API",
		"version": serviceVersion,
		"endpoints": []string{
			"GET /health",
			"POST /predict",
		},
	})
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	meta := h.pipeline.Bundle().Metadata
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"model_loaded": true,
		"model_name":   meta.ModelName,
		"test_r2":      meta.TestR2,
		"test_rmse":    meta.TestRMSE,
	})
}

func (h *HTTPHandler) handlePredict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var input survival.PatientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.Log.WithError(err).Warn("invalid prediction payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.validator.Validate(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.cache != nil {
		if result, ok := h.cache.Get(r.Context(), record); ok {
			writeJSON(w, http.StatusOK, result)
			return
		}
	}

	result, err := h.pipeline.Predict(record)
	if err != nil {
		logger.Log.WithError(err).Error("prediction pipeline failed")
		http.Error(w, "prediction error", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		h.cache.Set(r.Context(), record, result)
	}
	h.publishPrediction(record, result)

	logger.Log.WithFields(map[string]interface{}{
		"risk_category": result.RiskCategory,
		"latency_ms":    time.Since(start).Milliseconds(),
	}).Info("Prediction completed")

	writeJSON(w, http.StatusOK, result)
}

// publishPrediction emits a prediction.completed event off the request
// path. Publish failures are logged and never affect the response.
func (h *HTTPHandler) publishPrediction(record survival.PatientRecord, result survival.PredictionResult) {
	if h.producer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data := map[string]interface{}{
			"tumour_stage":   record.TumourStage,
			"predicted_days": result.PredictedDays,
			"risk_category":  result.RiskCategory,
		}
		if err := h.producer.PublishEvent(ctx, "prediction.completed", "prediction-service", data); err != nil {
			logger.Log.WithError(err).Warn("failed to publish prediction event")
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
