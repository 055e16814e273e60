package http

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"diabetesapi/ml"
	"diabetesapi/monitoring"
)

type Handlers struct {
	predictor *ml.Predictor
	metrics   *monitoring.MetricsCollector
	logger    *zap.Logger
}

func NewHandlers(predictor *ml.Predictor, metrics *monitoring.MetricsCollector, logger *zap.Logger) *Handlers {
	if metrics == nil {
		metrics = monitoring.NewMetricsCollector()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		predictor: predictor,
		metrics:   metrics,
		logger:    logger,
	}
}

func RegisterHandlers(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /predict", h.handlePredict)
	mux.HandleFunc("GET /metrics", h.handleMetrics)
}

type errorResponse struct {
	Error   string       `json:"error"`
	Details []paramError `json:"details,omitempty"`
}

func (h *Handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, map[string]string{"message": "Prediction"})
}

func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordRequest()

	features, errs := parseFeatures(r.URL.Query())
	if len(errs) > 0 {
		h.metrics.RecordValidationError()
		h.respond(w, r, http.StatusUnprocessableEntity, errorResponse{Error: "malformed request", Details: errs})
		return
	}

	start := time.Now()
	result, err := h.predictor.Predict(r.Context(), features)
	if err != nil {
		h.metrics.RecordInferenceError(time.Since(start))
		h.logger.Error("inference failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Any("features", features.Map()),
			zap.Error(err),
		)
		h.respond(w, r, http.StatusInternalServerError, errorResponse{Error: "inference failed"})
		return
	}
	h.metrics.RecordPrediction(result.ClassName, time.Since(start))

	h.respond(w, r, http.StatusOK, result)
}

func (h *Handlers) handleMetrics(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, h.metrics.Snapshot())
}

func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	if err := writeJSON(w, status, v); err != nil {
		h.logger.Error("failed to write response",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
}

// writeJSON encodes v before writing the header. A value that fails to
// encode is answered with a 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
		return err
	}
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}
