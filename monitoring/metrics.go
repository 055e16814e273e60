package monitoring

import (
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

const (
	MetricRequests         = "predict.requests"
	MetricValidationErrors = "predict.validation_errors"
	MetricInferenceErrors  = "predict.inference_errors"
	MetricInferenceTime    = "predict.inference_time"
	predictionPrefix       = "predict.class."
)

// MetricsCollector 指标收集器
type MetricsCollector struct {
	registry         gometrics.Registry
	requests         gometrics.Counter
	validationErrors gometrics.Counter
	inferenceErrors  gometrics.Counter
	inferenceTime    gometrics.Timer

	startTime time.Time
}

// NewMetricsCollector 创建指标收集器
func NewMetricsCollector() *MetricsCollector {
	registry := gometrics.NewRegistry()
	return &MetricsCollector{
		registry:         registry,
		requests:         gometrics.GetOrRegisterCounter(MetricRequests, registry),
		validationErrors: gometrics.GetOrRegisterCounter(MetricValidationErrors, registry),
		inferenceErrors:  gometrics.GetOrRegisterCounter(MetricInferenceErrors, registry),
		inferenceTime:    gometrics.GetOrRegisterTimer(MetricInferenceTime, registry),
		startTime:        time.Now(),
	}
}

func (mc *MetricsCollector) RecordRequest() {
	mc.requests.Inc(1)
}

func (mc *MetricsCollector) RecordValidationError() {
	mc.validationErrors.Inc(1)
}

func (mc *MetricsCollector) RecordInferenceError(elapsed time.Duration) {
	mc.inferenceErrors.Inc(1)
	mc.inferenceTime.Update(elapsed)
}

// RecordPrediction 记录一次成功预测
func (mc *MetricsCollector) RecordPrediction(className string, elapsed time.Duration) {
	gometrics.GetOrRegisterCounter(predictionPrefix+className, mc.registry).Inc(1)
	mc.inferenceTime.Update(elapsed)
}

// Count returns the value of a registered counter, or 0.
func (mc *MetricsCollector) Count(name string) int64 {
	if c, ok := mc.registry.Get(name).(gometrics.Counter); ok {
		return c.Count()
	}
	return 0
}

// PredictionCount returns how many predictions resolved to className.
func (mc *MetricsCollector) PredictionCount(className string) int64 {
	return mc.Count(predictionPrefix + className)
}

// Snapshot 获取所有指标
func (mc *MetricsCollector) Snapshot() map[string]interface{} {
	out := map[string]interface{}{
		"uptime_seconds": time.Since(mc.startTime).Seconds(),
	}
	mc.registry.Each(func(name string, metric interface{}) {
		switch m := metric.(type) {
		case gometrics.Counter:
			out[name] = m.Count()
		case gometrics.Timer:
			s := m.Snapshot()
			ps := s.Percentiles([]float64{0.5, 0.95, 0.99})
			out[name] = map[string]interface{}{
				"count":   s.Count(),
				"mean_ms": s.Mean() / float64(time.Millisecond),
				"p50_ms":  ps[0] / float64(time.Millisecond),
				"p95_ms":  ps[1] / float64(time.Millisecond),
				"p99_ms":  ps[2] / float64(time.Millisecond),
				"max_ms":  float64(s.Max()) / float64(time.Millisecond),
			}
		}
	})
	return out
}
