// Package metrics содержит счётчики Prometheus для проверок доступа и прогресса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "estrella"

// Metrics — набор счётчиков сервиса. Нулевой указатель безопасен: вызовы ничего не делают.
type Metrics struct {
	accessDecisions *prometheus.CounterVec
	completions     *prometheus.CounterVec
	daysUnlocked    *prometheus.CounterVec
}

// New регистрирует счётчики в reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		accessDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_decisions_total",
			Help:      "Access checks by outcome and deny reason.",
		}, []string{"result", "reason"}),
		completions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_completions_total",
			Help:      "Day completion attempts by outcome.",
		}, []string{"result"}),
		daysUnlocked: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_days_unlocked_total",
			Help:      "Days unlocked in the ledger by source.",
		}, []string{"source"}),
	}
}

// ObserveAccess учитывает результат проверки доступа.
func (m *Metrics) ObserveAccess(allowed bool, reason string) {
	if m == nil {
		return
	}
	result := "denied"
	if allowed {
		result = "allowed"
	}
	m.accessDecisions.WithLabelValues(result, reason).Inc()
}

// ObserveCompletion учитывает попытку отметить день пройденным.
func (m *Metrics) ObserveCompletion(result string) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(result).Inc()
}

// ObserveUnlock учитывает открытие дня в журнале прогресса.
func (m *Metrics) ObserveUnlock(source string) {
	if m == nil {
		return
	}
	m.daysUnlocked.WithLabelValues(source).Inc()
}
