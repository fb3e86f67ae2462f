package runtime

import (
	"time"

	"github.com/iov-one/swap"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects execution statistics. A nil *Metrics records nothing.
type Metrics struct {
	instructions *prometheus.CounterVec
	transactions *prometheus.CounterVec
	duration     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swap",
			Subsystem: "runtime",
			Name:      "instructions_total",
			Help:      "Processed instructions, including nested invocations, by program and result.",
		}, []string{"program", "result"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swap",
			Subsystem: "runtime",
			Name:      "transactions_total",
			Help:      "Executed transactions by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swap",
			Subsystem: "runtime",
			Name:      "transaction_duration_seconds",
			Help:      "Time spent executing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	for _, c := range []prometheus.Collector{m.instructions, m.transactions, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func (m *Metrics) observeInstruction(programID swap.Address, err error) {
	if m == nil {
		return
	}
	m.instructions.WithLabelValues(programID.String(), result(err)).Inc()
}

func (m *Metrics) observeTransaction(start time.Time, err error) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(result(err)).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}
