package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PosMetrics содержит метрики доменных операций сервиса.
type PosMetrics struct {
	// Счётчики операций
	menusCreated    prometheus.Counter
	menusRejected   prometheus.Counter
	ordersCreated   prometheus.Counter
	ordersRejected  prometheus.Counter
	tablesSeated    prometheus.Counter
	tablesReleased  prometheus.Counter
	releasesBlocked prometheus.Counter

	// Переходы статусов заказов по целевому статусу
	statusTransitions *prometheus.CounterVec

	// Гистограмма времени выполнения операций по имени операции
	opDuration *prometheus.HistogramVec

	// Счётчики событий timeline/outbox
	timelineEvents prometheus.Counter
	outboxEvents   prometheus.Counter
}

// NewPosMetrics создаёт и регистрирует метрики в DefaultRegisterer.
func NewPosMetrics() *PosMetrics {
	return newPosMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newPosMetricsWithRegisterer(registerer prometheus.Registerer) *PosMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PosMetrics{
		menusCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_menus_created_total",
			Help: "Total number of menus created",
		}),
		menusRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_menus_rejected_total",
			Help: "Total number of menu creations rejected by validation",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_orders_created_total",
			Help: "Total number of orders placed",
		}),
		ordersRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_orders_rejected_total",
			Help: "Total number of order creations rejected by validation",
		}),
		tablesSeated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_tables_seated_total",
			Help: "Total number of tables marked occupied",
		}),
		tablesReleased: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_tables_released_total",
			Help: "Total number of tables marked empty",
		}),
		releasesBlocked: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_table_releases_blocked_total",
			Help: "Total number of table state changes blocked by an active order",
		}),
		statusTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "dinepos_order_status_transitions_total",
			Help: "Total number of order status transitions grouped by target status",
		}, []string{"status"}),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "dinepos_operation_duration_seconds",
			Help:    "Duration of domain operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"op"}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_timeline_events_total",
			Help: "Total number of order timeline events recorded",
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "dinepos_outbox_events_total",
			Help: "Total number of events enqueued to the transactional outbox",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordMenuCreated увеличивает счётчик созданных меню. Методы nil-безопасны:
// сервисы могут работать без метрик.
func (m *PosMetrics) RecordMenuCreated() {
	if m == nil {
		return
	}
	m.menusCreated.Inc()
}

// RecordMenuRejected увеличивает счётчик отклонённых меню.
func (m *PosMetrics) RecordMenuRejected() {
	if m == nil {
		return
	}
	m.menusRejected.Inc()
}

// RecordOrderCreated увеличивает счётчик размещённых заказов.
func (m *PosMetrics) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// RecordOrderRejected увеличивает счётчик отклонённых заказов.
func (m *PosMetrics) RecordOrderRejected() {
	if m == nil {
		return
	}
	m.ordersRejected.Inc()
}

// RecordStatusTransition фиксирует переход заказа в указанный статус.
func (m *PosMetrics) RecordStatusTransition(status string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(status).Inc()
}

// RecordTableSeated увеличивает счётчик занятых столов.
func (m *PosMetrics) RecordTableSeated() {
	if m == nil {
		return
	}
	m.tablesSeated.Inc()
}

// RecordTableReleased увеличивает счётчик освобождённых столов.
func (m *PosMetrics) RecordTableReleased() {
	if m == nil {
		return
	}
	m.tablesReleased.Inc()
}

// RecordReleaseBlocked фиксирует отказ в смене занятости из-за активного заказа.
func (m *PosMetrics) RecordReleaseBlocked() {
	if m == nil {
		return
	}
	m.releasesBlocked.Inc()
}

// RecordOpDuration записывает время выполнения операции.
func (m *PosMetrics) RecordOpDuration(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *PosMetrics) RecordTimelineEvent() {
	if m == nil {
		return
	}
	m.timelineEvents.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *PosMetrics) RecordOutboxEvent() {
	if m == nil {
		return
	}
	m.outboxEvents.Inc()
}
