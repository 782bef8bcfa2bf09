package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"inventory-service/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Tenant context metrics
	TenantContextMissingCounter prometheus.Counter
	InactiveTenantCounter       prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain operation counters
	CatalogOperationsCounter prometheus.CounterVec
	StockMutationsCounter    prometheus.CounterVec
	SalesRecordedCounter     prometheus.Counter

	// Per-tenant stock gauges
	StockRecordsPerTenantGauge prometheus.GaugeVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	TenantContextMissingCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_context_missing_total",
			Help: "Total number of requests without tenant context",
		},
	)

	InactiveTenantCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_inactive_tenant_requests_total",
			Help: "Total number of requests rejected for inactive tenants",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	CatalogOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"entity", "operation"},
	)

	StockMutationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stock_mutations_total",
			Help: "Total number of stock quantity mutations",
		},
		[]string{"operation"},
	)

	SalesRecordedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sales_recorded_total",
			Help: "Total number of sales recorded",
		},
	)

	StockRecordsPerTenantGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_stock_records_per_tenant",
			Help: "Number of inventory records per tenant",
		},
		[]string{"tenant_id"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordCatalogOperation increments the counter for catalog operations
func RecordCatalogOperation(entity, operation string) {
	CatalogOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordStockMutation increments the counter for stock mutations
func RecordStockMutation(operation string) {
	StockMutationsCounter.WithLabelValues(operation).Inc()
}

// UpdateStockRecordsPerTenant updates the per-tenant inventory record gauge
func UpdateStockRecordsPerTenant(tenantID uint, count int) {
	StockRecordsPerTenantGauge.WithLabelValues(strconv.FormatUint(uint64(tenantID), 10)).Set(float64(count))
}
