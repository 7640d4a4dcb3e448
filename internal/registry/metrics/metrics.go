package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module. Tracks
// registration counts and resolver critical path durations.
type Metrics struct {
	UsersRegistered      prometheus.Counter
	AssetTypesRegistered prometheus.Counter
	AssetsRegistered     prometheus.Counter
	Resolutions          *prometheus.CounterVec
	ResolveDuration      prometheus.Histogram
	RegisterDuration     prometheus.Histogram
}

// New creates a Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pidreg_users_registered_total",
			Help: "Total number of users registered (new rows only)",
		}),
		AssetTypesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pidreg_asset_types_registered_total",
			Help: "Total number of asset types registered (new rows only)",
		}),
		AssetsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pidreg_assets_registered_total",
			Help: "Total number of assets registered",
		}),
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pidreg_resolutions_total",
			Help: "Total identifier resolutions by direction and outcome",
		}, []string{"direction", "outcome"}),
		ResolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pidreg_resolve_duration_seconds",
			Help:    "Duration of identifier resolution operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pidreg_register_asset_duration_seconds",
			Help:    "Duration of asset registration operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementUsersRegistered records a newly created user row.
func (m *Metrics) IncrementUsersRegistered() {
	m.UsersRegistered.Inc()
}

// IncrementAssetTypesRegistered records a newly created asset type row.
func (m *Metrics) IncrementAssetTypesRegistered() {
	m.AssetTypesRegistered.Inc()
}

// IncrementAssetsRegistered records a newly created asset row.
func (m *Metrics) IncrementAssetsRegistered() {
	m.AssetsRegistered.Inc()
}

// IncrementResolution records one resolver query by direction ("global" or
// "local") and outcome ("hit" or "miss").
func (m *Metrics) IncrementResolution(direction, outcome string) {
	m.Resolutions.WithLabelValues(direction, outcome).Inc()
}

// ObserveResolve records the duration of a resolution operation. Call with
// time.Now() at the start of the operation.
func (m *Metrics) ObserveResolve(start time.Time) {
	m.ResolveDuration.Observe(time.Since(start).Seconds())
}

// ObserveRegisterAsset records the duration of an asset registration.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegisterAsset(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
