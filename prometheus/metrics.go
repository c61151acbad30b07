package prometheus

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var LoginCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_login_total",
		Help: "Total number of login attempts",
	},
)

var RegisterCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_register_total",
		Help: "Total number of user registrations",
	},
)

var CreateMerchantCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_create_total",
		Help: "Total number of merchant creations",
	},
)

var GetMerchantCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_get_total",
		Help: "Total number of merchant retrievals",
	},
)

var ListMerchantsCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_list_total",
		Help: "Total number of merchant listing requests",
	},
)

var UpdateMerchantCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_update_total",
		Help: "Total number of merchant updates",
	},
)

var UpdateStatusCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_status_update_total",
		Help: "Total number of merchant status toggles",
	},
)

var DeleteMerchantCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_delete_total",
		Help: "Total number of merchant deletions",
	},
)

var ExportCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_export_total",
		Help: "Total number of merchant report exports",
	},
)

var CitiesCacheHitCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_cities_cache_hit_total",
		Help: "Total number of municipality list cache hits",
	},
)

var CitiesCacheMissCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_cities_cache_miss_total",
		Help: "Total number of municipality list cache misses",
	},
)

var RequestDurationHistogram = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "merchant_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(CreateMerchantCounter)
	prometheus.MustRegister(GetMerchantCounter)
	prometheus.MustRegister(ListMerchantsCounter)
	prometheus.MustRegister(UpdateMerchantCounter)
	prometheus.MustRegister(UpdateStatusCounter)
	prometheus.MustRegister(DeleteMerchantCounter)
	prometheus.MustRegister(ExportCounter)
	prometheus.MustRegister(CitiesCacheHitCounter)
	prometheus.MustRegister(CitiesCacheMissCounter)
	prometheus.MustRegister(RequestDurationHistogram)
}

func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware is an Echo middleware function that records HTTP request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			method := c.Request().Method
			path := c.Path()

			duration := time.Since(start).Seconds()
			RequestDurationHistogram.WithLabelValues(method, path).Observe(duration)

			return err
		}
	}
}
