package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/malanad-agro/agrostore-backend/api/controllers"
	"github.com/malanad-agro/agrostore-backend/api/middleware"
	authsvc "github.com/malanad-agro/agrostore-backend/internal/auth"
	dashboardsvc "github.com/malanad-agro/agrostore-backend/internal/dashboard"
	inventorysvc "github.com/malanad-agro/agrostore-backend/internal/inventory"
	ordersvc "github.com/malanad-agro/agrostore-backend/internal/orders"
	"github.com/malanad-agro/agrostore-backend/pkg/config"
	"github.com/malanad-agro/agrostore-backend/pkg/db"
	"github.com/malanad-agro/agrostore-backend/pkg/logger"
	"github.com/malanad-agro/agrostore-backend/pkg/metrics"
	"github.com/malanad-agro/agrostore-backend/pkg/redis"
)

// NewRouter assembles the full HTTP surface: public health and auth
// endpoints, and the session-gated v1 API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	authService authsvc.Service,
	inventoryService inventorysvc.Service,
	orderService ordersvc.Service,
	dashboardService dashboardsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, authService, logg))
			r.Get("/verify", controllers.AuthVerify(logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, authService, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/", controllers.InventoryCreate(inventoryService, logg))
			r.Get("/", controllers.InventoryList(inventoryService, logg))
			r.Get("/{inventoryId}", controllers.InventoryDetail(inventoryService, logg))
			r.Put("/{inventoryId}", controllers.InventoryUpdate(inventoryService, logg))
			r.Delete("/{inventoryId}", controllers.InventoryDelete(inventoryService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(orderService, logg))
			r.Get("/", controllers.OrderList(orderService, logg))
			r.Get("/pending-orders", controllers.OrderPending(orderService, logg))
			r.Get("/used-quantity/{inventoryId}", controllers.OrderUsedQuantity(orderService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(orderService, logg))
			r.Put("/{orderId}", controllers.OrderUpdate(orderService, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", controllers.DashboardSummary(dashboardService, logg))
			r.Get("/total-profit", controllers.DashboardTotalProfit(dashboardService, logg))
			r.Get("/available-inventories", controllers.DashboardAvailableInventories(dashboardService, logg))
			r.Get("/total-sold", controllers.DashboardTotalSold(dashboardService, logg))
			r.Get("/total-rented", controllers.DashboardTotalRented(dashboardService, logg))
			r.Get("/pending-rents", controllers.DashboardPendingRents(dashboardService, logg))
			r.Get("/total-pending-sales", controllers.DashboardPendingSales(dashboardService, logg))
		})
	})

	return r
}
