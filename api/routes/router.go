package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neokart/neokart-backend/api/controllers"
	"github.com/neokart/neokart-backend/api/middleware"
	"github.com/neokart/neokart-backend/internal/address"
	"github.com/neokart/neokart-backend/internal/auth"
	"github.com/neokart/neokart-backend/internal/cart"
	"github.com/neokart/neokart-backend/internal/catalog"
	checkoutsvc "github.com/neokart/neokart-backend/internal/checkout"
	"github.com/neokart/neokart-backend/internal/orders"
	"github.com/neokart/neokart-backend/internal/reviews"
	internalsession "github.com/neokart/neokart-backend/internal/session"
	"github.com/neokart/neokart-backend/internal/wishlist"
	"github.com/neokart/neokart-backend/pkg/auth/session"
	"github.com/neokart/neokart-backend/pkg/config"
	"github.com/neokart/neokart-backend/pkg/logger"
	"github.com/neokart/neokart-backend/pkg/metrics"
	"github.com/neokart/neokart-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DBPinger    controllers.Pinger
	RedisClient *redis.Client

	SessionChecker session.AccessSessionChecker

	AuthService     auth.Service
	CatalogService  catalog.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
	WishlistService wishlist.Service
	ReviewsService  reviews.Service
	AddressService  address.Service
	SessionService  internalsession.Service

	MetricsHandler http.Handler
}

// NewRouter assembles the full route tree.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    deps.RedisClient,
		}, logg))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		throttle := middleware.AuthRateLimit("auth", cfg.RateLimit, deps.RedisClient, logg)
		r.With(throttle).Post("/register", controllers.Register(deps.AuthService, logg))
		r.With(throttle).Post("/login", controllers.Login(deps.AuthService, logg))
		r.Post("/refresh", controllers.Refresh(deps.AuthService, logg))
		r.Post("/logout", controllers.Logout(deps.AuthService, logg))
	})

	// storefront surface: browseable without an account, keyed by the
	// visitor cookie for theme, coupon and browse history
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.VisitorSession(cfg.Session, logg))

		r.Get("/home", controllers.Home(deps.CatalogService, logg))
		r.Get("/categories", controllers.Categories(deps.CatalogService, logg))
		r.Get("/products", controllers.ProductList(deps.CatalogService, logg))
		r.Get("/products/{slug}", controllers.ProductDetail(deps.CatalogService, deps.ReviewsService, deps.SessionService, logg))
		r.Get("/reviews/{productID}", controllers.ReviewsList(deps.ReviewsService, logg))

		r.Route("/session", func(r chi.Router) {
			r.Get("/theme", controllers.ThemeGet(deps.SessionService, logg))
			r.Put("/theme", controllers.ThemeSet(deps.SessionService, logg))
			r.Get("/recently-viewed", controllers.RecentlyViewed(deps.SessionService, deps.CatalogService, logg))
			r.Post("/recently-viewed/{productID}", controllers.RecentlyViewedTouch(deps.SessionService, logg))
		})

		r.Route("/compare", func(r chi.Router) {
			r.Get("/", controllers.CompareList(deps.SessionService, deps.CatalogService, logg))
			r.Post("/{productID}", controllers.CompareAdd(deps.SessionService, logg))
			r.Delete("/{productID}", controllers.CompareRemove(deps.SessionService, logg))
		})

		// account surface: requires a signed-in shopper
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartView(deps.CartService, deps.SessionService, logg))
				r.Post("/items", controllers.CartAdd(deps.CartService, logg))
				r.Patch("/items/{lineID}", controllers.CartSetQuantity(deps.CartService, logg))
				r.Delete("/items/{lineID}", controllers.CartRemove(deps.CartService, logg))
				r.Post("/coupon", controllers.CouponApply(deps.SessionService, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.CheckoutShow(deps.CheckoutService, logg))
				r.Post("/", controllers.CheckoutSubmit(deps.CheckoutService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(deps.OrdersService, logg))
				r.Get("/{orderID}", controllers.OrderDetail(deps.OrdersService, logg))
			})
			r.Get("/account/summary", controllers.AccountSummary(deps.OrdersService, logg))
			r.Get("/addresses", controllers.AddressList(deps.AddressService, logg))

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistList(deps.WishlistService, logg))
				r.Post("/{productID}", controllers.WishlistAdd(deps.WishlistService, logg))
				r.Delete("/{productID}", controllers.WishlistRemove(deps.WishlistService, logg))
			})

			r.Post("/reviews/{productID}", controllers.ReviewAdd(deps.ReviewsService, logg))
		})
	})

	return r
}
