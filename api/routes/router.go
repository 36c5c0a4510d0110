package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bodegadosparcas/bodega-backend/api/controllers"
	"github.com/bodegadosparcas/bodega-backend/api/middleware"
	authsvc "github.com/bodegadosparcas/bodega-backend/internal/auth"
	bannersvc "github.com/bodegadosparcas/bodega-backend/internal/banners"
	cartsvc "github.com/bodegadosparcas/bodega-backend/internal/cart"
	"github.com/bodegadosparcas/bodega-backend/internal/catalog"
	checkoutsvc "github.com/bodegadosparcas/bodega-backend/internal/checkout"
	couponsvc "github.com/bodegadosparcas/bodega-backend/internal/coupons"
	usersvc "github.com/bodegadosparcas/bodega-backend/internal/users"
	"github.com/bodegadosparcas/bodega-backend/pkg/auth/session"
	"github.com/bodegadosparcas/bodega-backend/pkg/config"
	"github.com/bodegadosparcas/bodega-backend/pkg/db"
	"github.com/bodegadosparcas/bodega-backend/pkg/logger"
	"github.com/bodegadosparcas/bodega-backend/pkg/metrics"
	"github.com/bodegadosparcas/bodega-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics

	Auth     authsvc.Service
	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Coupons  couponsvc.Service
	Banners  bannersvc.Service
	Users    usersvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis))
	})

	if d.HTTPMetrics != nil {
		r.Method(http.MethodGet, "/metrics", d.HTTPMetrics.Handler())
	}

	// Storefront browsing needs no account.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogProducts(d.Catalog, logg))
		r.Get("/products/{productId}", controllers.CatalogProductDetail(d.Catalog, logg))
		r.Get("/categories", controllers.CatalogCategories(d.Catalog, logg))
	})
	r.Get("/api/v1/banners", controllers.PublicBanners(d.Banners, logg))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, d.Redis, logg),
			middleware.Idempotency(d.Redis, logg),
		).Post("/register", controllers.AuthRegister(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

		r.Get("/me", controllers.Me(d.Auth, logg))
		r.Put("/me/address", controllers.UpdateMyAddress(d.Auth, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(d.Cart, logg))
			r.Post("/items", controllers.CartAddItem(d.Cart, logg))
			r.Put("/items/{productId}", controllers.CartUpdateItem(d.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(d.Cart, logg))
			r.Delete("/", controllers.CartClear(d.Cart, logg))
			r.Post("/coupon", controllers.CartApplyCoupon(d.Cart, logg))
			r.Delete("/coupon", controllers.CartRemoveCoupon(d.Cart, logg))
		})

		// Attached per route: group-level Use would run before the inner
		// route is matched, leaving the chi pattern as /api/v1/* and the
		// guard with nothing to match.
		r.With(middleware.Idempotency(d.Redis, logg)).Post("/checkout", controllers.Checkout(d.Checkout, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(d.Catalog, logg))
			r.Post("/", controllers.AdminCreateProduct(d.Catalog, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(d.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(d.Catalog, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCategory(d.Catalog, logg))
			r.Patch("/{categoryId}", controllers.AdminUpdateCategory(d.Catalog, logg))
			r.Delete("/{categoryId}", controllers.AdminDeleteCategory(d.Catalog, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.AdminListCoupons(d.Coupons, logg))
			r.Post("/", controllers.AdminCreateCoupon(d.Coupons, logg))
			r.Patch("/{couponId}", controllers.AdminUpdateCoupon(d.Coupons, logg))
			r.Delete("/{couponId}", controllers.AdminDeleteCoupon(d.Coupons, logg))
		})

		r.Route("/banners", func(r chi.Router) {
			r.Get("/", controllers.AdminListBanners(d.Banners, logg))
			r.Post("/", controllers.AdminCreateBanner(d.Banners, logg))
			r.Patch("/{bannerId}", controllers.AdminUpdateBanner(d.Banners, logg))
			r.Delete("/{bannerId}", controllers.AdminDeleteBanner(d.Banners, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.AdminListCustomers(d.Users, logg))
			r.Put("/{userId}/role", controllers.AdminSetCustomerRole(d.Users, logg))
			r.Put("/{userId}/ban", controllers.AdminSetCustomerBanned(d.Users, logg))
		})
	})

	return r
}
