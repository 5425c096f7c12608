package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devmarket-mx/tienda-backend/api/controllers"
	"github.com/devmarket-mx/tienda-backend/api/middleware"
	addresssvc "github.com/devmarket-mx/tienda-backend/internal/address"
	authsvc "github.com/devmarket-mx/tienda-backend/internal/auth"
	cartsvc "github.com/devmarket-mx/tienda-backend/internal/cart"
	checkoutsvc "github.com/devmarket-mx/tienda-backend/internal/checkout"
	dashboardsvc "github.com/devmarket-mx/tienda-backend/internal/dashboard"
	leasesvc "github.com/devmarket-mx/tienda-backend/internal/lease"
	ordersvc "github.com/devmarket-mx/tienda-backend/internal/orders"
	productsvc "github.com/devmarket-mx/tienda-backend/internal/products"
	providersvc "github.com/devmarket-mx/tienda-backend/internal/providers"
	"github.com/devmarket-mx/tienda-backend/pkg/auth/session"
	"github.com/devmarket-mx/tienda-backend/pkg/config"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/devmarket-mx/tienda-backend/pkg/logger"
	"github.com/devmarket-mx/tienda-backend/pkg/metrics"
)

// Services bundles every service the router exposes.
type Services struct {
	Auth      authsvc.Service
	Addresses addresssvc.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
	Products  productsvc.Service
	Leases    leasesvc.Service
	Orders    ordersvc.Service
	Providers providersvc.Service
	Dashboard dashboardsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readiness map[string]controllers.Pinger,
	sessions session.AccessSessionChecker,
	svcs Services,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1/usuarios", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
			r.Get("/profile", controllers.UserProfile(svcs.Auth, logg))
			r.Put("/profile", controllers.UserProfileUpdate(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1/productos", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svcs.Products, logg, true))
		r.Get("/{productId}", controllers.ProductGet(svcs.Products, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/carrito", func(r chi.Router) {
			r.Get("/", controllers.CartView(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Get("/count", controllers.CartCount(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Put("/items/{productId}", controllers.CartUpdateItem(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, logg))
		})

		r.Route("/direcciones", func(r chi.Router) {
			r.Get("/", controllers.AddressList(svcs.Addresses, logg))
			r.Post("/", controllers.AddressCreate(svcs.Addresses, logg))
			r.Get("/{addressId}", controllers.AddressGet(svcs.Addresses, logg))
			r.Put("/{addressId}", controllers.AddressUpdate(svcs.Addresses, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(svcs.Addresses, logg))
			r.Post("/{addressId}/principal", controllers.AddressSetPrimary(svcs.Addresses, logg))
			r.Post("/{addressId}/facturacion", controllers.AddressSetBilling(svcs.Addresses, logg))
		})

		r.Post("/envios/cotizar", controllers.ShippingQuote(svcs.Checkout, logg))

		r.Route("/pedidos", func(r chi.Router) {
			r.Post("/crear-preferencia", controllers.CheckoutSubmit(svcs.Checkout, logg))
			r.Get("/", controllers.OrderListMine(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderGetMine(svcs.Orders, logg))
		})

		r.Route("/arrendamientos", func(r chi.Router) {
			r.Post("/", controllers.LeaseRequest(svcs.Leases, logg))
			r.Get("/", controllers.LeaseListMine(svcs.Leases, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/usuarios/login", controllers.AdminAuthLogin(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Get("/dashboard", controllers.AdminDashboard(svcs.Dashboard, logg))

			r.Route("/productos", func(r chi.Router) {
				r.Get("/", controllers.ProductList(svcs.Products, logg, false))
				r.Post("/", controllers.AdminProductCreate(svcs.Products, logg))
				r.Get("/{productId}", controllers.ProductGet(svcs.Products, logg))
				r.Put("/{productId}", controllers.AdminProductUpdate(svcs.Products, logg))
				r.Post("/{productId}/stock", controllers.AdminProductAdjustStock(svcs.Products, logg))
				r.Delete("/{productId}", controllers.AdminProductDeactivate(svcs.Products, logg))
			})

			r.Route("/proveedores", func(r chi.Router) {
				r.Get("/", controllers.AdminProviderList(svcs.Providers, logg))
				r.Post("/", controllers.AdminProviderCreate(svcs.Providers, logg))
				r.Get("/{providerId}", controllers.AdminProviderGet(svcs.Providers, logg))
				r.Put("/{providerId}", controllers.AdminProviderUpdate(svcs.Providers, logg))
			})

			r.Route("/pedidos", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.AdminOrderGet(svcs.Orders, logg))
				r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(svcs.Orders, logg))
			})

			r.Route("/arrendamientos", func(r chi.Router) {
				r.Get("/", controllers.AdminLeaseList(svcs.Leases, logg))
				r.Post("/{leaseId}/activar", controllers.AdminLeaseActivate(svcs.Leases, logg))
				r.Post("/{leaseId}/cancelar", controllers.AdminLeaseCancel(svcs.Leases, logg))
			})
		})
	})

	return r
}
