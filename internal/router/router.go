package router

import (
	"net/http"

	"bakery-kart/internal/handler"
	"bakery-kart/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Profile  *handler.ProfileHandler
	Coupon   *handler.CouponHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS, then per-group auth
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(apiKey, logger))
		r.Use(middleware.UserIdentity(logger))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.GetAll)
			r.Get("/{id}", h.Product.GetByID)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{id}", h.Cart.UpdateItem)
			r.Delete("/items/{id}", h.Cart.RemoveItem)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", h.Profile.Get)
			r.Put("/birthday", h.Profile.SetBirthday)
		})

		r.Get("/promotions", h.Coupon.ListPromotions)
		r.Route("/coupons/saved", func(r chi.Router) {
			r.Get("/", h.Coupon.ListSaved)
			r.Post("/", h.Coupon.Save)
			r.Delete("/{code}", h.Coupon.Remove)
		})

		r.Post("/checkout/quote", h.Checkout.Quote)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Order.List)
			r.Post("/", h.Checkout.PlaceOrder)
			r.Get("/{id}", h.Order.GetByID)
		})
	})

	return r
}
