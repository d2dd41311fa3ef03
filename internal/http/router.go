// Package httpapi exposes the storefront, account and admin use cases over
// a JSON HTTP API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signout", h.SignOut)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			h.routes(r)
		})
	})

	return r
}

func (h *Handler) routes(r chi.Router) {
	r.Get("/categories", h.Categories)
	r.Get("/products", h.Products)
	r.Get("/products/{slug}", h.Product)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Cart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddCartItem)
		r.Put("/items/{id}", h.UpdateCartItem)
		r.Delete("/items/{id}", h.RemoveCartItem)
	})

	r.Post("/checkout", h.PlaceOrder)

	r.Post("/auth/signin", h.SignIn)
	r.Post("/auth/signup", h.SignUp)
	r.With(requireUser).Get("/auth/me", h.Me)
	r.With(requireUser).Put("/auth/profile", h.UpdateProfile)

	r.With(requireUser).Get("/orders", h.MyOrders)

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireAdmin)

		r.Get("/dashboard", h.Dashboard)
		r.Get("/analytics", h.Analytics)
		r.Get("/inventory", h.Inventory)

		r.Get("/products", h.AdminProducts)
		r.Post("/products", h.CreateProduct)
		r.Patch("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)
		r.Put("/products/{id}/stock", h.SetStock)

		r.Get("/orders", h.AdminOrders)
		r.Get("/orders/{id}", h.AdminOrder)
		r.Patch("/orders/{id}", h.UpdateOrder)
	})
}
