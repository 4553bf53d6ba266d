package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gonexe/coupon-book-service/internal/api/http/handlers"
	"github.com/gonexe/coupon-book-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	CouponBooks    *handlers.CouponBooksHandler
	Coupons        *handlers.CouponsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	books := app.Group("/coupon-books", cfg.AuthMiddleware.Handle)
	books.Post("/", cfg.CouponBooks.Create)
	books.Post("/:id/codes", cfg.CouponBooks.UploadCodes)

	coupons := app.Group("/coupons", cfg.AuthMiddleware.Handle)
	coupons.Post("/assign", cfg.Coupons.Assign)
	coupons.Post("/assign/:code", cfg.Coupons.AssignSpecific)
	coupons.Post("/lock/:code", cfg.Coupons.Lock)
	coupons.Post("/redeem/:code", cfg.Coupons.Redeem)
	coupons.Get("/user-coupons", cfg.Coupons.ListMine)
}
