// internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "surfschool_backend/internals/features/users/auth/controller"
	"surfschool_backend/internals/middlewares"
	authMiddleware "surfschool_backend/internals/middlewares/auth"
)

// AuthRoutes: /api/auth/*
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Get("/me", authMiddleware.AuthMiddleware(), ctrl.Me)
}
