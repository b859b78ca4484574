package routes

import (
	"github.com/etori-p/HomeLend/handlers"
	"github.com/etori-p/HomeLend/middleware"
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handlers.HealthCheck)

	listingController := handlers.NewListingController()
	userController := handlers.NewUserController()
	favoriteController := handlers.NewFavoriteController()
	testimonialController := handlers.NewTestimonialController()
	neighborhoodController := handlers.NewNeighborhoodController()

	api := e.Group("/api")

	api.POST("/auth/register", userController.Register)
	api.POST("/auth/login", userController.Login)
	api.POST("/auth/forgotpassword", userController.ForgotPassword)
	api.PUT("/auth/resetpassword", userController.ResetPassword)

	api.GET("/listings", listingController.ListListings)
	api.GET("/listings/search", listingController.SearchListings)
	api.GET("/listings/:propertyname", listingController.GetListing)

	api.GET("/testimonials", testimonialController.ListTestimonials)
	api.GET("/neighborhoods/popular", neighborhoodController.PopularNeighborhoods)

	auth := api.Group("", middleware.JWTMiddleware())

	auth.POST("/listings", listingController.CreateListing)
	auth.PUT("/listings/:id", listingController.UpdateListing)
	auth.DELETE("/listings/:id", listingController.DeleteListing)

	auth.GET("/favorites", favoriteController.GetFavorites)
	auth.POST("/favorites", favoriteController.ToggleFavorite)

	auth.POST("/testimonials", testimonialController.CreateTestimonial)

	auth.GET("/users/me", userController.GetProfile)
	auth.PUT("/users/me", userController.UpdateProfile)
	auth.PUT("/users/me/password", userController.UpdatePassword)
	auth.DELETE("/users/me", userController.DeleteAccount)
	auth.GET("/users/me/newsletter", userController.GetNewsletter)
	auth.PUT("/users/me/newsletter", userController.UpdateNewsletter)
}
