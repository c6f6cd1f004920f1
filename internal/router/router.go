// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/juntai-br/juntai-backend/internal/config"
	"github.com/juntai-br/juntai-backend/internal/handlers"
	"github.com/juntai-br/juntai-backend/internal/middleware"
	"github.com/juntai-br/juntai-backend/internal/paypal"
	"github.com/juntai-br/juntai-backend/internal/services"
	"github.com/juntai-br/juntai-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	paypalClient := paypal.NewClient(cfg.PayPal.BaseURL, cfg.PayPal.ClientID, cfg.PayPal.ClientSecret)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	projectService := services.NewProjectService(db)
	donationService := services.NewDonationService(db, cfg, paypalClient)
	commentService := services.NewCommentService(db)
	categoryService := services.NewCategoryService(db)
	userService := services.NewUserService(db)
	addressService := services.NewAddressService(cfg.App.CEPBaseURL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, storageService)
	donationHandler := handlers.NewDonationHandler(donationService)
	commentHandler := handlers.NewCommentHandler(commentService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	userHandler := handlers.NewUserHandler(userService, projectService, storageService)
	addressHandler := handlers.NewAddressHandler(addressService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.App.BaseURL))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Dev static route for locally stored uploads
	if cfg.Environment != "production" {
		r.Static("/uploads", "./uploads")
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", middleware.AuthRequired(), authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Project routes
		projects := v1.Group("/projects")
		{
			projects.GET("", middleware.OptionalAuth(), projectHandler.GetProjects)
			projects.GET("/:id", middleware.OptionalAuth(), projectHandler.GetProject)
			projects.GET("/:id/comments", commentHandler.GetProjectComments)

			// Authenticated routes
			protected := projects.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", projectHandler.CreateProject)
				protected.PUT("/:id", projectHandler.UpdateProject)
				protected.POST("/:id/deactivate", projectHandler.DeactivateProject)
				protected.POST("/:id/activate", projectHandler.ActivateProject)
				protected.DELETE("/:id", projectHandler.DeleteProject)
				protected.POST("/:id/media", middleware.UploadRateLimit(), projectHandler.UploadMedia)
				protected.GET("/my", projectHandler.GetMyProjects)
			}
		}

		// Donation routes
		donations := v1.Group("/donations")
		donations.Use(middleware.AuthRequired())
		{
			donations.POST("", middleware.DonationRateLimit(), donationHandler.CreateOrder)
			donations.GET("/my", donationHandler.GetMyDonations)
		}

		// PayPal checkout routes
		paypalRoutes := v1.Group("/paypal")
		paypalRoutes.Use(middleware.DonationRateLimit())
		{
			paypalRoutes.POST("/create-order", middleware.AuthRequired(), donationHandler.CreateOrder)
			paypalRoutes.POST("/capture-order", middleware.AuthRequired(), donationHandler.CaptureOrder)
		}

		// Stripe checkout routes
		stripeRoutes := v1.Group("/stripe")
		stripeRoutes.Use(middleware.DonationRateLimit())
		{
			stripeRoutes.POST("/create-intent", middleware.AuthRequired(), donationHandler.CreateIntent)
			stripeRoutes.POST("/confirm-intent", middleware.AuthRequired(), donationHandler.ConfirmIntent)
		}

		// Comment routes
		comments := v1.Group("/comments")
		comments.Use(middleware.AuthRequired())
		{
			comments.POST("", commentHandler.CreateComment)
			comments.PUT("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		// Category routes, mutations are admin only
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)

			admin := categories.Group("")
			admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				admin.POST("", categoryHandler.CreateCategory)
				admin.PUT("/:id", categoryHandler.UpdateCategory)
				admin.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		// Address lookup
		v1.GET("/address/cep/:cep", addressHandler.LookupCEP)

		// User routes
		users := v1.Group("/users")
		{
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/projects", userHandler.GetUserProjects)

			protected := users.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/profile", userHandler.UpdateProfile)
				protected.POST("/upload-avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
			}
		}
	}

	return r
}
