package main

import (
	"log"

	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/database"
	"github.com/fitbook/fitbook/internal/handler"
	"github.com/fitbook/fitbook/internal/middleware"
	"github.com/fitbook/fitbook/internal/repository"
	"github.com/fitbook/fitbook/internal/service"
	"github.com/fitbook/fitbook/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	coachRepo := repository.NewCoachRepository(database.DB)
	skillRepo := repository.NewSkillRepository(database.DB)
	courseRepo := repository.NewCourseRepository(database.DB)
	bookingRepo := repository.NewBookingRepository(database.DB)
	packageRepo := repository.NewCreditPackageRepository(database.DB)
	purchaseRepo := repository.NewCreditPurchaseRepository(database.DB)

	// Initialize services
	userService := service.NewUserService(userRepo, purchaseRepo, bookingRepo, cfg.JWTSecret, cfg.JWTExpiry)
	coachService := service.NewCoachService(coachRepo, userRepo, courseRepo)
	skillService := service.NewSkillService(skillRepo)
	courseService := service.NewCourseService(courseRepo, bookingRepo, purchaseRepo)
	creditService := service.NewCreditService(packageRepo, purchaseRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	coachHandler := handler.NewCoachHandler(coachService)
	skillHandler := handler.NewSkillHandler(skillService)
	adminHandler := handler.NewAdminHandler(coachService, courseService)
	courseHandler := handler.NewCourseHandler(courseService)
	creditHandler := handler.NewCreditPackageHandler(creditService)

	auth := middleware.AuthMiddleware(cfg.JWTSecret, userRepo)
	isCoach := middleware.CoachMiddleware()

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	api := router.Group("/api")

	// Auth endpoints get per-IP rate limiting when Redis is configured
	withAuthLimit := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{h}
	}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		limiter := middleware.NewRateLimiter(redis.NewClient(opts), middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			BlockTime:   cfg.RateLimitBlockTime,
		})
		withAuthLimit = func(h gin.HandlerFunc) []gin.HandlerFunc {
			return []gin.HandlerFunc{limiter.Middleware(), h}
		}
	}

	users := api.Group("/users")
	{
		users.POST("/signup", withAuthLimit(userHandler.Signup)...)
		users.POST("/login", withAuthLimit(userHandler.Login)...)
		users.GET("/profile", auth, userHandler.GetProfile)
		users.PUT("/profile", auth, userHandler.PutProfile)
		users.PUT("/password", auth, userHandler.PutPassword)
		users.GET("/credit-package", auth, userHandler.GetPurchases)
		users.GET("/courses", auth, userHandler.GetBookedCourses)
		users.GET("", auth, userHandler.GetAllUsers)
	}

	coaches := api.Group("/coaches")
	{
		coaches.POST("/skill", skillHandler.PostSkill)
		coaches.GET("/skill", skillHandler.GetSkills)
		coaches.DELETE("/skill/:skillId", skillHandler.DeleteSkill)
		coaches.GET("", coachHandler.GetCoaches)
		coaches.GET("/:coachId", coachHandler.GetCoach)
		coaches.GET("/:coachId/courses", coachHandler.GetCoachCourses)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/coaches/courses", auth, isCoach, adminHandler.PostCourses)
		admin.PUT("/coaches/courses/:courseId", auth, isCoach, adminHandler.PutCourses)
		admin.POST("/coaches/:userId", adminHandler.PostCoach)
		admin.PUT("/coaches", auth, isCoach, adminHandler.PutCoach)
		admin.GET("/coaches", auth, isCoach, adminHandler.GetCoach)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", courseHandler.GetCourses)
		courses.POST("/:courseId", auth, courseHandler.PostBooking)
		courses.DELETE("/:courseId", auth, courseHandler.DeleteBooking)
	}

	creditPackages := api.Group("/credit-package")
	{
		creditPackages.GET("", creditHandler.GetAllPackages)
		creditPackages.POST("", creditHandler.PostPackage)
		creditPackages.POST("/:creditPackageId", auth, creditHandler.PostBuy)
		creditPackages.DELETE("/:creditPackageId", creditHandler.DeletePackage)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
