package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "daybook/api/v1"
	"daybook/config"
	"daybook/dao"
	"daybook/internal/auth"
	myvalidator "daybook/internal/validator"
	"daybook/middleware"
	"daybook/model"
	"daybook/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	if err := config.InitLogger(); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	config.InitRedis()

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// 自动迁移
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Entry{},
		&model.EntryStats{},
		&model.Media{},
		&model.Tag{},
		&model.EntryTag{},
		&model.Reaction{},
		&model.UserStats{},
		&model.MoodHistory{},
	); err != nil {
		panic(err)
	}

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db)
	entryDAO := dao.NewEntryDAO(db)
	tagDAO := dao.NewTagDAO(db)
	statsDAO := dao.NewStatsDAO(db)
	categoryDAO := dao.NewCategoryDAO(db)
	feedDAO := dao.NewFeedDAO(db)
	reactionDAO := dao.NewReactionDAO(db)

	session := auth.NewSessionManager(config.RedisClient)
	mediaService := service.NewMediaService(config.GlobalConfig.Uploads)
	userService := service.NewUserService(userDAO)
	statsService := service.NewStatsService(statsDAO, entryDAO)
	entryService := service.NewEntryService(entryDAO, tagDAO, statsDAO, statsService, mediaService)
	feedService := service.NewFeedService(feedDAO, reactionDAO)
	categoryService := service.NewCategoryService(categoryDAO, tagDAO)
	adminService := service.NewAdminService(userDAO, statsDAO, categoryDAO, tagDAO)
	resetService := service.NewResetService(session, userDAO)

	userAPI := v1.NewUserAPI(userService, session, mediaService)
	entryAPI := v1.NewEntryAPI(entryService, session)
	feedAPI := v1.NewFeedAPI(feedService)
	analyticsAPI := v1.NewAnalyticsAPI(statsService)
	categoryAPI := v1.NewCategoryAPI(categoryService)
	adminAPI := v1.NewAdminAPI(adminService)
	resetAPI := v1.NewResetAPI(resetService)

	// 初始化路由
	r := gin.Default()
	r.Use(middleware.RequestLogger())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", config.GlobalConfig.Uploads.Dir)

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("mood", myvalidator.IsMood); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("privacy", myvalidator.IsPrivacy); err != nil {
			panic(err)
		}
	}

	// 公共路由
	public := r.Group("/api/v1")
	{
		public.POST("/users/register", userAPI.Register)
		loginLimiter := middleware.LoginRateLimiter(config.RedisClient, 5, time.Minute)
		public.POST("/users/login", loginLimiter, userAPI.Login)
		public.POST("/password-reset/start", resetAPI.Start)
		public.POST("/password-reset/answer", resetAPI.Answer)
		public.POST("/password-reset/complete", resetAPI.Complete)
	}

	// 私有路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(session))
	{
		private.POST("/users/logout", userAPI.Logout)
		private.GET("/users/me", userAPI.Me)
		private.POST("/users/profile", userAPI.UpdateProfile)
		private.GET("/flashes", userAPI.Flashes)

		private.GET("/entries", entryAPI.List)
		private.POST("/entries", entryAPI.Create)
		private.GET("/entries/:id", entryAPI.Get)
		private.PUT("/entries/:id", entryAPI.Update)
		private.DELETE("/entries/:id", entryAPI.Delete)

		private.GET("/feed", feedAPI.List)
		private.POST("/reactions", feedAPI.React)

		private.GET("/analytics", analyticsAPI.Dashboard)

		private.GET("/categories", categoryAPI.List)
		manageCategories := middleware.RequirePermission(userDAO, model.PermManageCategories)
		private.POST("/categories", manageCategories, categoryAPI.Create)
		private.DELETE("/categories/:id", manageCategories, categoryAPI.Delete)
	}

	// 管理员路由
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(session), middleware.RequireAdmin(userDAO))
	{
		admin.GET("/dashboard", adminAPI.Dashboard)
		admin.POST("/users/role", adminAPI.UpdateRole)
		admin.POST("/users/toggle-active", adminAPI.ToggleActive)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
