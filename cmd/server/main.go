package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/user/homepage/internal/config"
	"github.com/user/homepage/internal/content"
	"github.com/user/homepage/internal/handler"
	"github.com/user/homepage/internal/logging"
	"github.com/user/homepage/internal/markdown"
	"github.com/user/homepage/internal/middleware"
	"github.com/user/homepage/internal/repository"
	"github.com/user/homepage/internal/router"
	"github.com/user/homepage/internal/service"
	"github.com/user/homepage/internal/utils"
)

func main() {
	// 加载环境变量
	envErr := godotenv.Load()

	// 加载配置
	cfg := config.Load()

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	})
	if envErr != nil {
		logging.Info().Msg("未找到 .env 文件，使用系统环境变量")
	}
	if cfg.IsProduction() && cfg.UsesDefaultSecret() {
		logging.Warn().Msg("生产环境仍在使用默认 APP_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 加载站点内容
	lib, err := content.Load(ctx, cfg.ContentDir, markdown.NewRenderer(), content.Options{
		IncludeDrafts: !cfg.IsProduction(),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("内容加载失败")
	}

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("数据库连接失败")
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	// 初始化仓库
	repos := repository.NewRepositories(db)

	// 初始化缓存
	utils.InitCache()

	// 初始化 Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Security())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 设置 Session 中间件
	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 天
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("homepage_session", store))

	// 加载模板（使用 multitemplate 解决继承问题）
	r.HTMLRender = router.LoadTemplates(filepath.Join(cfg.WebDir, "templates"))

	// 静态文件
	r.Static("/static", filepath.Join(cfg.WebDir, "static"))

	// 初始化 Handler
	h := handler.NewHandler(cfg, lib, repos)

	// 启动定时清理任务
	cleanupSvc := service.NewCleanupService(repos.SearchLog)
	cleanupSvc.Start(ctx)

	// 注册路由
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logging.Info().Str("addr", cfg.SiteUrl).Msg("服务器启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("服务器启动失败")
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	<-ctx.Done()
	logging.Info().Msg("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("服务器强制关闭")
	}

	// 等待搜索日志写完
	h.SearchService.Wait()
	<-cleanupSvc.Done()

	logging.Info().Msg("服务器已退出")
}
