package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bnu-planner/config"
	"bnu-planner/internal/api/handler"
	"bnu-planner/internal/api/router"
	"bnu-planner/internal/repository"
	"bnu-planner/internal/semester"
	"bnu-planner/internal/service"
	"bnu-planner/pkg/capture"
	"bnu-planner/pkg/database"
	applogger "bnu-planner/pkg/logger"
	"bnu-planner/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 加载学期定义
	term, err := semester.Load(cfg.Semester.File)
	if err != nil {
		logger.Fatal("学期定义加载失败", zap.Error(err))
	}
	logger.Info("学期已加载",
		zap.String("name", term.Name()),
		zap.Int("max_weeks", term.Calendar().MaxWeeks()),
	)

	// 4. 连接 Redis（可选：连接失败时导出不限流；作为存储后端时必须可用）
	var rdb *redis.Client
	if cfg.Storage.Driver == config.StorageRedis || cfg.Export.RateLimit > 0 {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.Storage.Driver == config.StorageRedis {
				logger.Fatal("Redis 连接失败", zap.Error(err))
			}
			logger.Warn("Redis 连接失败，导出限流将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 5. 选择存储后端
	var db *gorm.DB
	var backend repository.Backend
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err = database.NewDB(&cfg.Database, logger)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		backend = repository.NewGormBackend(db)
	case config.StorageRedis:
		backend = rdb
	default:
		backend, err = repository.NewFileBackend(cfg.Storage.Dir)
		if err != nil {
			logger.Fatal("数据目录不可用", zap.Error(err))
		}
	}

	// 6. 依赖注入: Repository → Store → Service → Handler
	repo := repository.NewRepository(backend, logger)
	store, err := service.NewPlannerStore(context.Background(), repo.Planner, logger)
	if err != nil {
		logger.Fatal("加载本地记录失败", zap.Error(err))
	}
	raster := capture.NewChromium(capture.Options{
		Width:       cfg.Export.ViewportWidth,
		Height:      cfg.Export.ViewportHeight,
		Scale:       cfg.Export.Scale,
		Timeout:     cfg.Export.Timeout,
		SettleDelay: cfg.Export.SettleDelay,
		ExecPath:    cfg.Export.ChromePath,
	})
	svc := service.NewService(cfg, term, store, raster, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	deps := router.Deps{
		Metrics:  svc.Metrics,
		Exporter: svc.Metrics.Handler(),
	}
	if rdb != nil {
		deps.Limiter = rdb
	}
	engine := router.Setup(cfg, h, deps, logger)

	// 8. 定时备份
	var scheduler *service.BackupScheduler
	if cfg.Backup.Enabled {
		scheduler, err = service.NewBackupScheduler(cfg.Backup.Cron, svc.Backup, logger)
		if err != nil {
			logger.Fatal("定时备份配置无效", zap.Error(err))
		}
		scheduler.Start()
	}

	// 9. 启动 HTTP 服务器（优雅关闭）
	// 截图导出可能较慢，写超时需覆盖一次完整的截图流程
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Export.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if scheduler != nil {
		scheduler.Stop(ctx)
	}

	// 关闭数据库连接
	if db != nil {
		if closeDB, _ := db.DB(); closeDB != nil {
			closeDB.Close()
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
