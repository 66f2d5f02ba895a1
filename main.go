package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gem-game/config"
	"gem-game/controller"
	"gem-game/repository"
	"gem-game/router"
	"gem-game/service"
	"gem-game/utils"
	"gem-game/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Dev {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("服务异常退出", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := repository.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, rdb.Close()) }()
	logger.Info("Redis 连接成功", zap.String("addr", cfg.RedisAddr))

	hub := ws.NewHub(logger.Named("ws"))
	opts := []service.Option{
		service.WithLogger(logger.Named("room")),
		service.WithBroadcaster(hub),
		service.WithOneActionPerTurn(cfg.OneActionPerTurn),
		service.WithAllowDebug(cfg.AllowDebug),
	}
	if cfg.MySQLDSN != "" {
		archive, openErr := repository.OpenResultArchive(ctx, cfg.MySQLDSN)
		if openErr != nil {
			return openErr
		}
		defer func() { err = multierr.Append(err, archive.Close()) }()
		opts = append(opts, service.WithResultArchive(archive))
		logger.Info("对局结果将归档到 MySQL")
	}
	rooms := service.NewRoomManager(repository.NewRoomStore(rdb, 24*time.Hour), opts...)
	tokens := utils.NewTokenIssuer(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 设置 CORS 中间件，允许所有域名、所有方法、所有 header
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.InitRouter(r, router.Handlers{
		Rooms:     controller.NewRoomController(rooms, tokens, logger.Named("http")),
		Auth:      controller.NewAuthController(tokens),
		WebSocket: ws.NewHandler(hub, rooms, tokens, logger.Named("ws")),
		Tokens:    tokens,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务启动", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("正在关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
