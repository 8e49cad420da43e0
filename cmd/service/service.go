package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"users-table/internal/cache"
	"users-table/internal/config"
	"users-table/internal/fetcher"
	"users-table/internal/router"
	"users-table/internal/session"
	"users-table/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "users-table/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig     = config.Load
	newRedisClient = cache.NewRedisClient
	newWorkerPool  = worker.NewPool
	startServer    = serve
	exitFunc       = os.Exit
)

// serve 啟動 HTTP 服務，收到 SIGINT/SIGTERM 時優雅關閉
func serve(e *echo.Echo, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

func newStore(cfg config.Config) (session.Store, error) {
	if !cfg.UseRedis() {
		return session.NewMemoryStore(cfg.SessionTTL), nil
	}
	rdb, err := newRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("Redis 連線失敗: %v", err)
	}
	return session.NewRedisStore(rdb, cfg.SessionTTL), nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("關閉 session store 失敗: %v", err)
		}
	}()

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	v := validator.New()
	users := fetcher.New(cfg.UsersURL, &http.Client{}, v)
	sessions := session.NewManager(store, users, wp, session.Options{
		FetchTimeout: cfg.FetchTimeout,
		Locale:       cfg.Locale,
	})

	e := echo.New()
	e.Validator = &CustomValidator{validator: v}
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, sessions, cfg.PollTimeout)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	log.Printf("users from %s, listening on %s", cfg.UsersURL, cfg.HTTPAddr)
	return startServer(e, cfg.HTTPAddr)
}
