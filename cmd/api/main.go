package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/suPer8Hu/job-assistant/internal/bootstrap"
	"github.com/suPer8Hu/job-assistant/internal/config"
	"github.com/suPer8Hu/job-assistant/internal/httpapi"
	"github.com/suPer8Hu/job-assistant/internal/httpapi/handlers"
	"github.com/suPer8Hu/job-assistant/internal/logger"
	"github.com/suPer8Hu/job-assistant/internal/store/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	zl, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if !cfg.LogDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := bootstrap.New(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("bootstrap failed", zap.Error(err))
	}
	defer app.Close()

	var pub handlers.JobPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			zl.Fatal("rabbit publisher", zap.Error(err))
		}
		defer p.Close()
		pub = p
	} else {
		zl.Info("RABBIT_URL not set, async turn routes disabled")
	}

	router := httpapi.NewRouter(cfg, app.ChatSvc, pub, zl)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	zl.Info("chatbot api listening", zap.String("addr", cfg.HTTPAddr))
	if err := runServer(ctx, srv); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
