package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suPer8Hu/job-assistant/internal/bootstrap"
	"github.com/suPer8Hu/job-assistant/internal/chat"
	"github.com/suPer8Hu/job-assistant/internal/config"
	"github.com/suPer8Hu/job-assistant/internal/logger"
	"github.com/suPer8Hu/job-assistant/internal/store/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	zl, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RabbitURL == "" {
		zl.Fatal("RABBIT_URL is required for the worker")
	}

	app, err := bootstrap.New(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("bootstrap failed", zap.Error(err))
	}
	defer app.Close()

	// prefetch and pool size both follow WORKER_CONCURRENCY
	concurrency := cfg.WorkerConcurrency

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitQueue, concurrency)
	if err != nil {
		zl.Fatal("rabbit consumer", zap.Error(err))
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		zl.Fatal("consume", zap.Error(err))
	}

	zl.Info("worker started", zap.String("queue", cfg.RabbitQueue), zap.Int("concurrency", concurrency))

	// worker pool
	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			wl := zl.With(zap.Int("worker", workerID))
			for d := range jobs {
				var m rabbitmq.TurnMessage
				if err := json.Unmarshal(d.Body, &m); err != nil || m.JobID == "" {
					wl.Warn("bad message", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}

				start := time.Now()
				if err := handleJob(ctx, app.ChatSvc, m.JobID); err != nil {
					wl.Error("turn job failed",
						zap.String(logger.FieldJobID, m.JobID),
						zap.Duration("cost", time.Since(start)),
						zap.Error(err),
					)
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					wl.Error("ack failed", zap.String(logger.FieldJobID, m.JobID), zap.Error(err))
				}
			}
		}(i)
	}

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			zl.Info("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				zl.Warn("delivery channel closed")
				close(jobs)
				wg.Wait()
				return
			}
			jobs <- d
		}
	}
}

func handleJob(ctx context.Context, svc *chat.Service, jobID string) error {
	// a turn is one synchronous engine call; bound it so a stuck catalog
	// cannot pin a worker forever
	jctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return svc.RunJob(jctx, jobID)
}
