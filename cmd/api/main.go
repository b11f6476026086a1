// Command api runs the job board HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/config"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/logger"
	"jobboard-backend/internal/metrics"
	"jobboard-backend/internal/notification"
	"jobboard-backend/internal/scheduler"
	"jobboard-backend/internal/server"
)

const shutdownTimeout = 5 * time.Second

func gracefulShutdown(apiServer *http.Server, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Errorf("server forced to shutdown with error: %v", err)
	}

	close(done)
}

func main() {
	cfg := config.MustLoad()
	logger.Setup(cfg.Logger)
	defer logger.Cleanup()
	metrics.Register()

	db, err := database.NewDBInstance(cfg.DB)
	if err != nil {
		log.WithField("error_type", "db").Fatalf("Database failed to connect: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.WithField("error_type", "db").Fatalf("Database failed to migrate: %v", err)
	}

	senders := []notification.Sender{notification.Throttle(notification.LogMailer{}, cfg.Notify.MaxPerSecond)}
	var blacklist auth.JwtBlacklistStore
	var cleaner scheduler.BlacklistCleaner

	if cfg.Redis.URL != "" {
		rdb, err := notification.NewRedisClient(context.Background(), cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Redis failed to connect: %v", err)
		}
		defer rdb.Close()
		senders = append(senders, notification.NewRedisPublisher(rdb, cfg.Redis.Channel))
		blacklist = auth.NewRedisBlacklistStore(rdb, "jwt:blacklist:")
	} else {
		memory := auth.NewInMemoryBlacklistStore()
		blacklist, cleaner = memory, memory
	}

	dispatcher, err := notification.NewDispatcher(EventBus.New(), notification.DefaultSendTimeout, senders...)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(cfg, db, blacklist, dispatcher)
	if _, err := srv.Users.EnsureAdmin(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatalf("Failed to create bootstrap admin: %v", err)
	}

	sched, err := scheduler.New(cfg.Scheduler, srv.Jobs, cleaner)
	if err != nil {
		log.Fatal(err)
	}
	sched.Start()

	apiServer := srv.HTTPServer()
	done := make(chan struct{}, 1)
	go gracefulShutdown(apiServer, done)

	log.Infof("listening on %s", apiServer.Addr)
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}

	<-done
	sched.Stop()
	dispatcher.Wait()
	log.Info("graceful shutdown complete")
}
