package main

import (
	"chat-mirror/auth"
	"chat-mirror/infrastructure/mirror"
	"chat-mirror/infrastructure/push"
	"chat-mirror/infrastructure/rest"
	"chat-mirror/infrastructure/storage"
	"chat-mirror/observability"
	"chat-mirror/projection"
	"chat-mirror/runtime"
	"chat-mirror/runtime/workers"
	"chat-mirror/services"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Returning instead of exiting lets every deferred close run.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Authoritative store (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	store := storage.NewDocumentStore(db, log)
	defer func() { _ = store.Close() }()

	// 3. Relational mirror
	m, err := mirror.Open(config.MirrorDriver, config.MirrorDSN, log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	if err = m.Migrate(); err != nil {
		return fmt.Errorf("mirror migration failed: %w", err)
	}

	// 4. Projection runtime
	healthServer := health.NewServer()
	healthServer.SetServingStatus(workers.HealthService, healthpb.HealthCheckResponse_NOT_SERVING)
	stats := observability.NewProjectionStats(log)
	projector := projection.NewProjector(store, m, log, projection.WithConditionalPointer(config.ConditionalPointer))
	orchestrator := runtime.NewOrchestrator(
		log, workers.NewSupervisor(log, config.RestartInterval), store, projector, stats, healthServer,
		config.NumberOfPartitions, config.PartitionBufferSize, config.HeartbeatInterval,
		runtime.WithCheckpoint(store, config.CheckpointInterval, config.CompactChangeLog),
	)

	// 5. Services & HTTP surface
	notifier := push.NewTokenNotifier(store, push.NewLogPusher(log), log, config.PushRetryDelay)
	messages := services.NewMessageService(store, m, notifier, log, config.MaxPageSize)
	handler := rest.NewHandler(messages, services.NewChatService(store, m, log), notifier, log, config.DefaultPageSize)
	tokens := auth.NewTokens(config.JWTSecret, config.AuthTokenDuration)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.HTTPHost, config.HTTPPort),
		Handler:           rest.NewRouter(handler, tokens, stats, config.AllowedOrigins(), log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestratorDone := make(chan struct{})
	go func() {
		defer close(orchestratorDone)
		orchestrator.Start(ctx)
	}()

	// 7. gRPC health server
	healthAddress := fmt.Sprintf("%s:%d", config.HTTPHost, config.GRPCHealthPort)
	listener, err := net.Listen("tcp", healthAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", healthAddress, err)
	}
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	errChan := make(chan error, 2)
	go func() {
		log.Info("Starting gRPC health server", "address", healthAddress)
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	go func() {
		log.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err = <-errChan:
		log.Error("Server failed, shutting down", "error", err)
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	stop()
	orchestrator.Stop()
	<-orchestratorDone
	messages.Wait()
	log.Info("Program stopped cleanly")

	return err
}
