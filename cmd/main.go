package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dmaslov/campuschat-server/internal/api/http/router"
	httpServer "github.com/dmaslov/campuschat-server/internal/api/http/server"
	"github.com/dmaslov/campuschat-server/internal/auth"
	"github.com/dmaslov/campuschat-server/internal/config"
	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/realtime"
	"github.com/dmaslov/campuschat-server/internal/repository/postgres"
	"github.com/dmaslov/campuschat-server/internal/service"
	"github.com/dmaslov/campuschat-server/internal/session"
	"github.com/dmaslov/campuschat-server/internal/snapshot"
	storage "github.com/dmaslov/campuschat-server/internal/storage/minio"
	"github.com/dmaslov/campuschat-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient, err := snapshot.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	chatRepo := postgres.NewPrivateChatRepository(db)
	globalMsgRepo := postgres.NewGlobalMessageRepository(db)
	privateMsgRepo := postgres.NewPrivateMessageRepository(db)

	snapshots := snapshot.NewStore(redisClient)
	sessions := session.NewManager(snapshots, logger)
	tokens := token.NewJWT(cfg.JWT.Secret)
	passwords := auth.NewPasswordService()
	hub := realtime.NewHub()

	authService := service.NewAuth(userRepo, profileRepo, sessions, passwords, tokens, logger)
	profileService := service.NewProfile(profileRepo, storageClient, sessions, logger)
	chatService := service.NewChat(chatRepo, globalMsgRepo, privateMsgRepo, hub, logger)

	listener := postgres.NewListener(db, hub, logger)

	app := router.New(authService, profileService, chatService, tokens, logger).Register()
	srv := httpServer.New(app, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("change feed listener stopped", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", srv.Address())
		if err := srv.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
