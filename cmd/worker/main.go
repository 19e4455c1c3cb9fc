package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/streamforge/transcoder/internal/config"
	"github.com/streamforge/transcoder/internal/media"
	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/internal/videos/repository"
	"github.com/streamforge/transcoder/internal/worker"
	"github.com/streamforge/transcoder/pkg/db/aws"
	"github.com/streamforge/transcoder/pkg/db/postgres"
	"github.com/streamforge/transcoder/pkg/logger"
)

func main() {
	log.Println("Starting encode worker")

	cfgFile, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	s3Client, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not connect to s3: %s", err)
	}

	videoRepo := repository.NewVideoRepo(psqlDB)
	awsRepo := repository.NewAwsRepository(s3Client, cfg.S3.Bucket)
	transcoder := media.NewTranscoder(appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Infof("shutting down workers")
		cancel()
	}()

	hooks := worker.Hooks{
		Processing: func(v *models.Video) { appLogger.Infof("processing %s (%s)", v.VideoID, v.Profile) },
		Success:    func(v *models.Video) { appLogger.Infof("encoded %s (%s)", v.VideoID, v.Profile) },
		Error:      func(v *models.Video) { appLogger.Warnf("failed %s (%s)", v.VideoID, v.Profile) },
	}

	w := worker.NewWorker(cfg, appLogger, videoRepo, awsRepo, transcoder, hooks)
	w.Start(ctx)
	w.Wait()
}
