package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"openmusic/db"
	"openmusic/export"
	"openmusic/logger"
	"openmusic/queue"
	"openmusic/service"
	"openmusic/storage"

	"github.com/spf13/cobra"
)

var consumerCmd = &cobra.Command{
	Use:   "consumer",
	Short: "Process queued playlist exports",
	Long:  `Pop export requests from Redis, store the rendered playlist in MinIO and mail it to the requester.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsumer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(consumerCmd)
}

func runConsumer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !cfg.RedisEnabled() {
		return fmt.Errorf("the export consumer requires REDIS_HOST")
	}

	conn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := db.ConnectRedis(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	playlists := service.NewPlaylistService(conn, service.NewCollaborationService(conn))

	var objects export.ObjectStore
	if cfg.MinioEnabled() {
		minioStorage, err := storage.NewMinioStorage(cfg)
		if err != nil {
			return err
		}
		if err := minioStorage.EnsureBucket(ctx); err != nil {
			return err
		}
		objects = minioStorage
	}

	var mailer export.Mailer
	if cfg.SMTPEnabled() {
		smtpMailer, err := export.NewSMTPMailer(cfg)
		if err != nil {
			return err
		}
		mailer = smtpMailer
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := export.NewExporter(playlists, objects, mailer)
	return queue.NewExportQueue(client, cfg.ExportQueue).Consume(ctx, exporter.Handle)
}
