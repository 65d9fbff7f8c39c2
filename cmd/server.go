package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"openmusic/cache"
	"openmusic/core/auth"
	"openmusic/db"
	"openmusic/logger"
	"openmusic/queue"
	"openmusic/server"
	"openmusic/service"
	"openmusic/storage"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动OpenMusic服务器",
	Long:  `Start the HTTP API. Redis and MinIO backed features are enabled when configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	conn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	gormDB, err := db.OpenGorm(conn)
	if err != nil {
		return err
	}

	albums := service.NewAlbumService(conn)
	collaborations := service.NewCollaborationService(conn)
	deps := server.Dependencies{
		Albums:          albums,
		Songs:           service.NewSongService(conn),
		Users:           service.NewUserService(conn),
		Authentications: service.NewAuthenticationService(conn),
		Tokens:          auth.NewTokenManager(cfg.AccessTokenKey, cfg.RefreshTokenKey, cfg.AccessTokenMaxAge()),
		Playlists:       service.NewPlaylistService(conn, collaborations),
		Activities:      service.NewActivityService(gormDB),
		Collaborations:  collaborations,
	}

	// The likes cache stays a nil interface when Redis is off.
	var likesCache service.LikesCache
	if cfg.RedisEnabled() {
		client, err := db.ConnectRedis(cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		logger.Info("Successfully connected to Redis")

		likesCache = cache.NewAlbumLikesCache(client)
		deps.Exports = queue.NewExportQueue(client, cfg.ExportQueue)
	} else {
		logger.Warn("REDIS_HOST not set, album likes are not cached and playlist export is disabled")
	}
	deps.Likes = service.NewAlbumLikeService(conn, albums, likesCache)

	if cfg.MinioEnabled() {
		objects, err := storage.NewMinioStorage(cfg)
		if err != nil {
			return err
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			return err
		}
		deps.Covers = objects
	} else {
		logger.Warn("MINIO_ENDPOINT not set, album cover upload is disabled")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, cfg.Addr(), server.NewRouter(deps))
}
