package cmd

import (
	"context"
	"fmt"
	"time"

	"openmusic/cache"
	"openmusic/db"
	"openmusic/storage"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "连接测试",
	Long:  `Check connectivity to MySQL and, when configured, Redis and MinIO.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		conn, err := db.ConnectDB(cfg)
		if err != nil {
			return err
		}
		conn.Close()
		fmt.Println("MySQL连接成功！")

		if cfg.RedisEnabled() {
			client, err := db.ConnectRedis(cfg)
			if err != nil {
				return err
			}
			defer client.Close()
			if err := cache.CheckRedis(ctx, client); err != nil {
				return fmt.Errorf("Redis操作测试失败: %w", err)
			}
			fmt.Println("Redis基本操作测试成功！")
		}

		if cfg.MinioEnabled() {
			objects, err := storage.NewMinioStorage(cfg)
			if err != nil {
				return err
			}
			if err := objects.EnsureBucket(ctx); err != nil {
				return err
			}
			fmt.Println("MinIO连接成功！")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
