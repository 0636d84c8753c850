/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/jungle-shop/storefront/config"
	"github.com/jungle-shop/storefront/internal/logger"
	"github.com/jungle-shop/storefront/internal/mq"
	"github.com/jungle-shop/storefront/internal/worker"
	"github.com/spf13/cobra"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consumes storefront domain events",
	Long: `Consumes events published by the storefront server. Requires MQ_BACKEND. Usage:

	storefront worker
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		slog.SetDefault(logger.New(cfg.Log))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		broker, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return fmt.Errorf("init message queue: %w", err)
		}
		if broker == nil {
			return errors.New("MQ_BACKEND is required")
		}
		defer func() {
			_ = broker.Close()
		}()

		return worker.Run(ctx, broker)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
