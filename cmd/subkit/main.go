package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/subkitapp/subkit/internal/common"
	"github.com/subkitapp/subkit/internal/config"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "subkit",
		Short: "Recurring-commitment tracker and decision engine",
		Long: `subkit keeps track of your subscriptions, installments, and insurance
premiums, and tells you what to look at next: duplicate services,
cancellation candidates, or payments coming up this week.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/subkit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("db", "", "database path (default: $HOME/.local/share/subkit/subkit.db)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(overviewCmd())
	rootCmd.AddCommand(itemsCmd())
	rootCmd.AddCommand(commitmentsCmd())
	rootCmd.AddCommand(duplicatesCmd())
	rootCmd.AddCommand(candidatesCmd())
	rootCmd.AddCommand(upcomingCmd())
	rootCmd.AddCommand(usageCheckCmd())
	rootCmd.AddCommand(goalsCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.DefaultConfigDir()
		if err != nil {
			return fmt.Errorf("failed to get config directory: %w", err)
		}
		viper.AddConfigPath(dir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SUBKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return common.NewUserError("failed to read config file", err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("logging.level"))); err != nil {
		level = slog.LevelInfo
	}
	common.SetupLogger(level, viper.GetString("logging.format"))

	if viper.GetString("database.path") == "" {
		viper.Set("database.path", filepath.ToSlash(config.DefaultDBPath()))
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the subkit version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("subkit %s\n", version)
		},
	}
}
