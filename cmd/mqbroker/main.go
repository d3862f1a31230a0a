package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	_ "mqbroker/cmd/mqbroker/docs"

	"mqbroker/internal/config"
	"mqbroker/internal/constants"
	"mqbroker/internal/logger"
	"mqbroker/pkg/logging"
)

var (
	configFile string
	host       string
	port       int
)

// @title           MQ Broker API
// @version         1.0
// @description     In-memory XML message queue with FIFO consumption and JSON filtered search

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      127.0.0.1:1234
// @BasePath  /

// @schemes   http

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           constants.ServiceName,
		Short:         "In-memory XML message broker",
		Long:          "mqbroker accepts XML messages over HTTP, hands them out in FIFO order and searches them with a JSON filter",
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (optional, CONFIG_FILE)")
	rootCmd.PersistentFlags().AddFlagSet(serverFlags())

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

func serverFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	fs.IntVarP(&port, "port", "p", constants.DefaultPort, "Port to listen on")
	fs.StringVar(&host, "host", constants.DefaultHost, "Address to bind")
	return fs
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the broker",
		RunE:  runServe,
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	earlyLog := logging.NewEarlyLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		earlyLog.Error("Failed to load config: %v", err)
		return err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		earlyLog.Error("Failed to init logger: %v", err)
		return err
	}
	if sl, ok := log.(*logger.SugaredLogger); ok {
		sl.SetServiceName(constants.ServiceName)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.InfowCtx(ctx, "Starting broker", "host", cfg.Server.Host, "port", cfg.Server.Port)

	app := NewApp(cfg, log)
	if err := app.Initialize(ctx); err != nil {
		log.ErrorwCtx(ctx, "Failed to initialize application", "error", err)
		return err
	}

	if err := app.Run(ctx); err != nil {
		log.ErrorwCtx(ctx, "Application error", "error", err)
		return err
	}
	return nil
}

// loadConfig reads the config file, then applies --host and --port when they
// were given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = host
	}
	if flags.Changed("port") {
		cfg.Server.Port = port
	}

	if err := config.ValidateStatic(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
