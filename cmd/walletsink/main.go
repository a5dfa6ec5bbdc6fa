package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/solstream/walletsink/internal/cliconfig"
	"github.com/solstream/walletsink/pkg/log"
	"github.com/solstream/walletsink/pkg/walletsink"
)

const helpDescription = `
Forward wallet account-update events from NATS into ClickHouse.

Highlights:
  - Batches by row count and flush interval, whichever fires first.
  - Bulk-inserts each batch as one JSONEachRow request over ClickHouse HTTP.
  - Optional address filter to forward only configured accounts.
  - Configure via file, environment (WALLETSINK_*), or flags.

Delivery is at-least-once and lossy on sink failure: a failed insert is
logged and its batch is dropped.
`

var exampleUsage = strings.TrimSpace(`
  walletsink --subject WALLET.updates --table wallet_account_updates
  walletsink --config $HOME/.walletsink/config.toml --batch-size 500
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "walletsink",
		Short:   "Forward wallet account-update events from NATS into ClickHouse",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.walletsink/config.toml),
			// then environment, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (WALLETSINK_*), optionally from a
			// .env file. These override file config but are overridden by
			// flags (checked via changed map).
			_ = godotenv.Load()
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			// Log configuration (masking the sink password)
			logCfg := cfg
			if len(logCfg.Password) > 0 {
				logCfg.Password = "*****"
			}
			logger.Info().Interface("config", logCfg).Msg("configuration")

			libCfg := walletsink.Config{
				NATSURL:         cfg.NATSURL,
				Subject:         cfg.Subject,
				ClickHouseURL:   cfg.ClickHouseURL,
				Username:        cfg.Username,
				Password:        cfg.Password,
				Database:        cfg.Database,
				Table:           cfg.Table,
				BatchSize:       cfg.BatchSize,
				FlushInterval:   cfg.FlushInterval,
				HTTPTimeout:     cfg.HTTPTimeout,
				FilterAddresses: cfg.FilterAddresses,
				MetricsAddr:     cfg.MetricsAddr,
			}

			sink, err := walletsink.New(libCfg,
				walletsink.WithLogger(log.NewZerologAdapterWithLogger(logger)),
			)
			if err != nil {
				return fmt.Errorf("create walletsink: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := sink.Start(ctx); err != nil {
				return fmt.Errorf("start walletsink: %w", err)
			}

			// Watch for crash (permanently closed subscription) so the
			// process exits instead of idling with a dead loop.
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if sink.Status() == walletsink.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				logger.Info().Msg("received signal, stopping...")
				if err := sink.Stop(); err != nil {
					return fmt.Errorf("stop walletsink: %w", err)
				}
				return nil
			case <-doneCh:
				return fmt.Errorf("walletsink crashed")
			}
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.walletsink/config.toml)")
	root.Flags().StringVar(&cfg.NATSURL, "nats-url", cfg.NATSURL, "message bus address")
	root.Flags().StringVar(&cfg.Subject, "subject", cfg.Subject, "subscription subject")
	root.Flags().StringVar(&cfg.ClickHouseURL, "clickhouse-url", cfg.ClickHouseURL, "ClickHouse HTTP endpoint")
	root.Flags().StringVar(&cfg.Username, "user", cfg.Username, "ClickHouse username")
	root.Flags().StringVar(&cfg.Password, "password", cfg.Password, "ClickHouse password")
	root.Flags().StringVar(&cfg.Database, "database", cfg.Database, "target database")
	root.Flags().StringVar(&cfg.Table, "table", cfg.Table, "target table")
	root.Flags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "rows per batch before a size-triggered flush")
	root.Flags().DurationVar(&cfg.FlushInterval, "flush-interval", cfg.FlushInterval, "timer-triggered flush period")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "per-flush HTTP timeout")
	root.Flags().StringSliceVar(&cfg.FilterAddresses, "filter-address", cfg.FilterAddresses, "forward only these base58 account addresses (repeatable)")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus listen address (empty: disabled)")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("walletsink")
		os.Exit(1)
	}
}
