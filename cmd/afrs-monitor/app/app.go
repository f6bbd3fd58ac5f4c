package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/cmd/afrs-monitor/app/options"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
)

const (
	commandName = "afrs-monitor"
	commandDesc = `The AFRS monitor ingests the fleet telemetry and alert stream,
reconciles it into a live in-memory model and serves the derived
operator dashboards: triage groups, rolling KPI series and the
incident heat map.`
)

// NewMonitorCommand builds the root command with its subcommands.
func NewMonitorCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           commandName,
		Short:         "Launch the AFRS fleet monitor",
		Long:          commandDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newFleetCommand())

	return root
}

func newServeCommand() *cobra.Command {
	opts := options.NewMonitorServerOptions()
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the monitor server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(configFile, cmd, opts); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			log.Init(opts.Log)

			cfg, err := opts.Config()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			m, err := cfg.NewMonitor()
			if err != nil {
				return fmt.Errorf("failed to create monitor: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return m.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file.")
	opts.AddFlags(cmd.Flags())

	return cmd
}

// loadConfig merges, lowest precedence first: defaults, the config file,
// AFRS_* environment variables, then explicit command-line flags. The config
// file is watched afterwards so a changed log level applies without restart.
func loadConfig(configFile string, cmd *cobra.Command, opts *options.MonitorServerOptions) error {
	v := viper.New()
	v.SetEnvPrefix("AFRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		v.OnConfigChange(func(fsnotify.Event) {
			level := v.GetString("log.level")
			log.Info("Config file changed, applying log level", "level", level)
			log.SetLevel(level)
		})
		v.WatchConfig()
	}

	return v.Unmarshal(opts)
}
