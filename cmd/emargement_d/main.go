package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sorolassina/mca-api/emargement/api"
	"github.com/Sorolassina/mca-api/emargement/config"
	"github.com/Sorolassina/mca-api/emargement/modules/metrics"
	"github.com/Sorolassina/mca-api/emargement/modules/state"
	"github.com/Sorolassina/mca-api/emargement/repositories/membership"
	"github.com/Sorolassina/mca-api/emargement/services"
)

const (
	flagConfig           = "config"
	flagBaseURL          = "base_url"
	flagListenHost       = "listen_host"
	flagListenPort       = "listen_port"
	flagStateDBDSN       = "state_dbdsn"
	flagMembershipDSN    = "membership_dsn"
	flagNotificationSink = "notification_sink"
	flagSeed             = "seed"
)

// flag name -> config key
var boundFlags = map[string]string{
	flagBaseURL:          "base_url",
	flagListenHost:       "http_api.host",
	flagListenPort:       "http_api.port",
	flagStateDBDSN:       "state_dbdsn",
	flagMembershipDSN:    "membership_dsn",
	flagNotificationSink: "notification.sink",
}

func init() {
	rootCmd.PersistentFlags().String(flagConfig, "", "Path to the config file (yaml)")
	rootCmd.PersistentFlags().String(flagBaseURL, "http://localhost:8080", "Public base URL used in signing links")
	rootCmd.PersistentFlags().String(flagListenHost, "localhost", "HTTP API host")
	rootCmd.PersistentFlags().Int(flagListenPort, 8080, "HTTP API port")
	rootCmd.PersistentFlags().String(flagStateDBDSN, "./emargement_state", "State DBDSN")
	rootCmd.PersistentFlags().String(flagMembershipDSN, "", "Postgres DSN of the membership database, local state when empty")
	rootCmd.PersistentFlags().String(flagNotificationSink, config.SinkFile, "Notification sink: kafka, file or none")
}

func loadConfig(cmd *cobra.Command, validate bool) (*config.Config, error) {
	v := config.NewViper()
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if validate {
		return config.Load(v, path)
	}
	return config.Read(v, path)
}

// bindFlags lets explicitly set flags override the config file and environment
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range boundFlags {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func startCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "starts the emargement HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, true)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %w", err)
			}

			metrics.Register()

			if err = services.InitServices(cfg); err != nil {
				return fmt.Errorf("failed to init services: %w", err)
			}
			sp := services.App()
			defer func() {
				if err := sp.Close(); err != nil {
					sp.GetLogger().Error("failed to close services: %v", err)
				}
			}()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigs
				sp.GetLogger().Log("Received signal, stopping HTTP API...")
				cancel()
			}()

			if err = api.Run(ctx, cfg, sp); err != nil {
				return err
			}
			sp.GetLogger().Log("HTTP API stopped, exiting")
			return nil
		},
	}
}

func importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "imports events, programmes and enrollments from a yaml seed into the local state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, false)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %w", err)
			}
			if cfg.MembershipDSN != "" {
				return fmt.Errorf("membership is served by %s and is read-only", flagMembershipDSN)
			}

			seedPath, err := cmd.Flags().GetString(flagSeed)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %w", err)
			}
			seed, err := membership.LoadSeed(seedPath)
			if err != nil {
				return err
			}

			st, err := state.NewLevelDBState(cfg.StateDBDSN)
			if err != nil {
				return fmt.Errorf("failed to init state: %w", err)
			}
			defer st.Close()

			if err = seed.Import(cmd.Context(), membership.NewMembershipRepo(st)); err != nil {
				return err
			}
			fmt.Printf("imported %d programmes, %d events and %d enrollments into %s\n",
				len(seed.Programmes), len(seed.Events), len(seed.Enrollments), cfg.StateDBDSN)
			return nil
		},
	}
	cmd.Flags().String(flagSeed, "./membership.yaml", "Path to the membership seed")
	return cmd
}

var rootCmd = &cobra.Command{
	Use:   "emargement_d",
	Short: "attendance sign-off daemon",
}

func main() {
	rootCmd.AddCommand(
		startCommand(),
		importCommand(),
	)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute root command: %v", err)
	}
}
