package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cm-tools/church-admin/pkg/server"
	"github.com/cm-tools/church-admin/pkg/services/access"
	"github.com/cm-tools/church-admin/pkg/services/config"
	"github.com/cm-tools/church-admin/pkg/store/memory"
	"github.com/cm-tools/church-admin/pkg/store/memory/attendance"
	"github.com/cm-tools/church-admin/pkg/store/memory/directory"
	"github.com/cm-tools/church-admin/pkg/store/memory/report"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the church-admin web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "church-admin.yaml",
		"Path to the church-admin config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir, err := directory.NewSeededStore()
	if err != nil {
		return fmt.Errorf("failed to create directory store: %w", err)
	}

	attendanceStore, err := attendance.NewStore(attendance.Config{
		Directory:     dir,
		DefaultTenant: cfg.DefaultTenant,
	})
	if err != nil {
		return fmt.Errorf("failed to create attendance store: %w", err)
	}

	minLatency, maxLatency := cfg.LatencyBounds()
	reportStore, err := report.NewStore(report.Config{
		Directory:     dir,
		Latency:       memory.Latency{Min: minLatency, Max: maxLatency},
		DefaultTenant: cfg.DefaultTenant,
	})
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	checker := access.AllowAll()
	if len(cfg.Permissions) > 0 {
		policy := access.Policy{}
		for resource, actions := range cfg.Permissions {
			granted := make([]access.Action, 0, len(actions))
			for _, a := range actions {
				granted = append(granted, access.Action(a))
			}
			policy[access.Resource(resource)] = granted
		}
		checker = access.NewStaticChecker(policy)
	}

	ctx := logger.WithContext(cmd.Context())
	people, _ := dir.People(ctx)
	events, _ := dir.Events(ctx)
	logger.Info().
		Int("people", len(people)).
		Int("events", len(events)).
		Msg("directory seeded")
	for _, evt := range events {
		logger.Info().Msgf("Event: `%s` (%s)", evt.Name, evt.Type)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Attendance: attendanceStore,
			Reports:    reportStore,
			Directory:  dir,
			Access:     checker,
		},
	})

	return webAPI.Start()
}
