package main

import (
	"fmt"
	"os"

	"github.com/agroinform/prices-web/pkg/models/domain"
	"github.com/agroinform/prices-web/pkg/server"
	"github.com/agroinform/prices-web/pkg/services/analytics"
	"github.com/agroinform/prices-web/pkg/services/config"
	"github.com/agroinform/prices-web/pkg/services/page"
	"github.com/agroinform/prices-web/pkg/services/plugins"
	"github.com/agroinform/prices-web/pkg/services/state"
	"github.com/agroinform/prices-web/pkg/store/client"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profilesPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the market prices web host",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Optional config file overlaying the built-in defaults")
	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", "",
		"Optional INI file with per environment endpoints")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load()

	settings, err := config.ParseServerSettings()
	if err != nil {
		return fmt.Errorf("failed to read server settings: %w", err)
	}

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if envErr != nil {
		logger.Debug().Err(envErr).Msg("no .env file loaded")
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:   cfgPath,
		ProfilesFile: profilesPath,
		Environment:  config.ParseEnvironment(settings.Environment),
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Info().
		Str("environment", string(cfg.Environment)).
		Str("base_url", cfg.HTTP.BaseURL).
		Str("pdf_service_url", cfg.PublicRuntime.PDFServiceURL).
		Msg("configuration loaded")

	store := state.NewStore()
	store.Subscribe(func(st domain.State) {
		logger.Debug().
			Str("country_id", st.CountryID).
			Bool("loading", st.Loading).
			Bool("weekly_report_cached", st.WeeklyReport.CachedAt != nil).
			Msg("state changed")
	})

	document := page.NewDocument(cfg)
	dataLayer := &analytics.Holder{}
	loader := analytics.NewLoader(client.NewHTTPClient())

	registry := plugins.NewRegistry(plugins.Builtin())
	err = registry.Run(ctx, plugins.App{
		Config:    cfg,
		Document:  document,
		DataLayer: dataLayer,
		Loader:    loader,
	}, cfg.Plugins)
	if err != nil {
		return fmt.Errorf("failed to run startup plugins: %w", err)
	}

	web := server.NewWebAPI(server.Config{
		Addr:            settings.Addr(),
		ShutdownTimeout: settings.ShutdownTimeout,
		ReportMaxAge:    settings.ReportMaxAge,
		Dependencies: server.Dependencies{
			Config:    cfg,
			Store:     store,
			Document:  document,
			DataLayer: dataLayer,
			Logger:    logger,
		},
	})

	err = web.Start()
	loader.Wait()
	return err
}
