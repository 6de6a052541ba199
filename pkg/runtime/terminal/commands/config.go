package commands

import (
	"context"
	"fmt"

	"github.com/agroinform/prices-web/pkg/adapters"
	"github.com/agroinform/prices-web/pkg/models/api"
	"github.com/agroinform/prices-web/pkg/runtime/terminal/export"
	"github.com/agroinform/prices-web/pkg/services/config"
	"github.com/spf13/cobra"
)

// ConfigAPI fetches the runtime config from a running web host.
type ConfigAPI interface {
	GetConfig(ctx context.Context) (*api.RuntimeConfig, error)
}

type ConfigAPIFactory func() (ConfigAPI, error)

type ConfigCmd struct {
	newAPI       ConfigAPIFactory
	reporter     *export.Reporter
	remote       bool
	environment  string
	configFile   string
	profilesFile string
}

func NewConfigCmd(newAPI ConfigAPIFactory, reporter *export.Reporter) *cobra.Command {
	cc := &ConfigCmd{newAPI: newAPI, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved application configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the runtime configuration for an environment",
		Args:  cobra.NoArgs,
		RunE:  cc.show,
	}
	show.Flags().BoolVar(&cc.remote, "remote", false, "Ask the running web host instead of resolving locally")
	show.Flags().StringVar(&cc.environment, "env", string(config.EnvironmentProduction), "Deployment environment (development or production)")
	show.Flags().StringVar(&cc.configFile, "config", "", "Optional config file overlay")
	show.Flags().StringVar(&cc.profilesFile, "profiles", "", "Optional INI file with environment profiles")
	cmd.AddCommand(show)

	return cmd
}

func (cc *ConfigCmd) show(cmd *cobra.Command, _ []string) error {
	if cc.remote {
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		client, err := cc.newAPI()
		if err != nil {
			return fmt.Errorf("failed to create config client: %w", err)
		}
		cfg, err := client.GetConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		return cc.reporter.HandleConfig(cfg)
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:   cc.configFile,
		ProfilesFile: cc.profilesFile,
		Environment:  config.ParseEnvironment(cc.environment),
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	runtime := adapters.MapRuntimeConfigToApi(cfg)
	return cc.reporter.HandleConfig(&runtime)
}
