package terminal

import (
	"io"
	"os"

	"github.com/agroinform/prices-web/pkg/runtime/terminal/commands"
	"github.com/agroinform/prices-web/pkg/runtime/terminal/export"
	"github.com/agroinform/prices-web/pkg/store/client"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://127.0.0.1:3000"

// APIFactory builds the web host client for a server URL.
type APIFactory func(serverURL string) (API, error)

// API is everything the CLI asks of a running web host.
type API interface {
	commands.StateAPI
	commands.ConfigAPI
}

// CLI represents the command-line interface
type CLI struct {
	serverURL string
	newAPI    APIFactory
	reporter  *export.Reporter
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// NewAPI defaults to an HTTP client for the state API.
	NewAPI APIFactory
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.NewAPI == nil {
		opts.NewAPI = NewHTTPAPI
	}

	cli := &CLI{
		newAPI:   opts.NewAPI,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

// NewHTTPAPI talks to the web host over HTTP.
func NewHTTPAPI(serverURL string) (API, error) {
	c, err := client.New(serverURL, client.NewHTTPClient())
	if err != nil {
		return nil, err
	}
	return client.NewStateClient(c), nil
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prices",
		Short:         "Market prices web host companion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&cli.serverURL, "server", defaultServerURL, "Base URL of the running web host")

	cmd.AddCommand(commands.NewStateCmd(func() (commands.StateAPI, error) {
		return cli.newAPI(cli.serverURL)
	}, cli.reporter))
	cmd.AddCommand(commands.NewConfigCmd(func() (commands.ConfigAPI, error) {
		return cli.newAPI(cli.serverURL)
	}, cli.reporter))

	return cmd
}
