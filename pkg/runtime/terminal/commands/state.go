package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/agroinform/prices-web/pkg/models/api"
	"github.com/agroinform/prices-web/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

const requestTimeout = 30 * time.Second

// StateAPI is the remote state store of a running web host.
type StateAPI interface {
	GetState(ctx context.Context) (*api.State, error)
	MergeWeeklyReport(ctx context.Context, patch json.RawMessage) (*api.WeeklyReport, error)
	ClearWeeklyReport(ctx context.Context) (*api.WeeklyReport, error)
	SetCountryID(ctx context.Context, value string) error
	SetLoading(ctx context.Context, value bool) error
}

// StateAPIFactory builds the client once flags have been parsed.
type StateAPIFactory func() (StateAPI, error)

type StateCmd struct {
	newAPI   StateAPIFactory
	reporter *export.Reporter
	file     string
}

func NewStateCmd(newAPI StateAPIFactory, reporter *export.Reporter) *cobra.Command {
	sc := &StateCmd{newAPI: newAPI, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and change the state held by a running web host",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current state",
		Args:  cobra.NoArgs,
		RunE:  sc.show,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Reset the weekly report cache",
		Args:  cobra.NoArgs,
		RunE:  sc.clear,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "country <id>",
		Short: "Set the selected country (use \"\" to unset)",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.country,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "loading <true|false>",
		Short: "Set the loading flag",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.loading,
	})

	merge := &cobra.Command{
		Use:   "merge",
		Short: "Merge a partial weekly report (JSON object) into the cache",
		Args:  cobra.NoArgs,
		RunE:  sc.merge,
	}
	merge.Flags().StringVarP(&sc.file, "file", "f", "-", "Path to the JSON patch, - for stdin")
	cmd.AddCommand(merge)

	return cmd
}

func (sc *StateCmd) show(cmd *cobra.Command, _ []string) error {
	return sc.withAPI(cmd, func(ctx context.Context, client StateAPI) error {
		st, err := client.GetState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}
		return sc.reporter.HandleState(st)
	})
}

func (sc *StateCmd) clear(cmd *cobra.Command, _ []string) error {
	return sc.withAPI(cmd, func(ctx context.Context, client StateAPI) error {
		if _, err := client.ClearWeeklyReport(ctx); err != nil {
			return fmt.Errorf("failed to clear weekly report: %w", err)
		}
		return sc.printState(ctx, client)
	})
}

func (sc *StateCmd) country(cmd *cobra.Command, args []string) error {
	return sc.withAPI(cmd, func(ctx context.Context, client StateAPI) error {
		if err := client.SetCountryID(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to set country: %w", err)
		}
		return sc.printState(ctx, client)
	})
}

func (sc *StateCmd) loading(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseBool(args[0])
	if err != nil {
		return fmt.Errorf("invalid loading value %q: %w", args[0], err)
	}
	return sc.withAPI(cmd, func(ctx context.Context, client StateAPI) error {
		if err := client.SetLoading(ctx, value); err != nil {
			return fmt.Errorf("failed to set loading: %w", err)
		}
		return sc.printState(ctx, client)
	})
}

func (sc *StateCmd) merge(cmd *cobra.Command, _ []string) error {
	patch, err := sc.readPatch(cmd.InOrStdin())
	if err != nil {
		return err
	}
	return sc.withAPI(cmd, func(ctx context.Context, client StateAPI) error {
		if _, err := client.MergeWeeklyReport(ctx, patch); err != nil {
			return fmt.Errorf("failed to merge weekly report: %w", err)
		}
		return sc.printState(ctx, client)
	})
}

func (sc *StateCmd) readPatch(stdin io.Reader) (json.RawMessage, error) {
	var (
		data []byte
		err  error
	)
	if sc.file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(sc.file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read patch: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("patch must be a JSON object: %w", err)
	}
	if probe == nil {
		return nil, fmt.Errorf("patch must be a JSON object, got null")
	}
	return data, nil
}

func (sc *StateCmd) printState(ctx context.Context, client StateAPI) error {
	st, err := client.GetState(ctx)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}
	return sc.reporter.HandleState(st)
}

func (sc *StateCmd) withAPI(cmd *cobra.Command, fn func(ctx context.Context, client StateAPI) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	client, err := sc.newAPI()
	if err != nil {
		return fmt.Errorf("failed to create state client: %w", err)
	}
	return fn(ctx, client)
}
