package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uiflow/application/commands"
	"uiflow/application/commands/bus"
	querybus "uiflow/application/queries/bus"
	"uiflow/infrastructure/config"
	"uiflow/infrastructure/di"
)

// app carries the container between the root pre-run and the subcommands
type app struct {
	storeDir    string
	showMetrics bool
	container   *di.Container
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "flowctl",
		Short:         "Edit flow graph assets",
		Long:          "flowctl edits the flow graphs that connect UI screens: nodes, links, tags and entry points.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.container == nil {
				return nil
			}
			if a.showMetrics {
				if err := a.printMetrics(cmd); err != nil {
					return err
				}
			}
			return a.container.Shutdown(cmd.Context(), false)
		},
	}
	root.PersistentFlags().StringVar(&a.storeDir, "store-dir", "", "directory holding flow graph assets (overrides FLOW_STORE_DIR)")
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "print collected metrics to stderr on exit")

	root.AddCommand(
		a.listCmd(),
		a.showCmd(),
		a.screensCmd(),
		a.addCmd(),
		a.removeCmd(),
		a.linkCmd(),
		a.unlinkCmd(),
		a.tagCmd(),
		a.untagCmd(),
		a.rootCmd(),
		a.defaultsCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if a.storeDir != "" {
		cfg.StoreBackend = config.StoreBackendFile
		cfg.StoreDir = a.storeDir
	}

	container, err := di.InitializeContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	a.container = container
	return nil
}

// edit opens asset, sends the commands in order and saves the result
func (a *app) edit(cmd *cobra.Command, asset string, cmds ...bus.Command) error {
	ctx := cmd.Context()
	if _, err := a.container.Session.Open(ctx, asset); err != nil {
		return err
	}
	for _, c := range cmds {
		if err := a.container.CommandBus.Send(ctx, c); err != nil {
			return err
		}
	}
	if err := a.container.CommandBus.Send(ctx, commands.SaveGraphCommand{}); err != nil {
		return err
	}

	a.container.Logger.Debug("Edited flow graph",
		zap.String("asset", asset),
		zap.Int("commands", len(cmds)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", asset)
	return nil
}

// ask opens asset and runs a query against it
func (a *app) ask(ctx context.Context, asset string, query querybus.Query) (interface{}, error) {
	if _, err := a.container.Session.Open(ctx, asset); err != nil {
		return nil, err
	}
	return a.container.QueryBus.Ask(ctx, query)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid node id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (a *app) printMetrics(cmd *cobra.Command) error {
	samples, err := a.container.Metrics.Snapshot()
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(samples))
	for _, s := range samples {
		labels := make([]string, 0, len(s.Labels))
		for k, v := range s.Labels {
			labels = append(labels, fmt.Sprintf("%s=%q", k, v))
		}
		sort.Strings(labels)
		name := s.Name
		if len(labels) > 0 {
			name += "{" + strings.Join(labels, ",") + "}"
		}
		lines = append(lines, fmt.Sprintf("%s %g", name, s.Value))
	}
	sort.Strings(lines)

	for _, line := range lines {
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}
	return nil
}
