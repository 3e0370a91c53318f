package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"uiflow/application/commands"
	"uiflow/application/queries"
)

func (a *app) listCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored flow graph assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.container.QueryBus.Ask(cmd.Context(), queries.ListAssetsQuery{Prefix: prefix})
			if err != nil {
				return err
			}
			for _, name := range res.([]string) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only list assets starting with prefix")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	var enabledOnly bool
	cmd := &cobra.Command{
		Use:   "show <asset>",
		Short: "Print a flow graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ask(cmd.Context(), args[0], queries.GetGraphViewQuery{EnabledOnly: enabledOnly})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "only include enabled nodes")
	return cmd
}

func (a *app) screensCmd() *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "screens <asset>",
		Short: "List the screens referenced by window nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ask(cmd.Context(), args[0], queries.GetScreensQuery{Scope: scope})
			if err != nil {
				return err
			}
			result := res.(*queries.GetScreensResult)
			for _, name := range result.Screens {
				marker := " "
				if result.HasRoot && name == result.Root {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", queries.ScreensAll, "all, default or active")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	c := commands.CreateNodeCommand{}
	cmd := &cobra.Command{
		Use:   "add <asset> <window|container|default_link>",
		Short: "Add a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Kind = args[1]
			return a.edit(cmd, args[0], c)
		},
	}
	cmd.Flags().StringVar(&c.Title, "title", "", "display title")
	cmd.Flags().StringVar(&c.ScreenRef, "screen", "", "screen reference for window nodes")
	cmd.Flags().Float64Var(&c.X, "x", 0, "canvas x")
	cmd.Flags().Float64Var(&c.Y, "y", 0, "canvas y")
	cmd.Flags().Float64Var(&c.Width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&c.Height, "height", 0, "canvas height")
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <asset> <node>",
		Short: "Remove a node and every link pointing at it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], commands.DestroyNodeCommand{NodeID: id})
		},
	}
}

func (a *app) linkCmd() *cobra.Command {
	var oneWay bool
	var component string
	cmd := &cobra.Command{
		Use:   "link <asset> <source> <target>",
		Short: "Link two nodes, both ways unless --one-way is set",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], commands.AttachNodesCommand{
				SourceID:  ids[0],
				TargetID:  ids[1],
				OneWay:    oneWay,
				Component: component,
			})
		},
	}
	cmd.Flags().BoolVar(&oneWay, "one-way", false, "do not create the reverse link")
	cmd.Flags().StringVar(&component, "component", "", "component the link belongs to")
	return cmd
}

func (a *app) unlinkCmd() *cobra.Command {
	var oneWay bool
	var component string
	cmd := &cobra.Command{
		Use:   "unlink <asset> <source> <target>",
		Short: "Remove links between two nodes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], commands.DetachNodesCommand{
				SourceID:  ids[0],
				TargetID:  ids[1],
				OneWay:    oneWay,
				Component: component,
			})
		},
	}
	cmd.Flags().BoolVar(&oneWay, "one-way", false, "keep the reverse link")
	cmd.Flags().StringVar(&component, "component", "", "only remove links of this component")
	return cmd
}

func (a *app) tagCmd() *cobra.Command {
	var color int
	cmd := &cobra.Command{
		Use:   "tag <asset> <node> <title>",
		Short: "Tag a node, reusing an existing tag with the same title",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			c := commands.TagNodeCommand{NodeID: id, Title: args[2]}
			if cmd.Flags().Changed("color") {
				c.Color = &color
			}
			return a.edit(cmd, args[0], c)
		},
	}
	cmd.Flags().IntVar(&color, "color", 0, "tag color")
	return cmd
}

func (a *app) untagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untag <asset> <node> <tag>",
		Short: "Remove a tag from a node",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], commands.UntagNodeCommand{NodeID: ids[0], TagID: ids[1]})
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root <asset> <node>",
		Short: "Set the root node, 0 clears it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil || id < 0 {
				return fmt.Errorf("invalid node id %q", args[1])
			}
			return a.edit(cmd, args[0], commands.SetRootNodeCommand{NodeID: id})
		},
	}
}

func (a *app) defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults <asset> [node...]",
		Short: "Replace the default nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}
			return a.edit(cmd, args[0], commands.SetDefaultNodesCommand{NodeIDs: ids})
		},
	}
}
