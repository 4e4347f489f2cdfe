package main

import (
	"fmt"

	"git.fractalqb.de/fractalqb/graalmk"
	"git.fractalqb.de/fractalqb/graalmk/mkore"
	"github.com/spf13/cobra"
)

func (a *app) nativeImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "native-image",
		Aliases: []string{graalmk.TaskName},
		Short:   graalmk.Description,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session(cmd)
			if err != nil {
				return err
			}
			bd, err := mkore.NewBuilder(s.trace(cmd), s.env)
			if err != nil {
				return err
			}
			return bd.NamedGoals(s.prj, graalmk.TaskName)
		},
	}
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "print the native-image command line instead of running it")
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session(cmd)
			if err != nil {
				return err
			}
			data, err := s.cfg.TOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (a *app) graphCmd() *cobra.Command {
	var dia graalmk.Diagrammer
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the build graph of the project in Graphviz dot format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session(cmd)
			if err != nil {
				return err
			}
			return dia.WriteDot(cmd.OutOrStdout(), s.prj)
		},
	}
	cmd.Flags().StringVar(&dia.RankDir, "rankdir", "LR", "Graphviz rank direction")
	return cmd
}

func (a *app) cleanCmd() *cobra.Command {
	var dryrun bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the native-image output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.session(cmd)
			if err != nil {
				return err
			}
			if err := mkore.Clean(s.prj, dryrun, s.trace(cmd)); err != nil {
				return fmt.Errorf("clean %s: %w", s.prj, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryrun, "dry-run", "n", false, "only report what would be removed")
	return cmd
}
