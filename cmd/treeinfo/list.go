package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-composite/store"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(true)
			if err != nil {
				return err
			}
			defer s.Close()

			infos, err := s.List()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(w, emptyText("no trees stored"))
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(w, "%-16s %s %6d blocks %10s points %8s  %s\n",
					nameText(info.Name), info.ID, info.Blocks, humanize.Comma(info.Points),
					humanize.IBytes(uint64(info.Size)), humanize.Time(info.Created))
			}
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>...",
		Short: "Delete stored trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, name := range args {
				if err := s.Delete(name); err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return errors.Errorf("no tree named %q", name)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", nameText(name))
			}
			return nil
		},
	}
}
