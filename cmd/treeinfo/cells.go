package main

import (
	"fmt"
	"maps"
	"runtime"
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-composite/filters"
)

func newCellsCmd(a *app) *cobra.Command {
	var (
		bounds  []float64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "cells <name>",
		Short: "Count the cells of each block that intersect a bounding box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := parseBounds(bounds)
			if err != nil {
				return err
			}
			if box == nil {
				return errors.New("--bounds is required")
			}

			s, err := a.openStore(true)
			if err != nil {
				return err
			}
			defer s.Close()

			t, _, err := s.Get(args[0])
			if err != nil {
				return err
			}
			masks, err := filters.SelectTreeCells(cmd.Context(), t, *box, workers)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, flat := range slices.Sorted(maps.Keys(masks)) {
				mask := masks[flat]
				n := 0
				for _, in := range mask {
					if in {
						n++
					}
				}
				fmt.Fprintf(w, "%4d %d/%d\n", flat, n, len(mask))
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&bounds, "bounds", nil, "xmin,xmax,ymin,ymax,zmin,zmax")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "parallel workers per block")
	return cmd
}
