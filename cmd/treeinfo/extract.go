package main

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-composite/filters"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		blocks []int
		bounds []float64
		prune  bool
	)
	cmd := &cobra.Command{
		Use:   "extract <name> <out>",
		Short: "Store the selected blocks of a tree as a new tree",
		Long: "Extract copies the blocks with the given flat indices, or the leaves\n" +
			"intersecting a bounding box, into a tree of the same shape stored as out.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := parseBounds(bounds)
			if err != nil {
				return err
			}
			if len(blocks) == 0 && box == nil {
				return errors.New("nothing selected, pass --blocks or --bounds")
			}

			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			defer s.Close()

			t, _, err := s.Get(args[0])
			if err != nil {
				return err
			}
			selected := slices.Clone(blocks)
			if box != nil {
				selected = append(selected, filters.SelectBlocksInBounds(t, *box)...)
			}
			a.log.Debug().Ints("blocks", selected).Msg("extracting")

			info, err := s.Put(args[1], filters.ExtractBlocks(t, selected, prune))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "extracted %d block(s) from %s\n", info.Blocks, nameText(args[0]))
			printInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&blocks, "blocks", nil, "flat indices of the blocks to keep")
	cmd.Flags().Float64SliceVar(&bounds, "bounds", nil, "xmin,xmax,ymin,ymax,zmin,zmax of the region to keep")
	cmd.Flags().BoolVar(&prune, "prune", false, "drop branches left empty")
	return cmd
}

func parseBounds(v []float64) (*[6]float64, error) {
	if len(v) == 0 {
		return nil, nil
	}
	if len(v) != 6 {
		return nil, errors.Errorf("bounds need 6 values, got %d", len(v))
	}
	var b [6]float64
	copy(b[:], v)
	for axis := range 3 {
		if b[2*axis] > b[2*axis+1] {
			return nil, errors.Errorf("bounds min %g is above max %g", b[2*axis], b[2*axis+1])
		}
	}
	return &b, nil
}
