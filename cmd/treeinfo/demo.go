package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-composite/composite"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo <name>",
		Short: "Store a sample tree under name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(false)
			if err != nil {
				return err
			}
			defer s.Close()

			info, err := s.Put(args[0], demoTree())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s as %s\n", nameText(info.Name), info.ID)
			printInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

// demoTree builds
//
//	root (MultiBlock)
//	├── 0: ring           point set, 16 points
//	├── 1: pieces         multipiece of a grid, an empty piece and a point set
//	├── 2: <empty>
//	├── 3: hierarchy      overlapping AMR with two levels
//	└── 4: probes         collection of points
func demoTree() *composite.Tree {
	root := composite.NewMultiBlock()

	root.SetChild(0, ring(16, 1))
	root.ChildMetaData(0).SetName("ring")

	pieces := composite.NewMultiPiece()
	pieces.SetChild(0, composite.NewUniformGrid([3]int{4, 4, 2}, [3]float64{-2, -2, 0}, [3]float64{1, 1, 1}))
	pieces.SetChild(2, ring(8, 3))
	pieces.ChildMetaData(2).SetName("outer")
	root.SetChild(1, pieces)
	root.ChildMetaData(1).SetName("pieces")

	root.SetNumberOfChildren(3)

	amr := composite.NewOverlappingAMR(1, 2)
	amr.SetSpacing(0, [3]float64{1, 1, 1})
	amr.SetSpacing(1, [3]float64{0.5, 0.5, 0.5})
	amr.SetDataSet(0, 0, composite.NewUniformGrid([3]int{5, 5, 5}, [3]float64{}, [3]float64{1, 1, 1}))
	amr.SetAMRBox(0, 0, composite.AMRBox{Hi: [3]int{3, 3, 3}})
	amr.SetDataSet(1, 0, composite.NewUniformGrid([3]int{3, 3, 3}, [3]float64{}, [3]float64{0.5, 0.5, 0.5}))
	amr.SetAMRBox(1, 0, composite.AMRBox{Hi: [3]int{1, 1, 1}})
	amr.SetDataSet(1, 1, composite.NewUniformGrid([3]int{3, 3, 3}, [3]float64{2, 2, 2}, [3]float64{0.5, 0.5, 0.5}))
	amr.SetAMRBox(1, 1, composite.AMRBox{Lo: [3]int{4, 4, 4}, Hi: [3]int{5, 5, 5}})
	root.SetChild(3, amr)
	root.ChildMetaData(3).SetName("hierarchy")

	probes := composite.NewCollection()
	for i := range 3 {
		probes.AddItem(composite.NewPointSet([][3]float64{{float64(i), 5, 0}}, [][]int{{0}}))
	}
	root.SetChild(4, probes)
	root.ChildMetaData(4).SetName("probes")

	return root
}

// ring returns n points on a circle of radius r joined by line cells.
func ring(n int, r float64) *composite.PointSet {
	pts := make([][3]float64, n)
	cells := make([][]int, n)
	temp := make([]float64, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = [3]float64{r * math.Cos(angle), r * math.Sin(angle), 0}
		cells[i] = []int{i, (i + 1) % n}
		temp[i] = float64(i)
	}
	ps := composite.NewPointSet(pts, cells)
	ps.SetField("temperature", temp)
	return ps
}
