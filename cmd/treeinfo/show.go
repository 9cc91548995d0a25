package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-composite/composite"
	"github.com/robert-malhotra/go-composite/store"
)

var (
	nameText  = color.New(color.FgGreen).SprintFunc()
	kindText  = color.New(color.FgCyan).SprintFunc()
	emptyText = color.New(color.Faint).SprintFunc()
)

type showOptions struct {
	leaves    bool
	skipEmpty bool
	reverse   bool
	noSubTree bool
}

func newShowCmd(a *app) *cobra.Command {
	var o showOptions
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the nodes of a stored tree in traversal order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(true)
			if err != nil {
				return err
			}
			defer s.Close()

			t, info, err := s.Get(args[0])
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), info)
			showTree(cmd.OutOrStdout(), t, o)
			return nil
		},
	}
	cmd.Flags().BoolVar(&o.leaves, "leaves", false, "visit leaves only")
	cmd.Flags().BoolVar(&o.skipEmpty, "skip-empty", false, "skip empty slots")
	cmd.Flags().BoolVar(&o.reverse, "reverse", false, "visit children last to first")
	cmd.Flags().BoolVar(&o.noSubTree, "no-subtree", false, "do not descend into nested trees")
	return cmd
}

func showTree(w io.Writer, t *composite.Tree, o showOptions) {
	it := t.NewTreeIterator(
		composite.WithVisitOnlyLeaves(o.leaves),
		composite.WithTraverseSubTree(!o.noSubTree),
	)
	it.SetSkipEmptyNodes(o.skipEmpty)
	it.SetReverse(o.reverse)

	for it.InitTraversal(); !it.IsDoneWithTraversal(); it.GoToNextItem() {
		flat := "-"
		if !o.reverse {
			flat = fmt.Sprint(it.CurrentFlatIndex())
		}
		indent := strings.Repeat("  ", it.CurrentDepth()-1)
		var name string
		if it.HasCurrentMetaData() {
			name = it.CurrentMetaData().Name()
		}
		fmt.Fprintf(w, "%4s %s%-10s %s", flat, indent, composite.FormatIndex(it.CurrentIndex()), describe(it.CurrentDataObject()))
		if name != "" {
			fmt.Fprintf(w, " %s", nameText(name))
		}
		fmt.Fprintln(w)
	}
}

func describe(obj composite.DataObject) string {
	switch o := obj.(type) {
	case nil:
		return emptyText("<empty>")
	case *composite.Tree:
		return fmt.Sprintf("%s children=%d", kindText(o.Kind()), o.NumberOfChildren())
	case *composite.AMR:
		return fmt.Sprintf("%s levels=%d blocks=%d", kindText("AMR"), o.NumberOfLevels(), o.TotalNumberOfBlocks())
	case *composite.Collection:
		return fmt.Sprintf("%s items=%d points=%s", kindText("Collection"), o.NumberOfItems(), humanize.Comma(o.NumberOfPoints()))
	}
	return fmt.Sprintf("%T points=%s cells=%s size=%s",
		obj, humanize.Comma(obj.NumberOfPoints()), humanize.Comma(obj.NumberOfCells()),
		humanize.IBytes(uint64(obj.ActualMemorySize())))
}

func printInfo(w io.Writer, info store.Info) {
	compressed := ""
	if info.Compressed {
		compressed = ", snappy"
	}
	fmt.Fprintf(w, "%s: %d blocks, %s points, %s cells, %s%s, created %s\n",
		nameText(info.Name), info.Blocks, humanize.Comma(info.Points), humanize.Comma(info.Cells),
		humanize.IBytes(uint64(info.Size)), compressed, humanize.Time(info.Created))
}
