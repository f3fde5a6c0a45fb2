package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-fdnverb/internal/host"
)

func (a *app) modelsCmd() *cobra.Command {
	var regions bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the reverb models and their workspace layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.newHost()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "MODEL\tREGIONS\tUSED\tWORKSPACE")
			for _, m := range host.Models() {
				layout := h.Reverb(m).Layout()
				used := 0
				if len(layout) > 0 {
					used = layout[len(layout)-1].End()
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", m, len(layout), used, h.Workspace().Len())
				if regions {
					for i, r := range layout {
						fmt.Fprintf(tw, "  #%d\toffset=%d\tcapacity=%d\theadroom=%d\n", i, r.Offset, r.Capacity, r.Headroom)
					}
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&regions, "regions", false, "print every region of each layout")
	return cmd
}
