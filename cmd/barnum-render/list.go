package main

import (
	"github.com/spf13/cobra"

	"github.com/dayanaadylkhanova/barnum/internal/relabel"
	"github.com/dayanaadylkhanova/barnum/internal/transform"
	"github.com/dayanaadylkhanova/barnum/internal/widget"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List widget kinds or transforms",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "kinds",
			Short: "List widget kinds",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				printLines(cmd, widget.Kinds())
			},
		},
		&cobra.Command{
			Use:   "transforms",
			Short: "List data-transform names",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				printLines(cmd, transform.NewRegistry(relabel.Default()).Names())
			},
		},
	)
	return cmd
}
