package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayanaadylkhanova/barnum/internal/relabel"
	"github.com/dayanaadylkhanova/barnum/internal/transform"
	"github.com/dayanaadylkhanova/barnum/internal/widget"
)

func newWidgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widget KIND",
		Short: "Render one widget",
		Long: `Render one widget and print its HTML fragment.

Examples:
  barnum-render widget feature-figure --attr url=/api/perceval/n-signalements-total --attr field=n_signalements_total
  barnum-render widget category-chart --attr url=/api/perceval/age-category --attr transform=percevalAgeCat --tag month
  barnum-render widget timeline-chart --attr url=/api/pre-plainte-en-ligne/preplaintes-timeline \
      --attr label-key=time_dim --attr value-key=n_preplaintes --start 2022-04-01 --end 2022-05-01`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: widget.Kinds(),
		RunE:      runWidget,
	}
	cmd.Flags().StringToString("attr", nil, "data-* attribute, without the prefix (repeatable)")
	cmd.Flags().String("tag", "", "selected tag")
	cmd.Flags().String("start", "", "selected start date")
	cmd.Flags().String("end", "", "selected end date")
	cmd.Flags().Duration("timeout", 30*time.Second, "request timeout")
	return cmd
}

func runWidget(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("base-url")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	attrs, _ := cmd.Flags().GetStringToString("attr")
	tag, _ := cmd.Flags().GetString("tag")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	deps := widget.Deps{
		Source: widget.HTTPSource{
			BaseURL:  baseURL,
			Client:   &http.Client{Timeout: timeout},
			Username: username,
			Password: password,
		},
		Transforms: transform.NewRegistry(relabel.Default()),
	}
	w, err := widget.Build(args[0], deps, widget.Attributes(attrs))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	if err := w.UpdateData(ctx, widget.Selection{Tag: tag, Start: start, End: end}); err != nil {
		return err
	}
	return w.Render(cmd.OutOrStdout())
}
