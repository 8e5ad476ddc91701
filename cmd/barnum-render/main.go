// Command barnum-render renders one dashboard widget against a running API
// and prints the HTML fragment.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "barnum-render",
		Short:         "Render dashboard widgets from the statistics API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("base-url", envOr("BARNUM_BASE_URL", "http://localhost:3000"), "API base URL")
	root.PersistentFlags().String("username", envOr("APP_USERNAME", "user"), "basic auth user")
	root.PersistentFlags().String("password", os.Getenv("APP_PASSWORD"), "basic auth password")

	root.AddCommand(newWidgetCmd(), newListCmd())
	return root
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func printLines(cmd *cobra.Command, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), l)
	}
}
