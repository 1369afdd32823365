package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/fold/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available document templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := templates.List()
		if err != nil {
			return fmt.Errorf("listing templates: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Title, info.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
