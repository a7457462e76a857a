// list.go implements the "dockman list" command, the non-interactive
// way to get the container list. It prints the same summaries the
// interactive table shows, as text, JSON, or YAML.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/dockman/internal/docker"
	"github.com/shinji-kodama/dockman/internal/model"
	"github.com/shinji-kodama/dockman/internal/ui"
)

// listFlags holds the flag values for the list command.
type listFlags struct {
	// output selects the format: text, json, or yaml.
	output string
}

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List containers and exit",
		Long: `List containers without entering the interactive session.

Examples:
  dockman list
  dockman list --all
  dockman list -o json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), flags, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "text",
		"Output format: text, json, yaml")

	return cmd
}

// runList fetches the container list once and writes it to out in the
// requested format.
func runList(ctx context.Context, flags *listFlags, out io.Writer) error {
	if err := validateOutput(flags.output); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, err.Error(), nil)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Ping(ctx); err != nil {
		return err
	}

	containers, err := client.List(ctx, cfg.ShowAll || showAll)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "cannot list containers", err)
	}

	return printContainers(out, flags.output, containers)
}

// validateOutput rejects unknown format names before any daemon work.
func validateOutput(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("invalid output format %q: valid values are text, json, yaml", format)
	}
}

// printContainers renders the summaries in the chosen format. JSON and
// YAML marshal the model types directly, so scripted consumers get the
// same field names the config file uses.
func printContainers(out io.Writer, format string, containers []model.ContainerSummary) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(containers)

	case "yaml":
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(containers)

	default:
		printContainerTable(out, containers, time.Now())
		return nil
	}
}

// printContainerTable writes the text listing. Unlike the interactive
// table it has no selection index column; names come first so the
// output pipes cleanly into awk and friends.
func printContainerTable(out io.Writer, containers []model.ContainerSummary, now time.Time) {
	if len(containers) == 0 {
		fmt.Fprintln(out, "No containers found.")
		return
	}

	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tIMAGE\tSTATUS\tPORTS\tCREATED\tID")
	for _, ctr := range containers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ctr.Name,
			ctr.Image,
			ctr.Status,
			ui.FormatPorts(ctr.Ports),
			ui.FormatAge(ctr.CreatedAt, now),
			ctr.ShortID(),
		)
	}
	tw.Flush()
}
