// render.go contains the presentation helpers of the interactive
// session: the numbered container table, the stats and detail views,
// and the small formatting functions they share.
package ui

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/shinji-kodama/dockman/internal/model"
)

// Styles used across the session. fatih/color degrades to plain text
// when color is disabled (NoColor, piped output).
var (
	styleTitle   = color.New(color.FgBlue, color.Bold)
	styleSuccess = color.New(color.FgGreen)
	styleError   = color.New(color.FgRed)
	styleWarn    = color.New(color.FgYellow)
	styleInfo    = color.New(color.FgCyan)
)

// statusStyle picks a color for a container status: green for running,
// yellow for the transitional states, red for the rest.
func statusStyle(status model.ContainerStatus) *color.Color {
	switch status {
	case model.StatusRunning:
		return styleSuccess
	case model.StatusPaused, model.StatusRestarting, model.StatusCreated:
		return styleWarn
	default:
		return styleError
	}
}

// RenderContainerTable writes the numbered container table the main menu
// shows. The index column is what the user types to select a container.
func RenderContainerTable(w io.Writer, containers []model.ContainerSummary, now time.Time) {
	if len(containers) == 0 {
		fmt.Fprintln(w, styleWarn.Sprint("No containers found."))
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tNAME\tIMAGE\tSTATUS\tCREATED\tID")
	for i, ctr := range containers {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			ctr.Name,
			ctr.Image,
			statusStyle(ctr.Status).Sprint(ctr.Status),
			FormatAge(ctr.CreatedAt, now),
			ctr.ShortID(),
		)
	}
	tw.Flush()
}

// RenderResult surfaces an ActionResult before the menu redraws:
// green check for success, red cross for failure, yellow for a
// cancelled stream.
func RenderResult(w io.Writer, result model.ActionResult) {
	switch {
	case result.Kind == model.ErrCancelled:
		fmt.Fprintln(w, styleWarn.Sprintf("⚠ %s", result.Message))
	case result.Success:
		fmt.Fprintln(w, styleSuccess.Sprintf("✔ %s", result.Message))
	default:
		fmt.Fprintln(w, styleError.Sprintf("✗ %s", result.Message))
	}
}

// RenderStats writes the one-shot resource usage view for a container.
func RenderStats(w io.Writer, target model.ContainerSummary, stats model.ContainerStats) {
	fmt.Fprintln(w, styleTitle.Sprintf("Stats: %s", target.Name))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  CPU\t%.1f%%\n", stats.CPUPercent)
	fmt.Fprintf(tw, "  Memory\t%s / %s (%.1f%%)\n",
		FormatBytes(stats.MemoryUsage), FormatBytes(stats.MemoryLimit), stats.MemoryPercent)
	fmt.Fprintf(tw, "  Network I/O\t↓ %s  ↑ %s\n",
		FormatBytes(stats.NetworkRx), FormatBytes(stats.NetworkTx))
	fmt.Fprintf(tw, "  PIDs\t%d\n", stats.PIDs)
	tw.Flush()
}

// RenderDetail writes the inspect-derived container information view.
func RenderDetail(w io.Writer, detail model.ContainerDetail) {
	fmt.Fprintln(w, styleTitle.Sprintf("Container: %s", detail.Name))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  ID\t%s\n", detail.ID)
	fmt.Fprintf(tw, "  Image\t%s\n", detail.Image)
	fmt.Fprintf(tw, "  Status\t%s\n", statusStyle(detail.Status).Sprint(detail.Status))
	if !detail.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "  Created\t%s\n", detail.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if detail.Status.IsRunning() && !detail.StartedAt.IsZero() {
		fmt.Fprintf(tw, "  Started\t%s\n", detail.StartedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(tw, "  IP address\t%s\n", orDash(detail.IPAddress))
	fmt.Fprintf(tw, "  Ports\t%s\n", FormatPorts(detail.Ports))
	if detail.Command != "" {
		fmt.Fprintf(tw, "  Command\t%s\n", detail.Command)
	}
	fmt.Fprintf(tw, "  Restarts\t%d\n", detail.RestartCnt)
	tw.Flush()
}

// FormatPorts renders a binding list as a comma-separated string,
// or a dash when there are none.
func FormatPorts(ports []model.PortBinding) string {
	if len(ports) == 0 {
		return "-"
	}
	out := ""
	for i, p := range ports {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	return out
}

// FormatBytes formats a byte count in human-readable binary units.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	value := float64(n)
	suffixes := []string{"KiB", "MiB", "GiB", "TiB"}
	for i, suffix := range suffixes {
		value /= unit
		if value < unit || i == len(suffixes)-1 {
			return fmt.Sprintf("%.1f%s", value, suffix)
		}
	}
	return fmt.Sprintf("%.1fTiB", value)
}

// FormatAge renders how long ago t was, relative to now, in the largest
// single unit that fits.
func FormatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

// orDash substitutes a dash for empty values in detail rows.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
