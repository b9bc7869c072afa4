package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"livestream-results-ui/internal/uistate"
	"livestream-results-ui/internal/view"
)

func newParticipantsCmd(e *env) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "List registered participants grouped by event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			region := &view.MemoryRegion{}
			err := e.renderer(region).FetchAndRender(cmd.Context())
			printRegion(e.out, region, asHTML)
			if err != nil {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the report markup instead of text")
	return cmd
}

// newOpenCmd behaves like loading the console page: restore the persisted
// fields and, if the participants tab was active, refresh the listing.
func newOpenCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Restore the saved console state, refreshing participants when that tab was open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			region := &view.MemoryRegion{}
			var refreshErr error
			refreshed := false
			s := e.state(func() {
				refreshed = true
				refreshErr = e.renderer(region).FetchAndRender(cmd.Context())
			})
			printValues(e.out, s.Snapshot())
			if refreshed {
				fmt.Fprintln(e.out)
				printRegion(e.out, region, false)
			}
			if refreshErr != nil {
				return errReported
			}
			return nil
		},
	}
}

func printRegion(w io.Writer, region *view.MemoryRegion, asHTML bool) {
	content, ok := region.Content()
	if !ok {
		fmt.Fprintln(w, region.TextContent())
		return
	}
	if asHTML {
		fmt.Fprintln(w, view.HTML(content))
		return
	}
	io.WriteString(w, formatReport(content))
}

// formatReport lays the rendered report out as text: heading, description,
// then tab separated rows with the header row first.
func formatReport(report view.Node) string {
	var b strings.Builder
	for i, section := range report.Children {
		switch section.Tag {
		case "h1":
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "== %s ==\n", section.Text)
		case "table":
			for _, row := range view.Find(section, "tr") {
				cells := make([]string, 0, len(row.Children))
				for _, c := range row.Children {
					cells = append(cells, view.Text(c))
				}
				b.WriteString(strings.Join(cells, "\t"))
				b.WriteString("\n")
			}
		default:
			b.WriteString(view.Text(section))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func printValues(w io.Writer, v uistate.Values) {
	for _, f := range uistate.Fields() {
		fmt.Fprintf(w, "%s=%s\n", f, v.Get(f))
	}
}
