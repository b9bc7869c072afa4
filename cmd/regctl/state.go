package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"livestream-results-ui/internal/uistate"
)

func newStateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or change the saved console fields",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print every saved field",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printValues(e.out, e.state(nil).Snapshot())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <field> <value>",
			Short: "Assign one field",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				field, err := uistate.ParseField(args[0])
				if err != nil {
					return err
				}
				s := e.state(nil)
				if err := s.Set(field, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(e.out, "%s=%s\n", field, s.Get(field))
				return nil
			},
		},
		&cobra.Command{
			Use:   "tab <name>",
			Short: "Select the active tab (config or participants)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s := e.state(nil)
				s.SetTab(args[0])
				fmt.Fprintf(e.out, "tab=%s\n", s.Tab())
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore every field to its default",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s := e.state(nil)
				s.Reset()
				printValues(e.out, s.Snapshot())
				return nil
			},
		},
	)
	return cmd
}
