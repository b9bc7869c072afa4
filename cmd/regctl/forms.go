package main

import (
	"github.com/spf13/cobra"

	"livestream-results-ui/internal/forms"
	"livestream-results-ui/internal/uistate"
	"livestream-results-ui/internal/view"
)

// formFlags maps each form to the fields it sends and the flag that sets them.
var formFlags = map[string][]struct {
	field uistate.Field
	flag  string
	usage string
}{
	forms.Watch.Name: {
		{uistate.FieldFilePath, "file-path", "timing file to watch"},
	},
	forms.Sheets.Name: {
		{uistate.FieldSheetID, "sheet-id", "Google Sheets document id"},
		{uistate.FieldSheetName, "sheet-name", "sheet receiving results"},
	},
	forms.StartList.Name: {
		{uistate.FieldEventName, "event-name", "primary event name"},
		{uistate.FieldParticipantsSheetName, "participants-sheet", "sheet holding the start list"},
	},
}

func newFormCmd(e *env, form forms.Form, use, short string) *cobra.Command {
	values := make(map[uistate.Field]*string)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := e.state(nil)
			for _, opt := range formFlags[form.Name] {
				if cmd.Flags().Changed(opt.flag) {
					if err := s.Set(opt.field, *values[opt.field]); err != nil {
						return err
					}
				}
			}

			region := &view.MemoryRegion{}
			submitter := &forms.Submitter{Client: e.client(), Logger: e.logger}
			err := submitter.Submit(cmd.Context(), form, s.Snapshot(), region)
			printRegion(e.out, region, false)
			if err != nil {
				return errReported
			}
			return nil
		},
	}
	for _, opt := range formFlags[form.Name] {
		values[opt.field] = cmd.Flags().String(opt.flag, "", opt.usage+" (saved for later runs)")
	}
	return cmd
}
