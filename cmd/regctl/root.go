package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"livestream-results-ui/internal/backend"
	"livestream-results-ui/internal/fieldstore"
	"livestream-results-ui/internal/forms"
	"livestream-results-ui/internal/logging"
	"livestream-results-ui/internal/participants"
	"livestream-results-ui/internal/uistate"
	"livestream-results-ui/internal/view"
)

const defaultBackend = "http://127.0.0.1:8080"

// errReported marks failures whose message was already written to the output.
var errReported = errors.New("reported")

type env struct {
	out       io.Writer
	logger    logging.Logger
	backend   string
	statePath string
	verbose   bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	e := &env{out: out}

	root := &cobra.Command{
		Use:   "regctl",
		Short: "Terminal client for the race registration console",
		Long: `regctl lists registered participants and submits the console's
configuration forms (timing file watch, Google Sheets target, start list
import). Form values are persisted between runs exactly like the browser
console does, so flags only need to be given once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if e.verbose {
				e.logger = logging.NewWithWriter(os.Stderr)
			} else {
				e.logger = logging.Discard()
			}
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&e.backend, "backend", defaultBackend, "registration backend URL")
	root.PersistentFlags().StringVar(&e.statePath, "state", fieldstore.DefaultFilePath, "file holding the persisted form fields")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log requests and raw responses to stderr")

	root.AddCommand(
		newOpenCmd(e),
		newParticipantsCmd(e),
		newFormCmd(e, forms.Watch, "watch", "Start watching a timing file"),
		newFormCmd(e, forms.Sheets, "sheets", "Set the Google Sheets results target"),
		newFormCmd(e, forms.StartList, "startlist", "Import the start list for an event"),
		newStateCmd(e),
	)
	return root
}

func (e *env) client() *backend.Client {
	return &backend.Client{BaseURL: e.backend}
}

func (e *env) store() fieldstore.Store {
	return fieldstore.NewFile(e.statePath)
}

// state restores the persisted fields. onParticipantsTab is only wired by
// commands that emulate a page load.
func (e *env) state(onParticipantsTab func()) *uistate.State {
	s := uistate.New(uistate.Options{
		Store:             e.store(),
		Logger:            e.logger,
		OnParticipantsTab: onParticipantsTab,
	})
	s.Initialize()
	return s
}

func (e *env) renderer(region view.Region) *participants.Renderer {
	return &participants.Renderer{Client: e.client(), Region: region, Logger: e.logger}
}
