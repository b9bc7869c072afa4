// Package forms posts the console's configuration forms to the backend and
// reports the outcome in each form's feedback region.
package forms

import (
	"context"
	"encoding/json"
	"fmt"

	"livestream-results-ui/internal/backend"
	"livestream-results-ui/internal/logging"
	"livestream-results-ui/internal/uistate"
	"livestream-results-ui/internal/view"
)

// ResponseKind says how a successful response body must be read.
type ResponseKind int

const (
	// ResponseText accepts any body.
	ResponseText ResponseKind = iota
	// ResponseJSON requires the body to parse as JSON.
	ResponseJSON
)

// Form describes one submission flow.
type Form struct {
	Name         string
	Endpoint     string
	Payload      func(uistate.Values) any
	Response     ResponseKind
	Success      func(body []byte) string
	ErrorContext string
}

// ErrorText formats a failure for display.
func (f Form) ErrorText(err error) string {
	return "Error " + f.ErrorContext + ": " + backend.Describe(err)
}

type watchRequest struct {
	FilePath string `json:"filePath"`
}

type sheetsRequest struct {
	SheetID   string `json:"sheetID"`
	SheetName string `json:"sheetName"`
}

type startListRequest struct {
	PrimaryEventName      string `json:"primaryEventName"`
	ParticipantsSheetName string `json:"participantsSheetName"`
}

// StartListImported is shown once a start list import succeeds.
const StartListImported = "Startlista importerad"

func rawText(body []byte) string { return string(body) }

var (
	// Watch registers the timing file the backend should follow.
	Watch = Form{
		Name:     "watch",
		Endpoint: backend.PathStartWatch,
		Payload: func(v uistate.Values) any {
			return watchRequest{FilePath: v.FilePath}
		},
		Response:     ResponseText,
		Success:      rawText,
		ErrorContext: "starting watch",
	}

	// Sheets points the backend at the results spreadsheet.
	Sheets = Form{
		Name:     "sheets",
		Endpoint: backend.PathGoogleSheets,
		Payload: func(v uistate.Values) any {
			return sheetsRequest{SheetID: v.SheetID, SheetName: v.SheetName}
		},
		Response:     ResponseText,
		Success:      rawText,
		ErrorContext: "submitting Google Sheets info",
	}

	// StartList imports the start list for the primary event.
	StartList = Form{
		Name:     "startlist",
		Endpoint: backend.PathReadStartlista,
		Payload: func(v uistate.Values) any {
			return startListRequest{PrimaryEventName: v.EventName, ParticipantsSheetName: v.ParticipantsSheetName}
		},
		Response:     ResponseJSON,
		Success:      func([]byte) string { return StartListImported },
		ErrorContext: "reading Startlista",
	}
)

// All returns the three forms in page order.
func All() []Form {
	return []Form{Watch, Sheets, StartList}
}

// Poster sends JSON payloads to the backend.
type Poster interface {
	PostJSON(ctx context.Context, path string, payload any) ([]byte, error)
}

// Submitter runs form submissions.
type Submitter struct {
	Client Poster
	Logger logging.Logger
}

// Submit posts the form's fields taken from values exactly once and writes
// the result, or the error, into region. Fields are sent as they are,
// empty strings included.
func (s *Submitter) Submit(ctx context.Context, form Form, values uistate.Values, region view.Region) error {
	logger := logging.OrDiscard(s.Logger)

	body, err := s.Client.PostJSON(ctx, form.Endpoint, form.Payload(values))
	if err == nil && form.Response == ResponseJSON {
		var decoded any
		if jsonErr := json.Unmarshal(body, &decoded); jsonErr != nil {
			err = fmt.Errorf("decode response: %w", jsonErr)
		}
	}
	if err != nil {
		logger.Printf("%s form: %v", form.Name, err)
		region.SetText(form.ErrorText(err))
		return err
	}

	region.SetText(form.Success(body))
	return nil
}
