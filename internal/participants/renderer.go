package participants

import (
	"context"

	"livestream-results-ui/internal/backend"
	"livestream-results-ui/internal/logging"
	"livestream-results-ui/internal/view"
)

// ErrorPrefix starts the message shown when the listing cannot be displayed.
const ErrorPrefix = "Error listing participants: "

// Lister fetches the raw participants listing.
type Lister interface {
	ListParticipants(ctx context.Context) ([]byte, error)
}

// Renderer fetches the listing and swaps it into Region.
type Renderer struct {
	Client Lister
	Region view.Region
	Logger logging.Logger
}

// FetchAndRender requests the listing and replaces the region's content with
// the report, or with an error message on failure. Overlapping calls are not
// coordinated; whichever finishes last is what stays on screen.
func (r *Renderer) FetchAndRender(ctx context.Context) error {
	logger := logging.OrDiscard(r.Logger)

	payload, err := r.Client.ListParticipants(ctx)
	if err != nil {
		return r.fail(logger, err)
	}
	logger.Printf("participants listing: %s", payload)

	listing, err := Decode(payload)
	if err != nil {
		return r.fail(logger, err)
	}
	r.Region.Replace(Render(listing))
	return nil
}

func (r *Renderer) fail(logger logging.Logger, err error) error {
	logger.Printf("list participants: %v", err)
	r.Region.SetText(ErrorPrefix + backend.Describe(err))
	return err
}
