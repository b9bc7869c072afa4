package participants

import "livestream-results-ui/internal/view"

// Description is the line shown under every event heading.
const Description = "Alla deltagare i klassen."

// Headers are the report columns, in cell order.
var Headers = []string{"Startnr", "Förnamn", "Efternamn", "Född", "Förening/Ort"}

var (
	containerClasses   = []string{"inline-block", "min-w-full", "py-2", "align-middle", "sm:px-6", "lg:px-8"}
	titleClasses       = []string{"text-base", "font-semibold", "leading-6", "text-gray-900"}
	descriptionClasses = []string{"mt-2", "text-sm", "text-gray-700"}
	tableClasses       = []string{"min-w-full", "divide-y", "divide-gray-200", "mb-20"}
	headerCellClasses  = []string{"py-3", "pl-4", "pr-3", "text-left", "text-xs", "font-medium", "uppercase", "tracking-wide", "text-gray-500", "sm:pl-0"}
	bodyClasses        = []string{"divide-y", "divide-gray-200", "bg-white"}
	cellClasses        = []string{"whitespace-nowrap", "py-4", "pl-4", "pr-3", "text-sm", "font-medium", "text-gray-900", "sm:pl-0"}
)

// Render builds the report for listing: a heading, the description line and
// a table per event. Rows keep the listing order and cells are verbatim.
func Render(listing Listing) view.Node {
	container := view.El("div", containerClasses...)
	for _, event := range listing {
		container = container.Append(
			view.El("h1", titleClasses...).WithText(event.Name),
			view.El("p", descriptionClasses...).WithText(Description),
			renderTable(event.Participants),
		)
	}
	return container
}

func renderTable(participants []Participant) view.Node {
	headerRow := view.El("tr")
	for _, h := range Headers {
		headerRow = headerRow.Append(view.El("th", headerCellClasses...).WithText(h))
	}

	body := view.El("tbody", bodyClasses...)
	rows := make([]view.Node, 0, len(participants))
	for _, p := range participants {
		row := view.El("tr")
		cells := make([]view.Node, 0, len(Headers))
		for _, c := range p.Cells() {
			cells = append(cells, view.El("td", cellClasses...).WithText(c))
		}
		rows = append(rows, row.Append(cells...))
	}
	body = body.Append(rows...)

	return view.El("table", tableClasses...).Append(
		view.El("thead").Append(headerRow),
		body,
	)
}
