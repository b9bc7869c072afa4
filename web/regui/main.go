//go:build js && wasm

// Command regui is the browser side of the registration console, compiled
// to WebAssembly and served by cmd/regui.
package main

import (
	"context"
	"syscall/js"

	"livestream-results-ui/internal/backend"
	"livestream-results-ui/internal/forms"
	"livestream-results-ui/internal/logging"
	"livestream-results-ui/internal/participants"
	"livestream-results-ui/internal/uistate"
)

var (
	document = js.Global().Get("document")
	// Keeps callbacks reachable for the lifetime of the page.
	callbacks []js.Func
)

// inputs maps each bound form control to its field.
var inputs = map[uistate.Field]string{
	uistate.FieldFilePath:              "filePath",
	uistate.FieldSheetID:               "sheetID",
	uistate.FieldSheetName:             "sheetName",
	uistate.FieldEventName:             "eventName",
	uistate.FieldParticipantsSheetName: "participantsSheetName",
}

// formBindings ties each form element to its submitter and feedback region.
var formBindings = []struct {
	formID   string
	regionID string
	form     forms.Form
}{
	{"watch-form", "watch-feedback", forms.Watch},
	{"sheets-form", "sheets-feedback", forms.Sheets},
	{"read-startlista", "startlista-content", forms.StartList},
}

func main() {
	logger := logging.NewWithWriter(consoleWriter{})
	client := &backend.Client{}

	renderer := &participants.Renderer{
		Client: client,
		Region: regionByID("participants-content"),
		Logger: logger,
	}
	refresh := func() {
		go func() { _ = renderer.FetchAndRender(context.Background()) }()
	}

	state := uistate.New(uistate.Options{
		Store:             newLocalStore(),
		Logger:            logger,
		OnParticipantsTab: refresh,
	})
	state.OnChange(syncControl)

	submitter := &forms.Submitter{Client: client, Logger: logger}

	on(byID("list-participants"), "click", func(js.Value) { refresh() })
	for _, b := range formBindings {
		b := b
		region := regionByID(b.regionID)
		on(byID(b.formID), "submit", func(event js.Value) {
			event.Call("preventDefault")
			values := state.Snapshot()
			go func() { _ = submitter.Submit(context.Background(), b.form, values, region) }()
		})
	}
	for field, id := range inputs {
		field := field
		el := byID(id)
		on(el, "input", func(js.Value) {
			_ = state.Set(field, el.Get("value").String())
		})
	}
	tabs := document.Call("querySelectorAll", "[data-tab]")
	for i := 0; i < tabs.Length(); i++ {
		tab := tabs.Index(i)
		on(tab, "click", func(js.Value) {
			state.SetTab(tab.Get("dataset").Get("tab").String())
		})
	}
	on(byID("reset-state"), "click", func(js.Value) { state.Reset() })

	// Paint the defaults, then restore the saved session over them.
	for _, f := range uistate.Fields() {
		syncControl(f, state.Get(f))
	}
	state.Initialize()

	select {}
}

func on(el js.Value, event string, fn func(event js.Value)) {
	if !el.Truthy() {
		return
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	callbacks = append(callbacks, cb)
	el.Call("addEventListener", event, cb)
}

// syncControl reflects a field change back into the page.
func syncControl(field uistate.Field, value string) {
	if field == uistate.FieldTab {
		showTab(value)
		return
	}
	el := byID(inputs[field])
	if el.Truthy() && el.Get("value").String() != value {
		el.Set("value", value)
	}
}

func showTab(active string) {
	panels := document.Call("querySelectorAll", "[data-tab-panel]")
	for i := 0; i < panels.Length(); i++ {
		p := panels.Index(i)
		p.Set("hidden", p.Get("dataset").Get("tabPanel").String() != active)
	}
	tabs := document.Call("querySelectorAll", "[data-tab]")
	for i := 0; i < tabs.Length(); i++ {
		t := tabs.Index(i)
		selected := "false"
		if t.Get("dataset").Get("tab").String() == active {
			selected = "true"
		}
		t.Call("setAttribute", "aria-selected", selected)
	}
}
