//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"livestream-results-ui/internal/view"
)

// localStore is the browser's localStorage. Access can throw (private mode,
// quota, disabled storage); those failures read as absent or fail the write.
type localStore struct {
	storage js.Value
}

func newLocalStore() *localStore {
	var storage js.Value
	func() {
		defer func() { _ = recover() }()
		storage = js.Global().Get("localStorage")
	}()
	return &localStore{storage: storage}
}

func (s *localStore) Get(key string) (value string, ok bool) {
	if !s.storage.Truthy() {
		return "", false
	}
	defer func() {
		if recover() != nil {
			value, ok = "", false
		}
	}()
	v := s.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func (s *localStore) Set(key, value string) (err error) {
	if !s.storage.Truthy() {
		return fmt.Errorf("localStorage unavailable")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage.setItem(%q): %v", key, r)
		}
	}()
	s.storage.Call("setItem", key, value)
	return nil
}

// domRegion applies view nodes to one element.
type domRegion struct {
	el js.Value
}

func regionByID(id string) view.Region {
	return &domRegion{el: byID(id)}
}

func (r *domRegion) Replace(n view.Node) {
	if !r.el.Truthy() {
		return
	}
	// Build off-document, then swap in one call.
	r.el.Call("replaceChildren", build(n))
}

func (r *domRegion) SetText(text string) {
	if !r.el.Truthy() {
		return
	}
	r.el.Set("innerText", text)
}

func build(n view.Node) js.Value {
	if n.Tag == "" {
		return document.Call("createTextNode", n.Text)
	}
	el := document.Call("createElement", n.Tag)
	for _, c := range n.Classes {
		el.Get("classList").Call("add", c)
	}
	if n.Text != "" {
		el.Set("textContent", n.Text)
	}
	for _, child := range n.Children {
		el.Call("appendChild", build(child))
	}
	return el
}

func byID(id string) js.Value {
	return document.Call("getElementById", id)
}

// consoleWriter lets the shared logger print to the browser console.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}
