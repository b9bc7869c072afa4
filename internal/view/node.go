// Package view describes DOM subtrees as plain values so rendering can be
// tested without a browser. Adapters apply a Node to a live display.
package view

import (
	"html"
	"strings"
	"sync"
)

// Node is one element, or a text-only node when Tag is empty.
type Node struct {
	Tag      string
	Classes  []string
	Text     string
	Children []Node
}

// El returns an element node with the given classes.
func El(tag string, classes ...string) Node {
	return Node{Tag: tag, Classes: classes}
}

// WithText returns a copy of n whose text content is text.
func (n Node) WithText(text string) Node {
	n.Text = text
	return n
}

// Append returns a copy of n with children added after the existing ones.
func (n Node) Append(children ...Node) Node {
	merged := make([]Node, 0, len(n.Children)+len(children))
	merged = append(merged, n.Children...)
	n.Children = append(merged, children...)
	return n
}

// HTML renders n as escaped markup.
func HTML(n Node) string {
	var b strings.Builder
	writeHTML(&b, n)
	return b.String()
}

func writeHTML(b *strings.Builder, n Node) {
	if n.Tag == "" {
		b.WriteString(html.EscapeString(n.Text))
		return
	}
	b.WriteString("<")
	b.WriteString(n.Tag)
	if len(n.Classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(strings.Join(n.Classes, " ")))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(n.Text))
	for _, c := range n.Children {
		writeHTML(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">")
}

// Text returns the concatenated text content of n and its descendants.
func Text(n Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	b.WriteString(n.Text)
	for _, c := range n.Children {
		writeText(b, c)
	}
}

// Find returns every descendant of n (n included) with the given tag, in
// document order.
func Find(n Node, tag string) []Node {
	var out []Node
	var walk func(Node)
	walk = func(cur Node) {
		if cur.Tag == tag {
			out = append(out, cur)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Region is a display area whose whole content is replaced at once.
type Region interface {
	// Replace clears the region and inserts n in a single step.
	Replace(n Node)
	// SetText replaces the region's content with a plain text message.
	SetText(text string)
}

// MemoryRegion records what was last shown. It is safe for concurrent use.
type MemoryRegion struct {
	mu      sync.Mutex
	content *Node
	text    string
	updates int
}

func (r *MemoryRegion) Replace(n Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = &n
	r.text = ""
	r.updates++
}

func (r *MemoryRegion) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = nil
	r.text = text
	r.updates++
}

// Content returns the node last passed to Replace, if it is still shown.
func (r *MemoryRegion) Content() (Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.content == nil {
		return Node{}, false
	}
	return *r.content, true
}

// TextContent returns what a reader of the region would see as text.
func (r *MemoryRegion) TextContent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.content != nil {
		return Text(*r.content)
	}
	return r.text
}

// Updates reports how many times the region was replaced.
func (r *MemoryRegion) Updates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}
