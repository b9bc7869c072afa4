package view

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestAppendDoesNotAliasParent(t *testing.T) {
	base := El("tr").Append(El("td").WithText("a"))
	left := base.Append(El("td").WithText("b"))
	right := base.Append(El("td").WithText("c"))
	if Text(left) != "ab" || Text(right) != "ac" {
		t.Fatalf("appends leaked between copies: %q %q", Text(left), Text(right))
	}
}

func TestHTMLEscapesTextAndClasses(t *testing.T) {
	n := El("div", "a", `b"c`).Append(El("p").WithText("<script>&"))
	got := HTML(n)
	if strings.Contains(got, "<script>") {
		t.Fatalf("text was not escaped: %s", got)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(got))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Find("div p").Text() != "<script>&" {
		t.Fatalf("unexpected round-tripped text %q", doc.Find("div p").Text())
	}
	if class, _ := doc.Find("div").Attr("class"); class != `a b"c` {
		t.Fatalf("unexpected class attr %q", class)
	}
}

func TestFindWalksInDocumentOrder(t *testing.T) {
	n := El("div").Append(
		El("h1").WithText("one"),
		El("section").Append(El("h1").WithText("two")),
		El("h1").WithText("three"),
	)
	var got []string
	for _, h := range Find(n, "h1") {
		got = append(got, h.Text)
	}
	if strings.Join(got, ",") != "one,two,three" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestMemoryRegionReplaceAndSetText(t *testing.T) {
	var r MemoryRegion
	r.Replace(El("table").Append(El("td").WithText("1")))
	if _, ok := r.Content(); !ok {
		t.Fatalf("expected content after Replace")
	}
	if r.TextContent() != "1" {
		t.Fatalf("unexpected text %q", r.TextContent())
	}

	r.SetText("Error listing participants: boom")
	if _, ok := r.Content(); ok {
		t.Fatalf("expected SetText to drop prior content")
	}
	if r.TextContent() != "Error listing participants: boom" {
		t.Fatalf("unexpected text %q", r.TextContent())
	}
	if r.Updates() != 2 {
		t.Fatalf("expected 2 updates, got %d", r.Updates())
	}
}
