package flights

import (
	"bytes"
	"strings"
	"testing"
)

func TestRender_List(t *testing.T) {
	f := sampleFlight()
	f.Provider = "Tom & Jerry Travel"
	card, err := NewCard(f, LayoutList, SearchParams{}, fixedNow)
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, card); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"flight-card--list",
		"theme-red",
		"Emirates",
		"£420",
		"Direct",
		"Book with Tom &amp; Jerry Travel",
		"curr=GBP",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("list HTML missing %q:\n%s", want, html)
		}
	}
}

func TestRender_Grid(t *testing.T) {
	f := sampleFlight()
	f.Emissions = &Emissions{CO2: 8}
	card, err := NewCard(f, LayoutGrid, SearchParams{}, fixedNow)
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, card); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"flight-card--grid", "LHR", "DXB", "£840 total", "8% less CO2e"} {
		if !strings.Contains(html, want) {
			t.Errorf("grid HTML missing %q:\n%s", want, html)
		}
	}
}

func TestRender_MissingView(t *testing.T) {
	if err := Render(&bytes.Buffer{}, Card{Layout: LayoutGrid}); err == nil {
		t.Error("expected error for card without grid view")
	}
}
