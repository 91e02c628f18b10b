package invoicepdf

import (
	"bytes"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	doc := Document{
		Number:     "GP-202503-41",
		ClientName: "Acme Logistics",
		IssuedAt:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		Lines: []Line{
			{Description: "Security services @ $45.00/hr", Quantity: 8, Rate: 45, Amount: 360},
			{Description: "Security services @ $50.00/hr", Quantity: 2, Rate: 50, Amount: 100},
		},
		Total: 460,
	}

	raw, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
}

func TestRenderEmptyInvoice(t *testing.T) {
	raw, err := Render(Document{Number: "GP-202503-42"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected output for an invoice without lines")
	}
}
