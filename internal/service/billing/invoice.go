// Package billing groups a client's unbilled approved time into invoice line
// items by effective bill rate.
//
// The output is a preview. Committing it — assigning an invoice number, issue
// and due dates, marking the source entries billed — is a separate explicit
// confirmation at the repository layer, so every invoice gets at least one
// review before it is sent.
package billing

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/service/rates"
)

// Line is one invoice line item: all hours billed at the same effective rate.
type Line struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Warning reports an entry excluded from the preview.
type Warning struct {
	EntryID int    `json:"entry_id"`
	Reason  string `json:"reason"`
}

// Preview is the computed, not-yet-committed invoice for one client.
type Preview struct {
	ClientID int       `json:"client_id"`
	Lines    []Line    `json:"lines"`
	Total    float64   `json:"total"`
	EntryIDs []int     `json:"entry_ids"`
	Warnings []Warning `json:"warnings"`
}

// Grouper builds invoice previews using the shared rate resolver.
type Grouper struct {
	rates *rates.Resolver
}

func NewGrouper(r *rates.Resolver) *Grouper {
	return &Grouper{rates: r}
}

// GroupForClient groups the given unbilled approved entries by resolved bill
// rate. The "unbilled" predicate belongs to the caller; this only consumes
// the pre-filtered set. Grouping is by rate, not by site or date: entries
// sharing an effective rate merge into one line with quantity = total hours.
func (g *Grouper) GroupForClient(
	clientID int,
	entries []entity.TimeEntry,
	shifts map[int]entity.Shift,
	client *entity.Client,
) (Preview, error) {

	preview := Preview{ClientID: clientID, Warnings: []Warning{}}
	byRate := make(map[float64]*Line)

	for _, e := range entries {
		if e.TotalHours == nil {
			preview.Warnings = append(preview.Warnings, Warning{EntryID: e.ID, Reason: "entry has no recorded hours"})
			continue
		}
		if *e.TotalHours < 0 {
			preview.Warnings = append(preview.Warnings, Warning{EntryID: e.ID, Reason: "entry has negative hours"})
			continue
		}

		var shift *entity.Shift
		if e.ShiftID != nil {
			if s, ok := shifts[*e.ShiftID]; ok {
				shift = &s
			}
		}

		entry := e
		rate, err := g.rates.BillRate(&entry, shift, client)
		if err != nil {
			return Preview{}, errors.Wrapf(err, "resolving bill rate for entry %d", e.ID)
		}

		line, ok := byRate[rate]
		if !ok {
			line = &Line{
				Description: fmt.Sprintf("Security services @ $%.2f/hr", rate),
				Rate:        rate,
			}
			byRate[rate] = line
		}
		line.Quantity += *e.TotalHours
		preview.EntryIDs = append(preview.EntryIDs, e.ID)
	}

	for _, line := range byRate {
		line.Amount = line.Quantity * line.Rate
		preview.Lines = append(preview.Lines, *line)
		preview.Total += line.Amount
	}

	sort.Slice(preview.Lines, func(i, j int) bool {
		return preview.Lines[i].Rate < preview.Lines[j].Rate
	})

	return preview, nil
}
