package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/planner"
)

// Describer writes a description for a destination that has none
type Describer interface {
	Describe(ctx context.Context, d *models.Destination) (string, error)
}

// BackfillReport counts what one Backfill pass did
type BackfillReport struct {
	Scanned   int
	Described int
	Indexed   int
	Failed    int
}

// Backfill walks every stored destination page by page. Destinations
// without a description get one from describer when it is non-nil, and
// every destination is re-indexed when the service has an index. A failure
// on one destination is logged and counted, the pass goes on. Store errors
// and ctx cancellation stop it.
func (s *DestinationService) Backfill(ctx context.Context, describer Describer, pageSize int) (BackfillReport, error) {
	var rep BackfillReport
	if s.index == nil && describer == nil {
		return rep, errors.New("backfill: neither an index nor a describer is configured")
	}
	pageSize, _ = clampPage(pageSize, 0)

	for offset := 0; ; {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		page, total, err := s.store.List(ctx, models.DestinationFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return rep, fmt.Errorf("backfill: list destinations at %d: %w", offset, err)
		}
		for i := range page {
			s.backfillOne(ctx, describer, &page[i], &rep)
		}
		offset += len(page)
		if len(page) == 0 || offset >= total {
			return rep, ctx.Err()
		}
	}
}

func (s *DestinationService) backfillOne(ctx context.Context, describer Describer, d *models.Destination, rep *BackfillReport) {
	rep.Scanned++

	if describer != nil && (d.Description == nil || *d.Description == "") {
		desc, err := describer.Describe(ctx, d)
		if err != nil {
			log.Printf("backfill: describe %s (%s): %v", d.Name, d.ID, err)
			rep.Failed++
			return
		}
		d.Description = &desc
		if err := planner.ValidateDestination(d); err != nil {
			log.Printf("backfill: description for %s rejected: %v", d.ID, err)
			rep.Failed++
			return
		}
		if err := s.store.UpdateForCreator(ctx, d); err != nil {
			log.Printf("backfill: save %s: %v", d.ID, err)
			rep.Failed++
			return
		}
		rep.Described++
	}

	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, d); err != nil {
		log.Printf("backfill: index %s: %v", d.ID, err)
		rep.Failed++
		return
	}
	rep.Indexed++
}
