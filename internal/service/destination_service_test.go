package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/memory"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/seed"
)

func TestDestinationServiceSeedAndLookups(t *testing.T) {
	ctx := context.Background()
	svc := NewDestinationService(memory.NewDestinationRepo(), nil)

	defaults, err := seed.Destinations()
	if err != nil {
		t.Fatalf("seed.Destinations: %v", err)
	}
	n, err := svc.Seed(ctx, defaults)
	if err != nil || n != 10 {
		t.Fatalf("Seed: %d %v", n, err)
	}
	if n, _ := svc.Seed(ctx, defaults); n != 0 {
		t.Fatalf("second seed must be a no-op, wrote %d", n)
	}

	all, err := svc.List(ctx)
	if err != nil || len(all) != 10 {
		t.Fatalf("List: %d %v", len(all), err)
	}

	villa, err := svc.GetByTitle(ctx, "the villa")
	if err != nil || villa.Title != "The Villa" {
		t.Fatalf("GetByTitle: %+v %v", villa, err)
	}
	byID, err := svc.GetByID(ctx, villa.ID)
	if err != nil || byID.Title != "The Villa" {
		t.Fatalf("GetByID: %+v %v", byID, err)
	}

	if _, err := svc.GetByTitle(ctx, "Atlantis"); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
	if _, err := svc.GetByID(ctx, uuid.New()); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}

	found, err := svc.GetByTitles(ctx, []string{"Island Nook", " ", "Infinity Blue", "Nowhere"})
	if err != nil || len(found) != 2 {
		t.Fatalf("GetByTitles: %d %v", len(found), err)
	}
}
