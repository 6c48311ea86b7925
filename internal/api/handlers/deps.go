package handlers

import (
	"context"
	"time"

	"github.com/familiez/humans-service/internal/models"
)

// Querier is the query surface the handlers depend on; tests substitute
// fakes for it.
type Querier interface {
	PingDatabase(ctx context.Context, tsFE, tsMW time.Time) ([]models.Record, error)
	PersonsLike(ctx context.Context, search string) ([]models.Record, error)
	ChildrenOfParent(ctx context.Context, parentID int64) ([]models.Record, error)
	FatherOf(ctx context.Context, childID int64) ([]models.Record, error)
	MotherOf(ctx context.Context, childID int64) ([]models.Record, error)
	PersonDetails(ctx context.Context, personID int64) ([]models.Record, error)
	PartnersOf(ctx context.Context, personID int64) ([]models.Record, error)
	UpdatePerson(ctx context.Context, arg models.UpdatePersonParams) error
}

var _ Querier = (*models.Queries)(nil)
