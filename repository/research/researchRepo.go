package researchrepo

import (
	"context"

	"libtrack/model"
)

// Repo wraps the backend's research-paper endpoints.
type Repo interface {
	List(ctx context.Context) ([]model.ResearchPaper, error)
	Get(ctx context.Context, id int64) (*model.ResearchPaper, error)
	Authors(ctx context.Context) ([]string, error)
	Departments(ctx context.Context) ([]string, error)
	ShelfLocations(ctx context.Context) ([]model.ShelfLocation, error)
}
