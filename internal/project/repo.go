package project

import (
	"context"
	"errors"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/model"
)

var ErrNotFound = errors.New("project not found")

type Repository interface {
	Create(ctx context.Context, p model.Project) (model.Project, error)
	Get(ctx context.Context, id model.ProjectID) (model.Project, bool, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, p model.Project) (model.Project, error)
	Delete(ctx context.Context, id model.ProjectID) error
}
