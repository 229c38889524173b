package search

import (
	"context"

	"github.com/kailas-cloud/campusbot/internal/domain/entity"
	"github.com/kailas-cloud/campusbot/internal/domain/search/filter"
)

// Finder reads one entity table.
type Finder[T any] interface {
	// FindMany returns the rows matching expr ordered by sort ascending.
	// An empty expression matches every row.
	FindMany(ctx context.Context, expr filter.Expression, sort string) ([]T, error)
	// FindFirst returns the first row by sort, or domain.ErrNotFound.
	FindFirst(ctx context.Context, expr filter.Expression, sort string) (T, error)
}

// Finders groups the entity tables the search services read from.
type Finders struct {
	Offices       Finder[entity.Office]
	Departments   Finder[entity.Department]
	Scholarships  Finder[entity.Scholarship]
	Courses       Finder[entity.Course]
	Contacts      Finder[entity.Contact]
	Organizations Finder[entity.StudentOrg]
	Programs      Finder[entity.Program]
	School        Finder[entity.SchoolDetail]
	Officials     Finder[entity.SchoolOfficial]
	Enrollment    Finder[entity.Enrollment]
	Navigation    Finder[entity.Navigation]
	Developers    Finder[entity.DevInfo]
}
