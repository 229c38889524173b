// Package catalog exposes the school entity tables for administration by name.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain"
)

// MaxPageSize caps List.
const MaxPageSize = 200

// Resource is a type-erased entity table.
type Resource interface {
	List(ctx context.Context, limit, offset int) (any, error)
	Get(ctx context.Context, id int64) (any, error)
	Create(ctx context.Context, body []byte) (any, error)
	Update(ctx context.Context, id int64, body []byte) (any, error)
	Delete(ctx context.Context, id int64) error
}

// Service resolves resources by their route name.
type Service struct {
	resources map[string]Resource
	logger    *zap.Logger
}

// New creates an empty catalog.
func New(logger *zap.Logger) *Service {
	return &Service{resources: make(map[string]Resource), logger: logger.Named("catalog")}
}

// Register exposes store under name.
func Register[T any](s *Service, name string, store Store[T]) {
	s.resources[name] = &resource[T]{name: name, store: store, logger: s.logger}
}

// Lookup returns the resource named name.
func (s *Service) Lookup(name string) (Resource, error) {
	r, ok := s.resources[name]
	if !ok {
		return nil, fmt.Errorf("resource %q: %w", name, domain.ErrNotFound)
	}
	return r, nil
}

// Names lists registered resources alphabetically.
func (s *Service) Names() []string {
	out := make([]string, 0, len(s.resources))
	for n := range s.resources {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

type resource[T any] struct {
	name   string
	store  Store[T]
	logger *zap.Logger
}

func (r *resource[T]) List(ctx context.Context, limit, offset int) (any, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	return r.store.List(ctx, limit, offset)
}

func (r *resource[T]) Get(ctx context.Context, id int64) (any, error) {
	return r.store.Get(ctx, id)
}

func (r *resource[T]) Create(ctx context.Context, body []byte) (any, error) {
	rec, err := decode[T](body)
	if err != nil {
		return nil, err
	}
	out, err := r.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	r.logger.Info("record created", zap.String("resource", r.name))
	return out, nil
}

func (r *resource[T]) Update(ctx context.Context, id int64, body []byte) (any, error) {
	rec, err := decode[T](body)
	if err != nil {
		return nil, err
	}
	out, err := r.store.Update(ctx, id, rec)
	if err != nil {
		return nil, err
	}
	r.logger.Info("record updated", zap.String("resource", r.name), zap.Int64("id", id))
	return out, nil
}

func (r *resource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.logger.Info("record deleted", zap.String("resource", r.name), zap.Int64("id", id))
	return nil
}

func decode[T any](body []byte) (T, error) {
	var rec T
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return rec, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return rec, nil
}
