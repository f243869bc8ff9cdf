// file: internals/features/performances/repository/performance_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "performance_backend/internals/databases"
	model "performance_backend/internals/features/performances/model"
)

var (
	ErrDuplicateID = errors.New("performance id already exists")
	ErrNotFound    = errors.New("performance not found")
)

/* =========================
   Query shape
   ========================= */

type LifecycleFilter int

const (
	// OnlyActive: Status is NULL, empty, or anything but Cancelled.
	OnlyActive LifecycleFilter = iota
	OnlyCancelled
)

type Filter struct {
	Lifecycle LifecycleFilter
	// DateContains is applied only when non-empty.
	DateContains string
}

type Ordering struct {
	Column string // model.ColID | model.ColDate
	Desc   bool
}

// Changes maps physical column → new value. A nil value writes NULL.
type Changes map[string]any

/* =========================
   Store
   ========================= */

// Store is the query surface the lifecycle service talks to.
type Store interface {
	Insert(ctx context.Context, m *model.PerformanceModel) error
	Query(ctx context.Context, f Filter, o Ordering) ([]model.PerformanceModel, error)
	Update(ctx context.Context, id string, changes Changes) (int64, error)
	FindByID(ctx context.Context, id string) (*model.PerformanceModel, error)
	ListIDs(ctx context.Context) ([]string, error)
}

type PerformanceRepository struct {
	db      *gorm.DB
	backend database.Backend
}

func NewPerformanceRepository(db *gorm.DB, backend database.Backend) *PerformanceRepository {
	return &PerformanceRepository{db: db, backend: backend}
}

// Scoped pins one pooled connection for the duration of fn and returns it
// to the pool afterwards, whatever fn returns.
func (r *PerformanceRepository) Scoped(ctx context.Context, fn func(Store) error) error {
	return r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(&PerformanceRepository{db: conn, backend: r.backend})
	})
}

func (r *PerformanceRepository) Insert(ctx context.Context, m *model.PerformanceModel) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if r.backend.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, m.ID)
		}
		return fmt.Errorf("insert performance %s: %w", m.ID, err)
	}
	return nil
}

func (r *PerformanceRepository) Query(ctx context.Context, f Filter, o Ordering) ([]model.PerformanceModel, error) {
	tx := r.db.WithContext(ctx).Model(&model.PerformanceModel{})

	status := clause.Column{Name: model.ColStatus}
	switch f.Lifecycle {
	case OnlyCancelled:
		tx = tx.Where(clause.Eq{Column: status, Value: string(model.LifecycleCancelled)})
	default:
		tx = tx.Where(clause.Or(
			clause.Eq{Column: status, Value: nil},
			clause.Eq{Column: status, Value: ""},
			clause.Neq{Column: status, Value: string(model.LifecycleCancelled)},
		))
	}
	if f.DateContains != "" {
		tx = tx.Where(r.backend.Contains(model.ColDate, f.DateContains))
	}

	col := o.Column
	if col == "" {
		col = model.ColID
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: o.Desc})
	if col != model.ColID {
		// stable tie-break
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: model.ColID}})
	}

	var rows []model.PerformanceModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query performances: %w", err)
	}
	return rows, nil
}

// Update applies all changes in one statement and reports matched rows.
func (r *PerformanceRepository) Update(ctx context.Context, id string, changes Changes) (int64, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.PerformanceModel{}).
		Where(clause.Eq{Column: clause.Column{Name: model.ColID}, Value: id}).
		Updates(map[string]any(changes))
	if res.Error != nil {
		return 0, fmt.Errorf("update performance %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *PerformanceRepository) FindByID(ctx context.Context, id string) (*model.PerformanceModel, error) {
	var m model.PerformanceModel
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: model.ColID}, Value: id}).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("find performance %s: %w", id, err)
	}
	return &m, nil
}

func (r *PerformanceRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.PerformanceModel{}).
		Pluck(model.ColID, &ids).Error; err != nil {
		return nil, fmt.Errorf("list performance ids: %w", err)
	}
	return ids, nil
}
