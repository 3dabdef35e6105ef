package repository

import (
	"context"
	"time"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrConstraintViolation is returned when a write breaks a unique or foreign key constraint.
var ErrConstraintViolation = errors.New("constraint violation")

type crudOptions struct {
	preloads           []string
	order              string
	deleteAssociations []string
	now                func() time.Time
}

// Option configures a Crud accessor
type Option func(*crudOptions)

// WithPreload eager loads the named associations on every read.
func WithPreload(names ...string) Option {
	return func(o *crudOptions) { o.preloads = append(o.preloads, names...) }
}

// WithOrder sets the ORDER BY used by GetAll and List.
func WithOrder(order string) Option {
	return func(o *crudOptions) { o.order = order }
}

// WithDeleteAssociations removes the named associations (join rows or owned rows) with the record.
func WithDeleteAssociations(names ...string) Option {
	return func(o *crudOptions) { o.deleteAssociations = append(o.deleteAssociations, names...) }
}

// WithClock overrides the clock used for modification dates.
func WithClock(now func() time.Time) Option {
	return func(o *crudOptions) { o.now = now }
}

// Crud is the GORM implementation of the five record operations, shared by every entity.
// Each operation runs in its own transaction.
type Crud[T domain.Model] struct {
	db   *gorm.DB
	opts crudOptions
}

// NewCrud creates a record accessor for T
func NewCrud[T domain.Model](db *gorm.DB, opts ...Option) *Crud[T] {
	o := crudOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Crud[T]{db: db, opts: o}
}

func (r *Crud[T]) table() string {
	var zero T
	return zero.TableName()
}

func (r *Crud[T]) read(tx *gorm.DB) *gorm.DB {
	for _, name := range r.opts.preloads {
		tx = tx.Preload(name)
	}
	return tx
}

func (r *Crud[T]) ordered(tx *gorm.DB) *gorm.DB {
	if r.opts.order != "" {
		return tx.Order(r.opts.order)
	}
	return tx
}

// Create inserts record and returns it re-read with its associations loaded.
func (r *Crud[T]) Create(ctx context.Context, record *T) (*T, error) {
	var created T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return r.read(tx).First(&created, (*record).Identity()).Error
	})
	if err != nil {
		return nil, r.wrap(err, "create")
	}
	return &created, nil
}

// GetByID returns the record or nil when no row has that id.
func (r *Crud[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.read(tx).First(&record, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap(err, "get")
	}
	return &record, nil
}

// GetAll returns every record, possibly an empty slice.
func (r *Crud[T]) GetAll(ctx context.Context) ([]*T, error) {
	records := make([]*T, 0)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.ordered(r.read(tx)).Find(&records).Error
	})
	if err != nil {
		return nil, r.wrap(err, "list")
	}
	return records, nil
}

// List returns one page of records and the total row count.
func (r *Crud[T]) List(ctx context.Context, page, pageSize int) ([]*T, int64, error) {
	if page < 1 {
		page = 1
	}
	records := make([]*T, 0)
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(new(T)).Count(&total).Error; err != nil {
			return err
		}
		query := r.ordered(r.read(tx))
		if pageSize > 0 {
			query = query.Offset((page - 1) * pageSize).Limit(pageSize)
		}
		return query.Find(&records).Error
	})
	if err != nil {
		return nil, 0, r.wrap(err, "list")
	}
	return records, total, nil
}

// Update loads the record, applies patch, advances its modification date and saves it.
// It returns nil when no row has that id.
func (r *Crud[T]) Update(ctx context.Context, id int64, patch domain.Patch[T]) (*T, error) {
	var updated T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record T
		if err := r.read(tx).First(&record, id).Error; err != nil {
			return err
		}
		patch.Apply(&record)
		if t, ok := any(&record).(domain.Touchable); ok {
			t.Touch(r.opts.now())
		}
		if v, ok := any(&record).(domain.Variant); ok {
			if err := tx.Omit(clause.Associations).Save(v.Base()).Error; err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(&record).Error; err != nil {
			return err
		}
		if ap, ok := patch.(domain.AssociationPatch); ok {
			for name, values := range ap.Associations() {
				if err := tx.Model(&record).Association(name).Replace(values); err != nil {
					return err
				}
			}
		}
		return r.read(tx).First(&updated, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap(err, "update")
	}
	return &updated, nil
}

// Delete removes the record and reports whether it existed.
func (r *Crud[T]) Delete(ctx context.Context, id int64) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record T
		if err := r.read(tx).First(&record, id).Error; err != nil {
			return err
		}
		del := tx
		if len(r.opts.deleteAssociations) > 0 {
			del = tx.Select(r.opts.deleteAssociations)
		}
		if err := del.Delete(&record).Error; err != nil {
			return err
		}
		if v, ok := any(&record).(domain.Variant); ok {
			return tx.Delete(v.Base()).Error
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, r.wrap(err, "delete")
	}
	return true, nil
}

// findOne runs scope against the table and returns the first row or nil.
func (r *Crud[T]) findOne(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (*T, error) {
	var record T
	err := r.read(r.db.WithContext(ctx)).Scopes(scope).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap(err, "get")
	}
	return &record, nil
}

func (r *Crud[T]) findMany(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*T, error) {
	records := make([]*T, 0)
	err := r.ordered(r.read(r.db.WithContext(ctx))).Scopes(scope).Find(&records).Error
	if err != nil {
		return nil, r.wrap(err, "list")
	}
	return records, nil
}

func (r *Crud[T]) wrap(err error, op string) error {
	if isConstraintError(err) {
		return errors.Wrapf(ErrConstraintViolation, "%s %s: %v", op, r.table(), err)
	}
	return errors.Wrapf(err, "%s %s", op, r.table())
}

func isConstraintError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}
