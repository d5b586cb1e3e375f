package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record constrains T to entity structs whose pointer implements model.Record.
type Record[T any] interface {
	*T
	model.Record
}

// Repository is the only component that issues SQL for an entity.
// Every statement runs on its own pooled connection, released when the statement returns.
type Repository[T any, PT Record[T]] struct {
	pool       *database.Pool
	desc       Descriptor[T]
	table      string
	translator Translator
	metrics    *metrics.Metrics
	now        func() time.Time
}

// Option customises a Repository.
type Option func(*settings)

type settings struct {
	metrics *metrics.Metrics
	now     func() time.Time
}

// WithMetrics records every operation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithClock replaces the timestamp source (model.Now by default).
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// New creates a repository for the entity described by desc.
func New[T any, PT Record[T]](pool *database.Pool, desc Descriptor[T], opts ...Option) *Repository[T, PT] {
	s := settings{now: model.Now}
	for _, opt := range opts {
		opt(&s)
	}

	desc = desc.withDefaults()

	return &Repository[T, PT]{
		pool:       pool,
		desc:       desc,
		table:      PT(new(T)).TableName(),
		translator: desc.translator(),
		metrics:    s.metrics,
		now:        s.now,
	}
}

// Entity returns the entity name used in errors.
func (r *Repository[T, PT]) Entity() string {
	return r.desc.Entity
}

// Save inserts entity after checking every parent reference exists.
// Missing identity, status and timestamps are filled in; the stored value is returned.
func (r *Repository[T, PT]) Save(ctx context.Context, entity T) (saved T, err error) {
	defer r.observe("save", time.Now(), &err)

	rec := PT(&entity)
	if rec.GetID() == "" {
		if r.desc.NewID == nil {
			return saved, sharedError.NewPersistenceError(r.desc.Entity+": identity is required", nil)
		}
		rec.SetID(r.desc.NewID())
	}

	if err := r.checkParents(ctx, &entity); err != nil {
		return saved, err
	}

	base := rec.Base()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = r.now()
	}
	if base.UpdatedAt.Before(base.CreatedAt) {
		base.UpdatedAt = base.CreatedAt
	}
	base.Status = base.Status.OrDefault()
	if !r.desc.allows(base.Status) {
		return saved, r.disallowed(rec.GetID(), model.StatusUnset, base.Status)
	}

	err = r.pool.WithConn(ctx, func(tx *gorm.DB) error {
		result := tx.Omit(clause.Associations).Create(rec)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return sharedError.NewPersistenceError(r.desc.Entity+": insert affected no rows", nil)
		}
		return nil
	})
	if err != nil {
		return saved, r.translate(ctx, "save", err, &entity)
	}

	return entity, nil
}

// FindByID returns the row with identity id; ok is false when there is none.
func (r *Repository[T, PT]) FindByID(ctx context.Context, id string) (entity T, ok bool, err error) {
	defer r.observe("find_by_id", time.Now(), &err)
	return r.findOne(ctx, "find_by_id", r.desc.IDColumn, id)
}

// FindBy returns the row whose unique column equals value; ok is false when there is none.
func (r *Repository[T, PT]) FindBy(ctx context.Context, column, value string) (entity T, ok bool, err error) {
	defer r.observe("find_by", time.Now(), &err)

	if !r.desc.isUnique(column) {
		return entity, false, r.unknownColumn(column)
	}
	return r.findOne(ctx, "find_by", column, value)
}

// FindAll returns every row, newest first.
func (r *Repository[T, PT]) FindAll(ctx context.Context) (entities []T, err error) {
	defer r.observe("find_all", time.Now(), &err)
	return r.findMany(ctx, "find_all", nil)
}

// FindByStatus returns the rows in status, newest first.
func (r *Repository[T, PT]) FindByStatus(ctx context.Context, status model.Status) (entities []T, err error) {
	defer r.observe("find_by_status", time.Now(), &err)
	return r.findMany(ctx, "find_by_status", eq("status", status))
}

// FindByParent returns the children of the primary parent reference, newest first.
func (r *Repository[T, PT]) FindByParent(ctx context.Context, parentID string) ([]T, error) {
	parent, err := r.primaryParent()
	if err != nil {
		return nil, err
	}
	return r.FindByParentColumn(ctx, parent.Column, parentID)
}

// FindByParentColumn returns the rows whose parent reference column equals parentID.
func (r *Repository[T, PT]) FindByParentColumn(ctx context.Context, column, parentID string) (entities []T, err error) {
	defer r.observe("find_by_parent", time.Now(), &err)

	if _, ok := r.desc.parent(column); !ok {
		return nil, r.unknownColumn(column)
	}
	return r.findMany(ctx, "find_by_parent", eq(column, parentID))
}

// Update overwrites the business columns and status of the row keyed by the entity identity.
// Parent references are re-validated first and updated_at is refreshed.
// Writing a status other than inactive never touches an inactive row; that case reports a StateError.
func (r *Repository[T, PT]) Update(ctx context.Context, entity T) (updated T, err error) {
	defer r.observe("update", time.Now(), &err)

	rec := PT(&entity)
	id := rec.GetID()
	if id == "" {
		return updated, &sharedError.NotFoundError{Entity: r.desc.Entity}
	}
	if status := rec.Base().Status; status.IsSet() && !r.desc.allows(status) {
		return updated, r.disallowed(id, model.StatusUnset, status)
	}

	if err := r.checkParents(ctx, &entity); err != nil {
		return updated, err
	}

	base := rec.Base()
	base.UpdatedAt = model.NextUpdatedAt(*base, r.now())

	columns := append([]string{}, r.desc.UpdateColumns...)
	columns = append(columns, "updated_at")
	if base.Status.IsSet() {
		columns = append(columns, "status")
	}

	// inactive는 Update로 되돌릴 수 없다. 조회 이후 비활성화된 행도 WHERE에서 걸러진다.
	status := base.Status
	guarded := status.IsSet() && status != model.StatusInactive

	var affected int64
	err = r.pool.WithConn(ctx, func(tx *gorm.DB) error {
		query := tx.Model(PT(new(T))).Where(eq(r.desc.IDColumn, id))
		if guarded {
			query = query.Where(clause.Neq{Column: clause.Column{Name: "status"}, Value: model.StatusInactive})
		}
		result := query.Select(columns).Updates(rec)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return updated, r.translate(ctx, "update", err, &entity)
	}
	if affected == 0 {
		if !guarded {
			return updated, &sharedError.NotFoundError{Entity: r.desc.Entity, ID: id}
		}
		current, found, err := r.currentStatus(ctx, id)
		if err != nil {
			return updated, err
		}
		if !found {
			return updated, &sharedError.NotFoundError{Entity: r.desc.Entity, ID: id}
		}
		return updated, r.disallowed(id, current, status)
	}

	return entity, nil
}

// Deactivate moves the row to inactive unless it already is.
func (r *Repository[T, PT]) Deactivate(ctx context.Context, id string) error {
	return r.Transition(ctx, id, model.StatusInactive)
}

// Transition sets status to target with a single conditional UPDATE:
//
//	UPDATE t SET status = target, updated_at = max(updated_at, now) WHERE id = ? AND status <> target [AND status IN (from...)]
//
// When no row matches, a follow-up probe tells a missing row (NotFound) from one already in
// target (AlreadyInTargetState) or in a state outside from (InvalidTransition). The row may
// change between the two statements; the probe reports what it sees.
func (r *Repository[T, PT]) Transition(ctx context.Context, id string, target model.Status, from ...model.Status) (err error) {
	defer r.observe("transition", time.Now(), &err)

	if !r.desc.allows(target) {
		return r.disallowed(id, model.StatusUnset, target)
	}

	now := r.now()
	var affected int64
	err = r.pool.WithConn(ctx, func(tx *gorm.DB) error {
		query := tx.Model(PT(new(T))).
			Where(eq(r.desc.IDColumn, id)).
			Where(clause.Neq{Column: clause.Column{Name: "status"}, Value: target})
		if len(from) > 0 {
			query = query.Where(clause.IN{Column: clause.Column{Name: "status"}, Values: statusValues(from)})
		}

		// updated_at은 뒤로 가지 않는다 (호스트 간 시계 차이)
		result := query.Updates(map[string]any{
			"status":     target,
			"updated_at": gorm.Expr("CASE WHEN updated_at > ? THEN updated_at ELSE ? END", now, now),
		})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return r.translate(ctx, "transition", err, nil)
	}
	if affected > 0 {
		return nil
	}

	current, found, err := r.currentStatus(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return &sharedError.NotFoundError{Entity: r.desc.Entity, ID: id}
	}
	return &sharedError.StateError{
		Entity:  r.desc.Entity,
		ID:      id,
		Current: current.String(),
		Target:  target.String(),
	}
}

// Delete physically removes the row. Only descriptors with HardDelete allow it.
func (r *Repository[T, PT]) Delete(ctx context.Context, id string) (err error) {
	defer r.observe("delete", time.Now(), &err)

	if !r.desc.HardDelete {
		return sharedError.NewPersistenceError(r.desc.Entity+": hard delete is not supported", nil)
	}

	var affected int64
	err = r.pool.WithConn(ctx, func(tx *gorm.DB) error {
		result := tx.Where(eq(r.desc.IDColumn, id)).Delete(PT(new(T)))
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return r.translate(ctx, "delete", err, nil)
	}
	if affected == 0 {
		return &sharedError.NotFoundError{Entity: r.desc.Entity, ID: id}
	}
	return nil
}

// ExistsByID reports whether a row with identity id exists.
func (r *Repository[T, PT]) ExistsByID(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, r.table, r.desc.IDColumn, id)
}

// ExistsBy reports whether a row with the unique column equal to value exists.
func (r *Repository[T, PT]) ExistsBy(ctx context.Context, column, value string) (bool, error) {
	if !r.desc.isUnique(column) {
		return false, r.unknownColumn(column)
	}
	return r.exists(ctx, r.table, column, value)
}

// ExistsByParent reports whether any row references parentID through the primary parent.
func (r *Repository[T, PT]) ExistsByParent(ctx context.Context, parentID string) (bool, error) {
	parent, err := r.primaryParent()
	if err != nil {
		return false, err
	}
	return r.ExistsByParentColumn(ctx, parent.Column, parentID)
}

// ExistsByParentColumn reports whether any row references parentID through column.
func (r *Repository[T, PT]) ExistsByParentColumn(ctx context.Context, column, parentID string) (bool, error) {
	if _, ok := r.desc.parent(column); !ok {
		return false, r.unknownColumn(column)
	}
	return r.exists(ctx, r.table, column, parentID)
}

func (r *Repository[T, PT]) checkParents(ctx context.Context, entity *T) error {
	for _, parent := range r.desc.Parents {
		id := parent.Value(entity)
		if id == "" {
			return &sharedError.ReferenceError{Parent: parent.Entity, ID: id}
		}

		ok, err := r.exists(ctx, parent.Table, parent.Key, id)
		if err != nil {
			return err
		}
		if !ok {
			logger.FromContext(ctx).Debug("상위 항목 없음",
				"entity", r.desc.Entity, "parent", parent.Entity, "parent_id", id,
			)
			return &sharedError.ReferenceError{Parent: parent.Entity, ID: id}
		}
	}
	return nil
}

func (r *Repository[T, PT]) exists(ctx context.Context, table, column, value string) (found bool, err error) {
	defer r.observe("exists", time.Now(), &err)

	var count int64
	err = r.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Table(table).Where(eq(column, value)).Count(&count).Error
	})
	if err != nil {
		return false, r.translate(ctx, "exists", err, nil)
	}
	return count > 0, nil
}

func (r *Repository[T, PT]) currentStatus(ctx context.Context, id string) (model.Status, bool, error) {
	var statuses []model.Status
	err := r.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Model(PT(new(T))).
			Where(eq(r.desc.IDColumn, id)).
			Limit(1).
			Pluck("status", &statuses).Error
	})
	if err != nil {
		return model.StatusUnset, false, r.translate(ctx, "transition", err, nil)
	}
	if len(statuses) == 0 {
		return model.StatusUnset, false, nil
	}
	return statuses[0], true, nil
}

func (r *Repository[T, PT]) findOne(ctx context.Context, op, column, value string) (entity T, ok bool, err error) {
	var found []T
	err = r.pool.WithConn(ctx, func(tx *gorm.DB) error {
		return tx.Where(eq(column, value)).Limit(1).Find(&found).Error
	})
	if err != nil {
		return entity, false, r.translate(ctx, op, err, nil)
	}
	if len(found) == 0 {
		return entity, false, nil
	}
	return found[0], true, nil
}

func (r *Repository[T, PT]) findMany(ctx context.Context, op string, cond clause.Expression) ([]T, error) {
	entities := []T{}
	err := r.pool.WithConn(ctx, func(tx *gorm.DB) error {
		query := tx.Model(PT(new(T)))
		if cond != nil {
			query = query.Where(cond)
		}
		return query.
			Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: r.desc.IDColumn}, Desc: true}).
			Find(&entities).Error
	})
	if err != nil {
		return nil, r.translate(ctx, op, err, nil)
	}
	return entities, nil
}

func (r *Repository[T, PT]) translate(ctx context.Context, op string, err error, entity *T) error {
	var lookup func(string) string
	if entity != nil {
		lookup = func(column string) string { return r.desc.valueOf(entity, column) }
	}

	translated := r.translator.Translate(op, err, lookup)
	if errors.Is(translated, sharedError.ErrPersistenceFailure) || errors.Is(translated, sharedError.ErrResourceUnavailable) {
		logger.FromContext(ctx).Error("repository 실패",
			"entity", r.desc.Entity, "op", op, "error", translated,
		)
	}
	return translated
}

func (r *Repository[T, PT]) primaryParent() (ParentRef[T], error) {
	if len(r.desc.Parents) == 0 {
		return ParentRef[T]{}, sharedError.NewPersistenceError(r.desc.Entity+": no parent reference declared", nil)
	}
	return r.desc.Parents[0], nil
}

func (r *Repository[T, PT]) disallowed(id string, current, target model.Status) error {
	return &sharedError.StateError{
		Entity:  r.desc.Entity,
		ID:      id,
		Current: current.String(),
		Target:  target.String(),
	}
}

func (r *Repository[T, PT]) unknownColumn(column string) error {
	return sharedError.NewPersistenceError(fmt.Sprintf("%s: column %q is not a declared key", r.desc.Entity, column), nil)
}

func (r *Repository[T, PT]) observe(op string, start time.Time, err *error) {
	r.metrics.Observe(r.desc.Entity, op, start, *err)
}

func eq(column string, value any) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

func statusValues(statuses []model.Status) []any {
	values := make([]any, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, s)
	}
	return values
}
