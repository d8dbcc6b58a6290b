package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrRecordNotFound is returned by the plain bun repositories when a lookup
// matches no row.
var ErrRecordNotFound = errors.New("record not found")

// Projects is the narrow repository surface for email-collection projects.
type Projects interface {
	Create(ctx context.Context, record *Project) (*Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*Project, error)
	ListByUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) ([]*Project, error)

	// DeleteOwnedTx deletes the project only when userID is its recorded
	// owner. It reports the number of rows removed; zero means the project
	// does not exist or belongs to someone else.
	DeleteOwnedTx(ctx context.Context, tx bun.IDB, id, userID uuid.UUID) (int64, error)
	DeleteByUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error
}

type projects struct {
	db *bun.DB
}

var _ Projects = (*projects)(nil)

func NewProjectsRepository(db *bun.DB) Projects {
	return &projects{db: db}
}

func (r *projects) Create(ctx context.Context, record *Project) (*Project, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := r.db.NewInsert().Model(record).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *projects) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	record := &Project{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return record, nil
}

func (r *projects) GetOwned(ctx context.Context, id, userID uuid.UUID) (*Project, error) {
	record := &Project{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return record, nil
}

func (r *projects) ListByUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) ([]*Project, error) {
	var records []*Project
	err := tx.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *projects) DeleteOwnedTx(ctx context.Context, tx bun.IDB, id, userID uuid.UUID) (int64, error) {
	res, err := tx.NewDelete().
		Model((*Project)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *projects) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*Project)(nil)).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	return err
}
