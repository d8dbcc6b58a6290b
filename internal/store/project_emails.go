package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProjectEmails is the narrow repository surface for collected addresses.
type ProjectEmails interface {
	Add(ctx context.Context, record *ProjectEmail) (*ProjectEmail, error)
	Exists(ctx context.Context, projectID uuid.UUID, email string) (bool, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*ProjectEmail, error)

	// DeleteTx removes a single address by (id, project id). Zero rows means
	// the address does not exist under that project.
	DeleteTx(ctx context.Context, tx bun.IDB, id, projectID uuid.UUID) (int64, error)
	DeleteByProjectTx(ctx context.Context, tx bun.IDB, projectID uuid.UUID) error
	DeleteByUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error
}

type projectEmails struct {
	db *bun.DB
}

var _ ProjectEmails = (*projectEmails)(nil)

func NewProjectEmailsRepository(db *bun.DB) ProjectEmails {
	return &projectEmails{db: db}
}

func (r *projectEmails) Add(ctx context.Context, record *ProjectEmail) (*ProjectEmail, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := r.db.NewInsert().Model(record).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *projectEmails) Exists(ctx context.Context, projectID uuid.UUID, email string) (bool, error) {
	return r.db.NewSelect().
		Model((*ProjectEmail)(nil)).
		Where("?TableAlias.project_id = ?", projectID).
		Where("?TableAlias.email = ?", email).
		Exists(ctx)
}

func (r *projectEmails) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*ProjectEmail, error) {
	records := []*ProjectEmail{}
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.project_id = ?", projectID).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *projectEmails) DeleteTx(ctx context.Context, tx bun.IDB, id, projectID uuid.UUID) (int64, error) {
	res, err := tx.NewDelete().
		Model((*ProjectEmail)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.project_id = ?", projectID).
		Exec(ctx)

	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *projectEmails) DeleteByProjectTx(ctx context.Context, tx bun.IDB, projectID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*ProjectEmail)(nil)).
		Where("?TableAlias.project_id = ?", projectID).
		Exec(ctx)

	return err
}

// DeleteByUserTx removes every address under every project owned by userID.
func (r *projectEmails) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*ProjectEmail)(nil)).
		Where("?TableAlias.project_id IN (SELECT id FROM projects WHERE user_id = ?)", userID).
		Exec(ctx)

	return err
}
