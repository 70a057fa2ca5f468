package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type WardRepository interface {
	Create(ctx context.Context, w *models.Ward) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Ward, error)
	GetByCorporateAndName(ctx context.Context, corporateName, wardName string) (*models.Ward, error)

	// AppendMohalla adds name to the ward's mohalla set. It is a
	// no-op when the name is already present.
	AppendMohalla(ctx context.Context, id uuid.UUID, name string) error

	ListAll(ctx context.Context) ([]*models.Ward, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type wardRepo struct {
	db DB
}

func NewWardRepository(db DB) WardRepository {
	return &wardRepo{db: db}
}

func baseSelectWard() string {
	return `SELECT id, corporate_name, ward_name, mohallas, created_at FROM wards`
}

func scanWard(row pgx.Row) (*models.Ward, error) {
	w := &models.Ward{}
	err := row.Scan(&w.ID, &w.CorporateName, &w.WardName, &w.Mohallas, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *wardRepo) Create(ctx context.Context, w *models.Ward) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO wards (id, corporate_name, ward_name, mohallas, created_at)
        VALUES ($1, $2, $3, $4, NOW())
    `,
		w.ID,
		w.CorporateName,
		w.WardName,
		w.Mohallas,
	)
	return err
}

func (r *wardRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Ward, error) {
	w, err := scanWard(r.db.QueryRow(ctx, baseSelectWard()+" WHERE id=$1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

func (r *wardRepo) GetByCorporateAndName(ctx context.Context, corporateName, wardName string) (*models.Ward, error) {
	w, err := scanWard(r.db.QueryRow(
		ctx,
		baseSelectWard()+" WHERE corporate_name=$1 AND ward_name=$2",
		corporateName, wardName,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

func (r *wardRepo) AppendMohalla(ctx context.Context, id uuid.UUID, name string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE wards
        SET mohallas = array_append(mohallas, $2)
        WHERE id=$1 AND NOT (mohallas @> ARRAY[$2])
    `, id, name)
	return err
}

func (r *wardRepo) ListAll(ctx context.Context) ([]*models.Ward, error) {
	rows, err := r.db.Query(ctx, baseSelectWard()+" ORDER BY corporate_name, ward_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Ward
	for rows.Next() {
		w, err := scanWard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
