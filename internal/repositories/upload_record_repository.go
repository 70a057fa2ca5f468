package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// UploadRecordRepository is constructed once at wiring time and
// injected everywhere the ledger is needed. Records are written once
// per import run and never mutated afterwards; the only other write
// paths are the explicit admin delete and the retention trim.
type UploadRecordRepository interface {
	Create(ctx context.Context, rec *models.UploadRecord) error
	ListRecent(ctx context.Context, limit int) ([]*models.UploadRecord, error)

	// Delete returns utils.ErrNotFound when no record has that id.
	Delete(ctx context.Context, id uuid.UUID) error

	// TrimOlderThanNewest deletes all but the newest keep records.
	TrimOlderThanNewest(ctx context.Context, keep int) (int64, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type uploadRecordRepo struct {
	db DB
}

func NewUploadRecordRepository(db DB) UploadRecordRepository {
	return &uploadRecordRepo{db: db}
}

func baseSelectUploadRecord() string {
	return `
        SELECT id, filename, uploaded_by, total, success, failed,
               duplicate, status, errors, created_at
        FROM upload_records`
}

func scanUploadRecord(row pgx.Row) (*models.UploadRecord, error) {
	rec := &models.UploadRecord{}
	err := row.Scan(
		&rec.ID, &rec.Filename, &rec.UploadedBy, &rec.Total, &rec.Success,
		&rec.Failed, &rec.Duplicate, &rec.Status, &rec.Errors, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *uploadRecordRepo) Create(ctx context.Context, rec *models.UploadRecord) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO upload_records (
            id, filename, uploaded_by, total, success, failed,
            duplicate, status, errors, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW())
    `,
		rec.ID,
		rec.Filename,
		rec.UploadedBy,
		rec.Total,
		rec.Success,
		rec.Failed,
		rec.Duplicate,
		rec.Status,
		rec.Errors,
	)
	return err
}

func (r *uploadRecordRepo) ListRecent(ctx context.Context, limit int) ([]*models.UploadRecord, error) {
	rows, err := r.db.Query(ctx, baseSelectUploadRecord()+" ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.UploadRecord
	for rows.Next() {
		rec, err := scanUploadRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *uploadRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM upload_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *uploadRecordRepo) TrimOlderThanNewest(ctx context.Context, keep int) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM upload_records
        WHERE id NOT IN (
            SELECT id FROM upload_records ORDER BY created_at DESC LIMIT $1
        )
    `, keep)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
