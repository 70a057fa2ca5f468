package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type DeliveryFilter struct {
	StaffID     *uuid.UUID
	PropertyRef *uuid.UUID
	Limit       int
}

type DeliveryRepository interface {
	Create(ctx context.Context, d *models.Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	ListDeliveries(ctx context.Context, f DeliveryFilter) ([]*models.Delivery, error)
	CountByStaff(ctx context.Context) (map[uuid.UUID]int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type deliveryRepo struct {
	db DB
}

func NewDeliveryRepository(db DB) DeliveryRepository {
	return &deliveryRepo{db: db}
}

func baseSelectDelivery() string {
	return `
        SELECT id, property_ref, staff_id, outcome, receiver_name,
               receiver_relation, latitude, longitude, photo_url,
               thumbnail_url, remarks, created_at
        FROM deliveries`
}

func scanDelivery(row pgx.Row) (*models.Delivery, error) {
	d := &models.Delivery{}
	err := row.Scan(
		&d.ID, &d.PropertyRef, &d.StaffID, &d.Outcome, &d.ReceiverName,
		&d.ReceiverRelation, &d.Latitude, &d.Longitude, &d.PhotoURL,
		&d.ThumbnailURL, &d.Remarks, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *deliveryRepo) Create(ctx context.Context, d *models.Delivery) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO deliveries (
            id, property_ref, staff_id, outcome, receiver_name,
            receiver_relation, latitude, longitude, photo_url,
            thumbnail_url, remarks, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW())
    `,
		d.ID,
		d.PropertyRef,
		d.StaffID,
		d.Outcome,
		d.ReceiverName,
		d.ReceiverRelation,
		d.Latitude,
		d.Longitude,
		d.PhotoURL,
		d.ThumbnailURL,
		d.Remarks,
	)
	return err
}

func (r *deliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	d, err := scanDelivery(r.db.QueryRow(ctx, baseSelectDelivery()+" WHERE id=$1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

func (r *deliveryRepo) ListDeliveries(ctx context.Context, f DeliveryFilter) ([]*models.Delivery, error) {
	sql := baseSelectDelivery() + " WHERE 1=1"
	args := []interface{}{}

	if f.StaffID != nil {
		args = append(args, *f.StaffID)
		sql += fmt.Sprintf(" AND staff_id=$%d", len(args))
	}
	if f.PropertyRef != nil {
		args = append(args, *f.PropertyRef)
		sql += fmt.Sprintf(" AND property_ref=$%d", len(args))
	}

	sql += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *deliveryRepo) CountByStaff(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT staff_id, COUNT(*) FROM deliveries GROUP BY staff_id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID]int{}
	for rows.Next() {
		var staffID uuid.UUID
		var n int
		if err := rows.Scan(&staffID, &n); err != nil {
			return nil, err
		}
		out[staffID] = n
	}
	return out, rows.Err()
}
