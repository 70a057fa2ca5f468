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

// PropertyFilter narrows ListProperties. Zero values mean "no filter".
type PropertyFilter struct {
	WardID  *uuid.UUID
	Status  models.DeliveryStatus
	Mohalla string
	Search  string // matches property_id or owner_name, case-insensitive
	Limit   int
	Offset  int
}

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	GetByPropertyID(ctx context.Context, propertyID string) (*models.Property, error)

	// SetDeliveryOutcome is the only mutation path for
	// delivery_status / last_delivery_id. It is invoked exclusively
	// when a Delivery row has been created against the property.
	SetDeliveryOutcome(ctx context.Context, id uuid.UUID, deliveryID uuid.UUID, status models.DeliveryStatus) error

	ListProperties(ctx context.Context, f PropertyFilter) ([]*models.Property, error)
	CountByStatus(ctx context.Context) (map[models.DeliveryStatus]int, error)
	CountByWardAndStatus(ctx context.Context) (map[uuid.UUID]map[models.DeliveryStatus]int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func baseSelectProperty() string {
	return `
        SELECT id, property_id, ward_id, mohalla, owner_name, address,
               house_no, property_type, corporate_ward_no,
               delivery_status, last_delivery_id, created_at
        FROM properties`
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	p := &models.Property{}
	err := row.Scan(
		&p.ID, &p.PropertyID, &p.WardID, &p.Mohalla, &p.OwnerName, &p.Address,
		&p.HouseNo, &p.PropertyType, &p.CorporateWardNo,
		&p.DeliveryStatus, &p.LastDeliveryID, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, property_id, ward_id, mohalla, owner_name, address,
            house_no, property_type, corporate_ward_no,
            delivery_status, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW())
    `,
		p.ID,
		p.PropertyID,
		p.WardID,
		p.Mohalla,
		p.OwnerName,
		p.Address,
		p.HouseNo,
		p.PropertyType,
		p.CorporateWardNo,
		p.DeliveryStatus,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := scanProperty(r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *propertyRepo) GetByPropertyID(ctx context.Context, propertyID string) (*models.Property, error) {
	p, err := scanProperty(r.db.QueryRow(ctx, baseSelectProperty()+" WHERE property_id=$1", propertyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *propertyRepo) SetDeliveryOutcome(
	ctx context.Context,
	id uuid.UUID,
	deliveryID uuid.UUID,
	status models.DeliveryStatus,
) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE properties
        SET delivery_status=$2, last_delivery_id=$3
        WHERE id=$1
    `, id, status, deliveryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) ListProperties(ctx context.Context, f PropertyFilter) ([]*models.Property, error) {
	sql := baseSelectProperty() + " WHERE 1=1"
	args := []interface{}{}

	if f.WardID != nil {
		args = append(args, *f.WardID)
		sql += fmt.Sprintf(" AND ward_id=$%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		sql += fmt.Sprintf(" AND delivery_status=$%d", len(args))
	}
	if f.Mohalla != "" {
		args = append(args, f.Mohalla)
		sql += fmt.Sprintf(" AND mohalla=$%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		sql += fmt.Sprintf(" AND (property_id ILIKE $%d OR owner_name ILIKE $%d)", len(args), len(args))
	}

	sql += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) CountByStatus(ctx context.Context) (map[models.DeliveryStatus]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT delivery_status, COUNT(*) FROM properties GROUP BY delivery_status
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.DeliveryStatus]int{}
	for rows.Next() {
		var status models.DeliveryStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *propertyRepo) CountByWardAndStatus(ctx context.Context) (map[uuid.UUID]map[models.DeliveryStatus]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT ward_id, delivery_status, COUNT(*)
        FROM properties
        GROUP BY ward_id, delivery_status
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID]map[models.DeliveryStatus]int{}
	for rows.Next() {
		var wardID uuid.UUID
		var status models.DeliveryStatus
		var n int
		if err := rows.Scan(&wardID, &status, &n); err != nil {
			return nil, err
		}
		if out[wardID] == nil {
			out[wardID] = map[models.DeliveryStatus]int{}
		}
		out[wardID][status] = n
	}
	return out, rows.Err()
}
