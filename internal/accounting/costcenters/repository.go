package costcenters

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
)

// activeCostCenters hides soft-deleted rows from every query so a deleted
// cost center's code can be reused.
const activeCostCenters = `cc.deleted_at IS NULL`

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]CostCenter, int, error)
	Get(ctx context.Context, id int64) (CostCenter, error)
	Create(ctx context.Context, cc CostCenter) (int64, error)
	Update(ctx context.Context, cc CostCenter) error
	SoftDelete(ctx context.Context, id int64) error
	CodeInUse(ctx context.Context, code string, excludeID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]CostCenter, int, error) {
	where := ` WHERE ` + activeCostCenters
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		p := `$` + strconv.Itoa(argCount)
		where += ` AND (cc.code ILIKE ` + p + ` OR cc.name ILIKE ` + p + ` OR cc.name_en ILIKE ` + p + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Type != "" {
		argCount++
		where += ` AND cc.type = $` + strconv.Itoa(argCount)
		args = append(args, filters.Type)
	}
	if filters.IsActive != nil {
		argCount++
		where += ` AND cc.is_active = $` + strconv.Itoa(argCount)
		args = append(args, *filters.IsActive)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cost_centers cc`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT cc.id, cc.code, cc.name, cc.name_en, cc.type, cc.parent_id, cc.manager_id,
	cc.description, cc.is_active, cc.created_at, cc.updated_at
FROM cost_centers cc` + where + ` ORDER BY cc.code ASC`

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []CostCenter
	for rows.Next() {
		var cc CostCenter
		err := rows.Scan(&cc.ID, &cc.Code, &cc.Name, &cc.NameEn, &cc.Type, &cc.ParentID, &cc.ManagerID,
			&cc.Description, &cc.IsActive, &cc.CreatedAt, &cc.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, cc)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (CostCenter, error) {
	var cc CostCenter
	err := r.db.QueryRow(ctx, `SELECT cc.id, cc.code, cc.name, cc.name_en, cc.type, cc.parent_id, cc.manager_id,
	cc.description, cc.is_active, cc.created_at, cc.updated_at
FROM cost_centers cc WHERE cc.id = $1 AND `+activeCostCenters, id).
		Scan(&cc.ID, &cc.Code, &cc.Name, &cc.NameEn, &cc.Type, &cc.ParentID, &cc.ManagerID,
			&cc.Description, &cc.IsActive, &cc.CreatedAt, &cc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CostCenter{}, shared.ErrCostCenterNotFound
		}
		return CostCenter{}, err
	}
	return cc, nil
}

func (r *repository) Create(ctx context.Context, cc CostCenter) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO cost_centers
	(code, name, name_en, type, parent_id, manager_id, description, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
		cc.Code, cc.Name, cc.NameEn, cc.Type, cc.ParentID, cc.ManagerID, cc.Description, cc.IsActive).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, cc CostCenter) error {
	cmd, err := r.db.Exec(ctx, `UPDATE cost_centers cc SET
	code=$2, name=$3, name_en=$4, type=$5, parent_id=$6, manager_id=$7,
	description=$8, is_active=$9, updated_at=NOW()
WHERE cc.id=$1 AND `+activeCostCenters,
		cc.ID, cc.Code, cc.Name, cc.NameEn, cc.Type, cc.ParentID, cc.ManagerID, cc.Description, cc.IsActive)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrCostCenterNotFound
	}
	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE cost_centers cc SET deleted_at=NOW(), updated_at=NOW() WHERE cc.id=$1 AND `+activeCostCenters, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrCostCenterNotFound
	}
	return nil
}

func (r *repository) CodeInUse(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cost_centers cc WHERE cc.code=$1 AND cc.id<>$2 AND `+activeCostCenters+`)`, code, excludeID).Scan(&exists)
	return exists, err
}
