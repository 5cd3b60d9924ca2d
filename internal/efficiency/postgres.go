package efficiency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
)

const (
	selectAllSQL = `SELECT blueprint_id, me, te, updated_at FROM blueprint_efficiency ORDER BY blueprint_id`
	selectOneSQL = `SELECT me, te FROM blueprint_efficiency WHERE blueprint_id = $1`
	upsertSQL    = `INSERT INTO blueprint_efficiency (blueprint_id, me, te, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (blueprint_id) DO UPDATE SET me = EXCLUDED.me, te = EXCLUDED.te, updated_at = NOW()`
	deleteSQL = `DELETE FROM blueprint_efficiency WHERE blueprint_id = $1`
)

// PostgresRepository stores overrides in the blueprint_efficiency table
type PostgresRepository struct {
	DB *sql.DB
}

// NewPostgresRepository wraps an open database handle
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) GetAll(ctx context.Context) (domain.EfficiencyOverrides, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(domain.EfficiencyOverrides, len(list))
	for _, o := range list {
		out[o.BlueprintID] = o.Efficiency
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.EfficiencyOverride, error) {
	rows, err := r.DB.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: list overrides: %v", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []domain.EfficiencyOverride
	for rows.Next() {
		var o domain.EfficiencyOverride
		if err := rows.Scan(&o.BlueprintID, &o.Efficiency.ME, &o.Efficiency.TE, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan override: %v", domain.ErrDatabaseError, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list overrides: %v", domain.ErrDatabaseError, err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, blueprintID domain.TypeID) (domain.Efficiency, error) {
	var eff domain.Efficiency
	err := r.DB.QueryRowContext(ctx, selectOneSQL, blueprintID).Scan(&eff.ME, &eff.TE)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Efficiency{}, domain.ErrBlueprintNotFound
	}
	if err != nil {
		return domain.Efficiency{}, fmt.Errorf("%w: get override: %v", domain.ErrDatabaseError, err)
	}
	return eff, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, blueprintID domain.TypeID, eff domain.Efficiency) error {
	if err := eff.Validate(); err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, upsertSQL, blueprintID, eff.ME, eff.TE); err != nil {
		return fmt.Errorf("%w: upsert override: %v", domain.ErrDatabaseError, err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, blueprintID domain.TypeID) error {
	res, err := r.DB.ExecContext(ctx, deleteSQL, blueprintID)
	if err != nil {
		return fmt.Errorf("%w: delete override: %v", domain.ErrDatabaseError, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete override: %v", domain.ErrDatabaseError, err)
	}
	if n == 0 {
		return domain.ErrBlueprintNotFound
	}
	return nil
}
