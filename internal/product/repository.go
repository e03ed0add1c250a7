package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id int64, upd Update) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Product) (*Product, error) {
	query := `
		INSERT INTO products (title, description, image, weight, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.Image,
		p.Weight,
		p.Category,
		now,
		now,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert product: %w", err)
	}

	p.CreatedAt = now
	p.UpdatedAt = now

	return p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, title, description, image, weight, category, created_at, updated_at
		FROM products
		ORDER BY id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Image,
			&p.Weight,
			&p.Category,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}

	return products, nil
}

// Update reads the current row, overlays the supplied fields and writes
// the full row back, so omitted fields are never nulled out.
func (r *postgresRepository) Update(ctx context.Context, id int64, upd Update) (p *Product, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Int64("product_id", id).Msg("repository: failed to rollback product update")
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("repository: failed to commit product update: %w", commitErr)
			p = nil
		}
	}()

	selectQuery := `
		SELECT id, title, description, image, weight, category, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var current Product
	err = tx.QueryRow(ctx, selectQuery, id).Scan(
		&current.ID,
		&current.Title,
		&current.Description,
		&current.Image,
		&current.Weight,
		&current.Category,
		&current.CreatedAt,
		&current.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("repository: failed to select product %d for update: %w", id, err)
	}

	if upd.Title != nil {
		current.Title = *upd.Title
	}
	if upd.Description != nil {
		current.Description = *upd.Description
	}
	if upd.Image != nil {
		current.Image = *upd.Image
	}
	if upd.Weight != nil {
		current.Weight = *upd.Weight
	}
	if upd.Category != nil {
		current.Category = *upd.Category
	}
	current.UpdatedAt = time.Now().UTC()

	updateQuery := `
		UPDATE products
		SET title = $1, description = $2, image = $3, weight = $4, category = $5, updated_at = $6
		WHERE id = $7
	`

	_, err = tx.Exec(ctx, updateQuery,
		current.Title,
		current.Description,
		current.Image,
		current.Weight,
		current.Category,
		current.UpdatedAt,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to update product %d: %w", id, err)
	}

	return &current, nil
}

// Delete is idempotent: a missing row is not an error.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete product %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		log.Warn().Int64("product_id", id).Msg("repository: delete matched no rows")
	}

	return nil
}
