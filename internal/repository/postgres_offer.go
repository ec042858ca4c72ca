package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brewline/coffee-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOfferRepository stores offers as JSONB documents with an indexed
// array of product ids used for subset matching
type PostgresOfferRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOfferRepository(db *pgxpool.Pool) *PostgresOfferRepository {
	return &PostgresOfferRepository{db: db}
}

func (r *PostgresOfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	doc, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf("failed to encode offer: %w", err)
	}

	err = executor(ctx, r.db).QueryRow(ctx,
		`INSERT INTO offers (product_ids, doc) VALUES ($1, $2) RETURNING id`,
		offer.ProductIDs(), string(doc),
	).Scan(&offer.ID)
	if err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

func (r *PostgresOfferRepository) GetAll(ctx context.Context) ([]models.Offer, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `SELECT id, doc FROM offers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := make([]models.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read offer rows: %w", err)
	}
	return offers, nil
}

// FindMatching picks the lowest-id offer whose product ids are contained in ids
func (r *PostgresOfferRepository) FindMatching(ctx context.Context, ids []int64) (*models.Offer, error) {
	row := executor(ctx, r.db).QueryRow(ctx,
		`SELECT id, doc FROM offers
		 WHERE cardinality(product_ids) > 0 AND product_ids <@ $1::bigint[]
		 ORDER BY id
		 LIMIT 1`,
		ids,
	)

	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

func scanOffer(row pgx.Row) (*models.Offer, error) {
	var (
		id  int64
		doc []byte
	)
	if err := row.Scan(&id, &doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan offer: %w", err)
	}

	var offer models.Offer
	if err := json.Unmarshal(doc, &offer); err != nil {
		return nil, fmt.Errorf("failed to decode offer %d: %w", id, err)
	}
	offer.ID = id
	return &offer, nil
}
