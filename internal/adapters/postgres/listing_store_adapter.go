package postgres

import (
	"context"
	"errors"
	"fmt"

	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingColumns = `
	id, created_at, updated_at, title, slug, type, status, price, price_suffix,
	area, rooms, address, city, zip, description, features, images,
	is_featured, published, latitude, longitude`

// ListingStoreAdapter implements RemoteStorePort for the hosted PostgreSQL
// `listings` table. Every failure is wrapped in *domain.RemoteError so the
// use cases can treat the remote side as soft.
type ListingStoreAdapter struct {
	pool *pgxpool.Pool
}

func NewListingStoreAdapter(pool *pgxpool.Pool) (*ListingStoreAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ListingStoreAdapter{pool: pool}, nil
}

func (a *ListingStoreAdapter) SelectPublished(ctx context.Context) ([]domain.ListingRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE published = true ORDER BY created_at DESC`, listingColumns)
	return a.selectListings(ctx, "SelectPublished", query)
}

func (a *ListingStoreAdapter) SelectAll(ctx context.Context) ([]domain.ListingRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings ORDER BY created_at DESC`, listingColumns)
	return a.selectListings(ctx, "SelectAll", query)
}

func (a *ListingStoreAdapter) selectListings(ctx context.Context, op, query string, args ...any) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingStoreAdapter",
		"method":    op,
	})

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Err: err}
	}
	defer rows.Close()

	var records []domain.ListingRecord
	for rows.Next() {
		rec, err := scanListing(rows)
		if err != nil {
			return nil, &domain.RemoteError{Op: op, Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.RemoteError{Op: op, Err: err}
	}

	logger.Debug("Selected listings", port.Fields{"count": len(records)})
	return records, nil
}

func (a *ListingStoreAdapter) Insert(ctx context.Context, rec domain.ListingRecord) (*domain.ListingRecord, error) {
	query := fmt.Sprintf(`
		INSERT INTO listings (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING %s`, listingColumns, listingColumns)

	row := a.pool.QueryRow(ctx, query,
		rec.ID, rec.CreatedAt, rec.UpdatedAt, rec.Title, rec.Slug, rec.Category,
		rec.Status, rec.Price, nullableString(rec.PriceSuffix), rec.Area, rec.Rooms,
		rec.Address, rec.City, rec.Zip, nullableString(rec.Description),
		rec.Features, rec.Images, rec.IsFeatured, rec.Published,
		rec.Latitude, rec.Longitude,
	)

	stored, err := scanListing(row)
	if err != nil {
		return nil, &domain.RemoteError{Op: "Insert", Err: err}
	}
	return &stored, nil
}

func (a *ListingStoreAdapter) Update(ctx context.Context, payload domain.UpsertPayload) (*domain.ListingRecord, error) {
	set, args := buildUpdateSet(payload)
	args = append(args, payload.ID)

	query := fmt.Sprintf(`UPDATE listings SET %s WHERE id = $%d RETURNING %s`,
		set, len(args), listingColumns)

	stored, err := scanListing(a.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.RemoteError{Op: "Update", Err: err}
	}
	return &stored, nil
}

func (a *ListingStoreAdapter) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return false, &domain.RemoteError{Op: "Delete", Err: err}
	}
	return tag.RowsAffected() > 0, nil
}

// buildUpdateSet turns the non-nil payload fields into a SET clause. The
// updated_at stamp always moves; everything else is optional.
func buildUpdateSet(p domain.UpsertPayload) (string, []any) {
	set := "updated_at = now()"
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Slug != nil {
		add("slug", *p.Slug)
	}
	if p.Category != nil {
		add("type", *p.Category)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.PriceSuffix != nil {
		add("price_suffix", *p.PriceSuffix)
	}
	if p.Area != nil {
		add("area", *p.Area)
	}
	if p.Rooms != nil {
		add("rooms", *p.Rooms)
	}
	if p.Address != nil {
		add("address", *p.Address)
	}
	if p.City != nil {
		add("city", *p.City)
	}
	if p.Zip != nil {
		add("zip", *p.Zip)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Features != nil {
		add("features", *p.Features)
	}
	if p.Images != nil {
		add("images", *p.Images)
	}
	if p.IsFeatured != nil {
		add("is_featured", *p.IsFeatured)
	}
	if p.Published != nil {
		add("published", *p.Published)
	}
	if p.Latitude != nil {
		add("latitude", *p.Latitude)
	}
	if p.Longitude != nil {
		add("longitude", *p.Longitude)
	}

	return set, args
}

func scanListing(row pgx.Row) (domain.ListingRecord, error) {
	var (
		rec         domain.ListingRecord
		priceSuffix *string
		description *string
		features    []string
		images      []string
	)

	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.UpdatedAt, &rec.Title, &rec.Slug,
		&rec.Category, &rec.Status, &rec.Price, &priceSuffix, &rec.Area,
		&rec.Rooms, &rec.Address, &rec.City, &rec.Zip, &description,
		&features, &images, &rec.IsFeatured, &rec.Published,
		&rec.Latitude, &rec.Longitude,
	)
	if err != nil {
		return domain.ListingRecord{}, err
	}

	if priceSuffix != nil {
		rec.PriceSuffix = *priceSuffix
	}
	if description != nil {
		rec.Description = *description
	}
	rec.Features = features
	if rec.Features == nil {
		rec.Features = []string{}
	}
	rec.Images = images
	if rec.Images == nil {
		rec.Images = []string{}
	}

	return rec, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
