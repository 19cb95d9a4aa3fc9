package ad

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/vhpires/groupcast/internal/model"
)

// Repository provides read access to ad items for the dispatch loop.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new ad repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Items retrieves the items of an ad in position order. An empty slice
// means the ad has nothing to send; the caller decides what that means.
func (r *Repository) Items(ctx context.Context, adID uuid.UUID) ([]model.AdItem, error) {
	query := `
		SELECT id, ad_id, COALESCE(image_url, ''), COALESCE(text, ''), position
		FROM ad_items
		WHERE ad_id = $1
		ORDER BY position;
    `

	rows, err := r.db.QueryContext(ctx, query, adID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ad items: %w", err)
	}
	defer rows.Close()

	var items []model.AdItem
	for rows.Next() {
		var item model.AdItem
		if err := rows.Scan(&item.ID, &item.AdID, &item.ImageURL, &item.Text, &item.Position); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
