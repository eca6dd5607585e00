package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/domain/ports/repository"
)

var _ repository.DesignRepository = (*designRepo)(nil)

type designRepo struct{ pool *pgxpool.Pool }

func NewDesignRepo(pool *pgxpool.Pool) *designRepo {
	return &designRepo{pool: pool}
}

func (r *designRepo) FindAllPublished(ctx context.Context, tx repository.Tx) ([]model.DesignRecord, error) {
	const q = `
SELECT id, title, image_url, room_type, style, price, popularity, created_at, is_verified, badge
FROM designs
WHERE is_published = TRUE
ORDER BY popularity DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, fmt.Errorf("query designs: %w", err)
	}
	defer rows.Close()

	var out []model.DesignRecord
	for rows.Next() {
		var d model.DesignRecord
		var badge []byte
		if err := rows.Scan(&d.ID, &d.Title, &d.ImageURL, &d.RoomType, &d.Style, &d.Price, &d.Popularity, &d.CreatedAt, &d.IsVerified, &badge); err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		if len(badge) > 0 {
			var b model.Badge
			if err := json.Unmarshal(badge, &b); err == nil && b.Label != "" {
				d.Badge = &b
			}
		}
		d.Published = true
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *designRepo) Save(ctx context.Context, tx repository.Tx, d *model.DesignRecord) error {
	var badge []byte
	if d.Badge != nil {
		b, err := json.Marshal(d.Badge)
		if err != nil {
			return fmt.Errorf("marshal badge: %w", err)
		}
		badge = b
	}
	const q = `
INSERT INTO designs (id, title, image_url, room_type, style, price, popularity, created_at, is_verified, badge, is_published)
VALUES ($1,$2,$3,$4,$5,$6,$7,COALESCE($8,NOW()),$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  image_url = EXCLUDED.image_url,
  room_type = EXCLUDED.room_type,
  style = EXCLUDED.style,
  price = EXCLUDED.price,
  popularity = EXCLUDED.popularity,
  is_verified = EXCLUDED.is_verified,
  badge = EXCLUDED.badge,
  is_published = EXCLUDED.is_published;`
	_, err := execSQL(ctx, r.pool, tx, q, d.ID, d.Title, d.ImageURL, string(d.RoomType), string(d.Style), d.Price, d.Popularity, d.CreatedAt, d.IsVerified, badge, d.Published)
	if err != nil {
		return fmt.Errorf("save design: %w", err)
	}
	return nil
}
