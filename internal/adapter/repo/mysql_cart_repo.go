package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/google/uuid"
)

// MySQLCartRepo stores one row per user. Lines live in a JSON column: the
// cart is a document, not a join target, and is always read and written
// whole.
type MySQLCartRepo struct{ db *sql.DB }

func NewMySQLCartRepo(db *sql.DB) *MySQLCartRepo { return &MySQLCartRepo{db: db} }

func (r *MySQLCartRepo) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,user_id,lines_json,total_price,created_at,updated_at
FROM carts WHERE user_id=?`, userID)

	var c entity.Cart
	var lines []byte
	if err := row.Scan(&c.ID, &c.UserID, &lines, &c.TotalPrice, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapNoRows(err, entity.ErrCartNotFound)
	}
	if err := json.Unmarshal(lines, &c.Lines); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MySQLCartRepo) Save(ctx context.Context, c *entity.Cart) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	lines := c.Lines
	if lines == nil {
		lines = []entity.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO carts (id,user_id,lines_json,total_price)
VALUES (?,?,?,?)
ON DUPLICATE KEY UPDATE lines_json=VALUES(lines_json), total_price=VALUES(total_price)
`, c.ID, c.UserID, raw, c.TotalPrice)
	return err
}

var _ usecase.CartRepo = (*MySQLCartRepo)(nil)
