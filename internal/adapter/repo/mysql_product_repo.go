package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) Create(ctx context.Context, p *entity.Product) error {
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO products (id,name,description,brand,category,price,discount,colors_json,stock,owner_id)
VALUES (?,?,?,?,?,?,?,?,?,?)
`, p.ID, p.Name, p.Description, p.Brand, p.Category, p.Price, p.Discount, colors, p.Stock, p.OwnerID)
	if err != nil {
		return err
	}

	for _, s := range p.Sizes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_sizes (product_id,size,stock) VALUES (?,?,?)`,
			p.ID, s.Size, s.Stock); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	prods, err := r.GetByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p, ok := prods[id]
	if !ok {
		return nil, entity.ErrProductNotFound
	}
	return p, nil
}

func (r *MySQLProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	ph := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id
		ph[i] = "?"
	}
	in := strings.Join(ph, ",")

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT id,name,description,brand,category,price,discount,colors_json,stock,owner_id,created_at,updated_at
FROM products WHERE id IN (%s)`, in), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Product
		var colors []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Brand, &p.Category,
			&p.Price, &p.Discount, &colors, &p.Stock, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if len(colors) > 0 {
			if err := json.Unmarshal(colors, &p.Colors); err != nil {
				return nil, err
			}
		}
		out[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	srows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT product_id,size,stock FROM product_sizes WHERE product_id IN (%s)`, in), args...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()

	for srows.Next() {
		var pid string
		var s entity.SizeStock
		if err := srows.Scan(&pid, &s.Size, &s.Stock); err != nil {
			return nil, err
		}
		if p, ok := out[pid]; ok {
			p.Sizes = append(p.Sizes, s)
		}
	}
	return out, srows.Err()
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)

// mapNoRows turns the driver's absence signal into a domain sentinel.
func mapNoRows(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}
