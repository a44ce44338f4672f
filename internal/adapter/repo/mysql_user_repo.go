package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/go-sql-driver/mysql"
)

type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

func (r *MySQLUserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id,full_name,email,password_hash,phone_number,role)
VALUES (?,?,?,?,?,?)
`, u.ID, u.FullName, u.Email, u.PasswordHash, u.PhoneNumber, string(u.Role))
	if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
		return entity.ErrUserExists
	}
	return err
}

func (r *MySQLUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.get(ctx, `WHERE email=?`, email)
}

func (r *MySQLUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.get(ctx, `WHERE id=?`, id)
}

func (r *MySQLUserRepo) get(ctx context.Context, where string, arg any) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,full_name,email,password_hash,phone_number,role,created_at FROM users `+where, arg)
	var u entity.User
	var phone sql.NullString
	var role string
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &phone, &role, &u.CreatedAt); err != nil {
		return nil, mapNoRows(err, entity.ErrUserNotFound)
	}
	u.PhoneNumber = phone.String
	u.Role = entity.Role(role)
	return &u, nil
}

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)

// MySQLWishlistRepo keys saved products by (user, product); adding twice is
// a no-op at the storage level.
type MySQLWishlistRepo struct{ db *sql.DB }

func NewMySQLWishlistRepo(db *sql.DB) *MySQLWishlistRepo { return &MySQLWishlistRepo{db: db} }

func (r *MySQLWishlistRepo) Has(ctx context.Context, userID, productID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM wishlist_items WHERE user_id=? AND product_id=?`, userID, productID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *MySQLWishlistRepo) Add(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO wishlist_items (user_id,product_id) VALUES (?,?)`, userID, productID)
	return err
}

func (r *MySQLWishlistRepo) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id=? AND product_id=?`, userID, productID)
	return err
}

func (r *MySQLWishlistRepo) List(ctx context.Context, userID string) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT p.id,p.name,p.description,p.brand,p.category,p.price,p.discount,p.colors_json,p.stock,p.owner_id,p.created_at,p.updated_at
FROM wishlist_items w
JOIN products p ON p.id = w.product_id
WHERE w.user_id=?
ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Product
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
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ usecase.WishlistRepo = (*MySQLWishlistRepo)(nil)
