package repo

import (
	"context"
	"database/sql"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

type MySQLCouponRepo struct{ db *sql.DB }

func NewMySQLCouponRepo(db *sql.DB) *MySQLCouponRepo { return &MySQLCouponRepo{db: db} }

func (r *MySQLCouponRepo) Create(ctx context.Context, c *entity.Coupon) error {
	var maxDiscount any
	if c.MaxDiscount != nil {
		maxDiscount = *c.MaxDiscount
	}
	var usageLimit any
	if c.UsageLimit != nil {
		usageLimit = *c.UsageLimit
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO coupons (id,code,discount_type,discount_value,min_purchase,max_discount,usage_limit,used_count,is_active,expires_at)
VALUES (?,?,?,?,?,?,?,0,?,?)
`, c.ID, c.Code, string(c.DiscountType), c.DiscountValue, c.MinPurchase, maxDiscount, usageLimit, c.IsActive, c.ExpiresAt)
	if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
		return entity.ErrCouponExists
	}
	return err
}

func (r *MySQLCouponRepo) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,code,discount_type,discount_value,min_purchase,max_discount,usage_limit,used_count,is_active,expires_at,created_at
FROM coupons WHERE code=?`, code)

	var c entity.Coupon
	var dt string
	var maxDiscount decimal.NullDecimal
	var usageLimit sql.NullInt64
	if err := row.Scan(&c.ID, &c.Code, &dt, &c.DiscountValue, &c.MinPurchase,
		&maxDiscount, &usageLimit, &c.UsedCount, &c.IsActive, &c.ExpiresAt, &c.CreatedAt); err != nil {
		return nil, mapNoRows(err, entity.ErrCouponNotFound)
	}
	c.DiscountType = entity.DiscountType(dt)
	if maxDiscount.Valid {
		c.MaxDiscount = &maxDiscount.Decimal
	}
	if usageLimit.Valid {
		c.UsageLimit = &usageLimit.Int64
	}
	return &c, nil
}

var _ usecase.CouponRepo = (*MySQLCouponRepo)(nil)
