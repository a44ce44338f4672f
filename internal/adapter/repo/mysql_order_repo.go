package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Checkout persists the order and settles its side effects in one
// transaction: insert the order row, empty the user's cart, decrement stock
// conditionally, redeem the coupon conditionally. Any failed step rolls the
// whole placement back.
func (r *MySQLOrderRepo) Checkout(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	shipping, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var couponID any
	if o.CouponID != "" {
		couponID = o.CouponID
	}
	var txnID any
	if o.Payment.TransactionID != "" {
		txnID = o.Payment.TransactionID
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO orders (id,user_id,items_json,shipping_json,payment_method,payment_status,transaction_id,coupon_id,discount_amount,total_amount,order_status,placed_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
`, o.ID, o.UserID, items, shipping, string(o.Payment.Method), string(o.Payment.Status),
		txnID, couponID, o.DiscountAmount, o.TotalAmount, string(o.Status), o.PlacedAt); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE carts SET lines_json=JSON_ARRAY(), total_price=0 WHERE user_id=?`,
		o.UserID); err != nil {
		return err
	}

	for _, it := range o.Items {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - ? WHERE id=? AND stock >= ?`,
			it.Quantity, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: product %s", entity.ErrInsufficientStock, it.ProductID)
		}

		if it.SelectedSize != "" {
			res, err := tx.ExecContext(ctx,
				`UPDATE product_sizes SET stock = stock - ? WHERE product_id=? AND size=? AND stock >= ?`,
				it.Quantity, it.ProductID, it.SelectedSize, it.Quantity)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: product %s size %s", entity.ErrInsufficientStock, it.ProductID, it.SelectedSize)
			}
		}
	}

	if o.CouponID != "" {
		res, err := tx.ExecContext(ctx, `
UPDATE coupons
SET usage_limit = CASE WHEN usage_limit IS NULL THEN NULL ELSE usage_limit - 1 END,
    used_count  = used_count + 1
WHERE id=? AND (usage_limit IS NULL OR usage_limit > 0)`, o.CouponID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// Another order drained the last use between evaluation and here.
			return entity.ErrCouponExhausted
		}
	}

	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,user_id,items_json,shipping_json,payment_method,payment_status,transaction_id,coupon_id,discount_amount,total_amount,order_status,placed_at,delivered_at
FROM orders WHERE id=?`, id)

	var o entity.Order
	var items, shipping []byte
	var method, status, orderStatus string
	var txnID, couponID sql.NullString
	var delivered sql.NullTime
	if err := row.Scan(&o.ID, &o.UserID, &items, &shipping, &method, &status,
		&txnID, &couponID, &o.DiscountAmount, &o.TotalAmount, &orderStatus,
		&o.PlacedAt, &delivered); err != nil {
		return nil, mapNoRows(err, entity.ErrOrderNotFound)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
		return nil, err
	}
	o.Payment = entity.Payment{
		Method:        entity.PaymentMethod(method),
		Status:        entity.PaymentStatus(status),
		TransactionID: txnID.String,
	}
	o.CouponID = couponID.String
	o.Status = entity.OrderStatus(orderStatus)
	if delivered.Valid {
		t := delivered.Time
		o.DeliveredAt = &t
	}
	return &o, nil
}

// UpdateStatusIf applies a status transition only when the row still holds
// the expected current status. rows == 0 means not found or status mismatch.
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	set := `order_status=?`
	args := []any{string(to)}
	if to == entity.OrderDelivered {
		set += `, delivered_at=NOW()`
	}
	args = append(args, id, string(from))

	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET `+set+` WHERE id=? AND order_status=?`, args...)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

var _ usecase.OrderStore = (*MySQLOrderRepo)(nil)
