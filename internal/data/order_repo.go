package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/skadi15/fruitstand/internal/core"
	"github.com/skadi15/fruitstand/internal/data/pgxutil"
	"github.com/skadi15/fruitstand/internal/domain/model"
	apperrors "github.com/skadi15/fruitstand/internal/errors"
)

const (
	defaultListLimit = 50

	orderColumns = `id, num_apples, num_oranges, total_cents, created_at`

	orderInsertQuery = `
		INSERT INTO orders (id, num_apples, num_oranges, total_cents, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	orderGetByIDQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	orderListQuery    = `SELECT ` + orderColumns + ` FROM orders ORDER BY seq ASC LIMIT $1 OFFSET $2`
	orderCountQuery   = `SELECT count(*) FROM orders`
)

var _ core.OrderRepository = (*OrderRepo)(nil)

// OrderRepo provides PostgreSQL persistence for orders.
type OrderRepo struct {
	DB *sql.DB
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{DB: db}
}

// Create inserts a fully priced order. The caller assigns ID and CreatedAt.
func (r *OrderRepo) Create(ctx context.Context, order *model.Order) error {
	if order == nil {
		return errors.New("order is required")
	}
	if order.ID == uuid.Nil {
		return apperrors.Validation("order id is required")
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, orderInsertQuery,
			order.ID,
			order.NumApples,
			order.NumOranges,
			int64(order.TotalCents),
			order.CreatedAt.UTC(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert order: %w", apperrors.MapDBError(err))
	}
	return nil
}

// GetByID retrieves an order by ID.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var out model.Order
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, orderGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orderNotFound(id)
		}
		return nil, fmt.Errorf("get order by id: %w", apperrors.MapDBError(err))
	}
	out.SyncTotal()
	return &out, nil
}

// List returns orders in placement order.
func (r *OrderRepo) List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(opts.Offset, 0)

	var rowsOut []model.Order
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, orderListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Order])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Order, len(rowsOut))
	for i := range rowsOut {
		rowsOut[i].SyncTotal()
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of stored orders.
func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, orderCountQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", apperrors.MapDBError(err))
	}
	return n, nil
}
