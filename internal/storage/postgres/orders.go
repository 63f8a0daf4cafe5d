package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tolyara/webshop/internal/domain"
)

// MakeOrder сохраняет шапку заказа и все его позиции в одной транзакции.
// Каждая позиция — денормализованный снимок товара на момент оформления.
func (s *shopStorage) MakeOrder(order domain.Order) (int64, error) {
	status := order.Status
	if status == "" {
		status = domain.OrderStatusNew
	}
	status, err := domain.RecognizeOrderStatus(string(status))
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (account_name_fk, status, total_price)
		VALUES ($1,$2,$3)
		RETURNING order_id
	`, order.UserLogin, string(status), order.TotalPrice).Scan(&orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNoGeneratedID
			return 0, err
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Products {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_product (
				order_id, product_id, product_name, category_id, manufacturer_name,
				price, creation_date, colour, size, ordered_amount
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			orderID, item.ID, item.Name, item.CategoryID, item.ManufacturerName,
			item.Price, item.CreationDate, item.Colour, item.Size, item.Amount,
		); err != nil {
			return 0, fmt.Errorf("insert ordered product: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit make order: %w", err)
	}

	return orderID, nil
}

// UserOrders возвращает заказы пользователя вместе с позициями.
func (s *shopStorage) UserOrders(login string) (map[int64]domain.Order, error) {
	return s.selectOrders(`
		SELECT order_id, account_name_fk, status, total_price
		FROM orders
		WHERE account_name_fk = $1
	`, login)
}

// AllOrders возвращает все заказы вместе с позициями.
func (s *shopStorage) AllOrders() (map[int64]domain.Order, error) {
	return s.selectOrders(`
		SELECT order_id, account_name_fk, status, total_price
		FROM orders
	`)
}

// ChangeOrderStatus переводит заказ в новый статус, предварительно прогнав
// текст через словарь статусов.
func (s *shopStorage) ChangeOrderStatus(orderID int64, statusText string) error {
	status, err := domain.RecognizeOrderStatus(statusText)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE order_id = $2
	`, string(status), orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (s *shopStorage) selectOrders(query string, args ...any) (map[int64]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make(map[int64]domain.Order)
	for rows.Next() {
		var (
			order      domain.Order
			statusText string
		)
		if err := rows.Scan(&order.ID, &order.UserLogin, &statusText, &order.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		// Статус из БД обязан проходить через распознаватель: мусор в колонке
		// status — повод упасть, а не молча продолжить.
		status, err := domain.RecognizeOrderStatus(statusText)
		if err != nil {
			return nil, fmt.Errorf("order %d status %q: %w", order.ID, statusText, err)
		}
		order.Status = status
		orders[order.ID] = order
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for id, order := range orders {
		products, err := s.orderedProductsByOrderID(ctx, id)
		if err != nil {
			return nil, err
		}
		order.Products = products
		orders[id] = order
	}

	return orders, nil
}

// orderedProductsByOrderID загружает снимки позиций точечным запросом
// по индексу order_id.
func (s *shopStorage) orderedProductsByOrderID(ctx context.Context, orderID int64) (map[int64]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, product_name, category_id, manufacturer_name,
		       price, creation_date, colour, size, ordered_amount
		FROM order_product
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load ordered products: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]domain.Product)
	for rows.Next() {
		var (
			product domain.Product
			colour  sql.NullString
		)
		if err := rows.Scan(
			&product.ID, &product.Name, &product.CategoryID, &product.ManufacturerName,
			&product.Price, &product.CreationDate, &colour, &product.Size, &product.Amount,
		); err != nil {
			return nil, fmt.Errorf("scan ordered product: %w", err)
		}
		if colour.Valid {
			product.Colour = &colour.String
		}
		products[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ordered products: %w", err)
	}

	return products, nil
}
