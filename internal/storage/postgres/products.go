package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tolyara/webshop/internal/domain"
)

const productColumns = `product_id, product_name, category_id_fk, manufacturer_name_fk,
		price, creation_date, colour, size, amount_in_storage`

// Products возвращает полный снимок каталога по id товара.
func (s *shopStorage) Products() (map[int64]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY product_id
	`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// AddProduct вставляет товар и возвращает присвоенный базой id.
// Отсутствие сгенерированного ключа — нарушение инварианта, ErrNoGeneratedID.
func (s *shopStorage) AddProduct(product domain.Product) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (
			product_name, category_id_fk, manufacturer_name_fk, price,
			creation_date, colour, size, amount_in_storage
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING product_id
	`,
		product.Name, product.CategoryID, product.ManufacturerName, product.Price,
		product.CreationDate, product.Colour, product.Size, product.Amount,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNoGeneratedID
		}
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateKey
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}

	return id, nil
}

// ProductByID возвращает товар точечным запросом по первичному ключу.
func (s *shopStorage) ProductByID(id int64) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE product_id = $1
	`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return product, nil
}

// EditProduct полностью заменяет все поля товара product.ID.
func (s *shopStorage) EditProduct(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET product_name = $1,
		    category_id_fk = $2,
		    manufacturer_name_fk = $3,
		    price = $4,
		    creation_date = $5,
		    colour = $6,
		    size = $7,
		    amount_in_storage = $8
		WHERE product_id = $9
	`,
		product.Name, product.CategoryID, product.ManufacturerName, product.Price,
		product.CreationDate, product.Colour, product.Size, product.Amount,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DeleteProduct удаляет товар; несуществующий id — не ошибка.
func (s *shopStorage) DeleteProduct(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ProductByName ищет товар по точному имени без учёта регистра.
// При дубликатах имён детерминированно побеждает наибольший product_id.
func (s *shopStorage) ProductByName(name string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE lower(product_name) = lower($1)
		ORDER BY product_id DESC
		LIMIT 1
	`, name)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return product, nil
}

// FindProducts возвращает товары по нормализованному фильтру.
// Товары с неуказанным цветом включаются в выборку при любом фильтре цвета.
func (s *shopStorage) FindProducts(filter domain.ProductFilter) (map[int64]domain.Product, error) {
	normalized, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE manufacturer_name_fk LIKE $1
		  AND price >= $2
		  AND price <= $3
		  AND (colour LIKE $4 OR colour IS NULL)
	`,
		normalized.ManufacturerPattern, normalized.MinPrice,
		normalized.MaxPrice, normalized.ColourPattern,
	)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate found products: %w", err)
	}

	return products, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows общим Scan.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		product domain.Product
		colour  sql.NullString
	)
	if err := row.Scan(
		&product.ID, &product.Name, &product.CategoryID, &product.ManufacturerName,
		&product.Price, &product.CreationDate, &colour, &product.Size, &product.Amount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("scan product row: %w", err)
	}
	if colour.Valid {
		product.Colour = &colour.String
	}
	return product, nil
}
