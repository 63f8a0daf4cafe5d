package postgres

import (
	"context"
	"fmt"

	"github.com/tolyara/webshop/internal/domain"
)

// Manufacturers возвращает справочник производителей по имени.
func (s *shopStorage) Manufacturers() (map[string]domain.Manufacturer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT manufacturer_name FROM manufacturers`)
	if err != nil {
		return nil, fmt.Errorf("select manufacturers: %w", err)
	}
	defer rows.Close()

	manufacturers := make(map[string]domain.Manufacturer)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan manufacturer row: %w", err)
		}
		manufacturers[name] = domain.Manufacturer{Name: name}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manufacturer rows: %w", err)
	}

	return manufacturers, nil
}

// SeedManufacturers заполняет справочник производителей. Контракт хранилища
// видит справочник только на чтение, поэтому запись живёт на уровне Store
// рядом с EnsureSchema и используется из cmd/seed.
func (s *Store) SeedManufacturers(ctx context.Context, names []string) error {
	execCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	for _, name := range names {
		if _, err := s.db.ExecContext(execCtx, `
			INSERT INTO manufacturers (manufacturer_name)
			VALUES ($1)
			ON CONFLICT (manufacturer_name) DO NOTHING
		`, name); err != nil {
			return fmt.Errorf("insert manufacturer %q: %w", name, err)
		}
	}
	return nil
}
