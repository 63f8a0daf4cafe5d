package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tolyara/webshop/internal/domain"
)

const opTimeout = 5 * time.Second

// shopStorage — PostgreSQL-реализация контракта domain.Storage.
// Экземпляр владеет подключением на всё время жизни; наружу отдаются
// только отсоединённые копии записей, а не состояние подключения.
type shopStorage struct {
	db *sql.DB
}

// NewStorage создаёт PostgreSQL-реализацию хранилища магазина.
func NewStorage(store *Store) domain.Storage {
	return &shopStorage{db: store.DB()}
}

// Close закрывает подключение к БД.
func (s *shopStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.Storage = (*shopStorage)(nil)
