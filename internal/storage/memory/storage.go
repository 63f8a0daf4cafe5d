package memory

import (
	"sync"

	"github.com/tolyara/webshop/internal/domain"
)

// shopStorage — простая in-memory реализация контракта domain.Storage
// для локальной разработки и тестов. Семантика операций повторяет
// PostgreSQL-реализацию, включая правила фильтрации и типовые ошибки.
type shopStorage struct {
	mu sync.RWMutex

	products      map[int64]domain.Product
	manufacturers map[string]domain.Manufacturer
	accounts      map[string]domain.Account
	// roles — журнал выдачи ролей в порядке добавления; при нескольких
	// ролях одного логина побеждает последняя выданная.
	roles  []roleRow
	orders map[int64]domain.Order

	nextProductID int64
	nextOrderID   int64
}

type roleRow struct {
	login string
	role  string
}

// NewStorage возвращает in-memory хранилище. Справочник производителей
// живёт только на чтение, поэтому заполняется прямо при создании.
func NewStorage(manufacturers ...string) domain.Storage {
	s := &shopStorage{
		products:      make(map[int64]domain.Product),
		manufacturers: make(map[string]domain.Manufacturer),
		accounts:      make(map[string]domain.Account),
		orders:        make(map[int64]domain.Order),
		nextProductID: 1,
		nextOrderID:   1,
	}
	for _, name := range manufacturers {
		s.manufacturers[name] = domain.Manufacturer{Name: name}
	}
	return s
}

// Manufacturers возвращает копию справочника производителей.
func (s *shopStorage) Manufacturers() (map[string]domain.Manufacturer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	manufacturers := make(map[string]domain.Manufacturer, len(s.manufacturers))
	for name, m := range s.manufacturers {
		manufacturers[name] = m
	}
	return manufacturers, nil
}

// Close ничего не освобождает: хранилище живёт в памяти процесса.
func (s *shopStorage) Close() error {
	return nil
}

// cloneProduct возвращает отсоединённую копию товара: наружу не должно
// уходить ничего, что делит память с внутренним состоянием.
func cloneProduct(p domain.Product) domain.Product {
	if p.Colour != nil {
		colour := *p.Colour
		p.Colour = &colour
	}
	return p
}

func cloneProducts(src map[int64]domain.Product) map[int64]domain.Product {
	dst := make(map[int64]domain.Product, len(src))
	for id, p := range src {
		dst[id] = cloneProduct(p)
	}
	return dst
}

var _ domain.Storage = (*shopStorage)(nil)
