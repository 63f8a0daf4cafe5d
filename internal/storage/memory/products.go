package memory

import (
	"strings"

	"github.com/tolyara/webshop/internal/domain"
)

// Products возвращает копию полного снимка каталога.
func (s *shopStorage) Products() (map[int64]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneProducts(s.products), nil
}

// AddProduct сохраняет товар под следующим свободным id.
func (s *shopStorage) AddProduct(product domain.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextProductID
	s.nextProductID++
	s.products[product.ID] = cloneProduct(product)
	return product.ID, nil
}

// ProductByID возвращает товар или ErrProductNotFound.
func (s *shopStorage) ProductByID(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

// EditProduct полностью заменяет все поля существующего товара.
func (s *shopStorage) EditProduct(product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	s.products[product.ID] = cloneProduct(product)
	return nil
}

// DeleteProduct удаляет товар; несуществующий id — не ошибка.
func (s *shopStorage) DeleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}

// ProductByName ищет товар по имени без учёта регистра; при дубликатах
// побеждает наибольший id.
func (s *shopStorage) ProductByName(name string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found  domain.Product
		exists bool
	)
	for _, product := range s.products {
		if !strings.EqualFold(product.Name, name) {
			continue
		}
		if !exists || product.ID > found.ID {
			found = product
			exists = true
		}
	}
	if !exists {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return cloneProduct(found), nil
}

// FindProducts повторяет фильтр PostgreSQL-реализации: шаблоны LIKE для
// производителя и цвета, включительные границы цены, товары без цвета
// попадают в выборку всегда.
func (s *shopStorage) FindProducts(filter domain.ProductFilter) (map[int64]domain.Product, error) {
	normalized, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[int64]domain.Product)
	for id, product := range s.products {
		if !likeMatch(normalized.ManufacturerPattern, product.ManufacturerName) {
			continue
		}
		if product.Price < normalized.MinPrice || product.Price > normalized.MaxPrice {
			continue
		}
		if product.Colour != nil && !likeMatch(normalized.ColourPattern, *product.Colour) {
			continue
		}
		found[id] = cloneProduct(product)
	}
	return found, nil
}
