package memory

import "github.com/tolyara/webshop/internal/domain"

// MakeOrder сохраняет заказ вместе с копиями позиций. Позиции — снимки
// товара на момент оформления, последующие правки каталога их не меняют.
func (s *shopStorage) MakeOrder(order domain.Order) (int64, error) {
	status := order.Status
	if status == "" {
		status = domain.OrderStatusNew
	}
	status, err := domain.RecognizeOrderStatus(string(status))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextOrderID
	s.nextOrderID++
	order.Status = status
	order.Products = cloneProducts(order.Products)
	s.orders[order.ID] = order
	return order.ID, nil
}

// UserOrders возвращает копии заказов пользователя.
func (s *shopStorage) UserOrders(login string) (map[int64]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make(map[int64]domain.Order)
	for id, order := range s.orders {
		if order.UserLogin != login {
			continue
		}
		order.Products = cloneProducts(order.Products)
		orders[id] = order
	}
	return orders, nil
}

// AllOrders возвращает копии всех заказов.
func (s *shopStorage) AllOrders() (map[int64]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make(map[int64]domain.Order, len(s.orders))
	for id, order := range s.orders {
		order.Products = cloneProducts(order.Products)
		orders[id] = order
	}
	return orders, nil
}

// ChangeOrderStatus переводит заказ в распознанный статус.
func (s *shopStorage) ChangeOrderStatus(orderID int64, statusText string) error {
	status, err := domain.RecognizeOrderStatus(statusText)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	s.orders[orderID] = order
	return nil
}
