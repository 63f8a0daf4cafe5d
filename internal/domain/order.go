package domain

import "strings"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusNew — заказ оформлен покупателем.
	OrderStatusNew OrderStatus = "NEW"
	// OrderStatusInProgress — заказ взят в обработку.
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	// OrderStatusDelivered — заказ доставлен покупателю.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// RecognizeOrderStatus сопоставляет текст со словарём статусов.
// Любой статус, прочитанный из БД или принятый извне, обязан проходить
// через распознаватель: нераспознанный текст — ошибка, а не новый статус.
func RecognizeOrderStatus(text string) (OrderStatus, error) {
	switch status := OrderStatus(strings.ToUpper(strings.TrimSpace(text))); status {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusDelivered, OrderStatusCancelled:
		return status, nil
	default:
		return "", ErrUnknownOrderStatus
	}
}

// Order агрегирует шапку заказа и его позиции.
type Order struct {
	ID        int64
	UserLogin string
	Status    OrderStatus
	// TotalPrice — итоговая сумма заказа, зафиксированная при оформлении.
	TotalPrice float64
	// Products — позиции заказа по идентификатору товара. Каждая позиция —
	// денормализованный снимок атрибутов товара на момент заказа
	// (Amount хранит заказанное количество), последующие правки каталога
	// снимок не меняют.
	Products map[int64]Product
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserLogin == "" {
		errs = append(errs, ErrLoginRequired)
	}
	if len(o.Products) == 0 {
		errs = append(errs, ErrOrderItemsRequired)
	}
	if o.TotalPrice < 0 {
		errs = append(errs, ErrTotalPriceNegative)
	}
	for _, item := range o.Products {
		if item.Amount <= 0 {
			errs = append(errs, ErrOrderedAmountInvalid)
		}
	}

	return errs
}
