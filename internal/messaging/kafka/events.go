package kafka

import (
	"time"

	"github.com/google/uuid"
)

// EventType определяет тип события магазина.
type EventType string

const (
	// События заказов.
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"

	// События аккаунтов.
	EventTypeAccountCreated       EventType = "account.created"
	EventTypeAccountStatusChanged EventType = "account.status_changed"
)

// Topics для Kafka.
const (
	TopicOrderEvents   = "webshop.order.events"
	TopicAccountEvents = "webshop.account.events"
)

// OrderEvent представляет событие жизненного цикла заказа.
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	EventType  EventType `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	UserLogin  string    `json:"user_login"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// AccountEvent представляет событие учётной записи.
type AccountEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	Login     string    `json:"login"`
	Active    bool      `json:"active"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderEvent создаёт событие заказа с уникальным идентификатором.
func NewOrderEvent(eventType EventType, orderID int64, userLogin, status string, totalPrice float64) *OrderEvent {
	return &OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OrderID:    orderID,
		UserLogin:  userLogin,
		Status:     status,
		TotalPrice: totalPrice,
		Timestamp:  time.Now(),
	}
}

// NewAccountEvent создаёт событие аккаунта с уникальным идентификатором.
func NewAccountEvent(eventType EventType, login string, active bool) *AccountEvent {
	return &AccountEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Login:     login,
		Active:    active,
		Timestamp: time.Now(),
	}
}
