// Package web — тонкий HTTP-слой над контрактом хранилища: один вызов
// контракта на запрос, чтение параметров и JSON-ответ, никакой бизнес-логики
// сверх той, что была в исходных сервлетах магазина.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/tolyara/webshop/internal/domain"
	"github.com/tolyara/webshop/internal/messaging/kafka"
)

// EventPublisher публикует события магазина во внешнюю шину.
// nil-издатель допустим: события просто не публикуются.
type EventPublisher interface {
	PublishOrderEvent(event *kafka.OrderEvent) error
	PublishAccountEvent(event *kafka.AccountEvent) error
}

// Server связывает маршруты магазина с хранилищем.
type Server struct {
	storage domain.Storage
	events  EventPublisher
	logger  *log.Entry
}

// NewServer создаёт HTTP-слой поверх хранилища.
func NewServer(storage domain.Storage, events EventPublisher, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.WithField("component", "web")
	}
	return &Server{storage: storage, events: events, logger: logger}
}

// Router собирает все маршруты магазина.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/products", s.listProducts)
	r.Post("/products", s.addProduct)
	r.Get("/products/find", s.findProducts)
	r.Get("/products/by-name", s.productByName)
	r.Get("/products/{id}", s.productByID)
	r.Put("/products/{id}", s.editProduct)
	r.Delete("/products/{id}", s.deleteProduct)

	r.Get("/manufacturers", s.listManufacturers)

	r.Get("/accounts", s.listAccounts)
	r.Post("/accounts", s.addAccount)
	r.Post("/accounts/{login}/status", s.changeAccountStatus)
	r.Post("/login", s.login)

	r.Get("/orders", s.listAllOrders)
	r.Post("/orders", s.makeOrder)
	r.Get("/orders/user/{login}", s.listUserOrders)
	r.Post("/orders/{id}/status", s.changeOrderStatus)

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError переводит ошибки контракта в HTTP-статусы: отсутствие записи —
// 404, нарушение уникальности — 409, некорректный вход — 400, остальное —
// сбой хранилища, 500 без деталей наружу.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateKey):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrUnknownOrderStatus),
		errors.Is(err, domain.ErrPriceBoundInvalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.logger.WithError(err).Error("storage operation failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// publishOrderEvent отправляет событие заказа, если издатель настроен.
// Ошибка публикации не ломает запрос: запись в хранилище уже состоялась.
func (s *Server) publishOrderEvent(event *kafka.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.EventType).Warn("event publish failed")
	}
}

// publishAccountEvent отправляет событие аккаунта, если издатель настроен.
func (s *Server) publishAccountEvent(event *kafka.AccountEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAccountEvent(event); err != nil {
		s.logger.WithError(err).WithField("event_type", event.EventType).Warn("event publish failed")
	}
}
