package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tolyara/webshop/internal/domain"
	"github.com/tolyara/webshop/internal/messaging/kafka"
)

type orderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Amount    int32 `json:"amount"`
}

type makeOrderRequest struct {
	UserLogin string             `json:"user_login"`
	Items     []orderItemRequest `json:"items"`
}

type orderPayload struct {
	ID         int64                    `json:"order_id"`
	UserLogin  string                   `json:"user_login"`
	Status     string                   `json:"status"`
	TotalPrice float64                  `json:"total_price"`
	Products   map[int64]productPayload `json:"products"`
}

func orderToPayload(order domain.Order) orderPayload {
	return orderPayload{
		ID:         order.ID,
		UserLogin:  order.UserLogin,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		Products:   productsToPayload(order.Products),
	}
}

func ordersToPayload(orders map[int64]domain.Order) map[int64]orderPayload {
	payload := make(map[int64]orderPayload, len(orders))
	for id, order := range orders {
		payload[id] = orderToPayload(order)
	}
	return payload
}

// makeOrder собирает заказ по текущему состоянию каталога: цены и прочие
// атрибуты снимаются с товара в момент оформления, а не берутся из запроса.
func (s *Server) makeOrder(w http.ResponseWriter, r *http.Request) {
	var req makeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	// Повторы product_id в запросе складываются в одну позицию, чтобы
	// итоговая сумма всегда сходилась со снимками позиций.
	amounts := make(map[int64]int32, len(req.Items))
	for _, item := range req.Items {
		if item.Amount <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": domain.ErrOrderedAmountInvalid.Error()})
			return
		}
		amounts[item.ProductID] += item.Amount
	}

	items := make(map[int64]domain.Product, len(amounts))
	var total float64
	for productID, amount := range amounts {
		product, err := s.storage.ProductByID(productID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		product.Amount = amount
		items[product.ID] = product
		total += product.Price * float64(amount)
	}

	order := domain.Order{
		UserLogin:  req.UserLogin,
		Status:     domain.OrderStatusNew,
		TotalPrice: total,
		Products:   items,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errs[0].Error()})
		return
	}

	orderID, err := s.storage.MakeOrder(order)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.publishOrderEvent(kafka.NewOrderEvent(kafka.EventTypeOrderCreated, orderID, req.UserLogin, string(domain.OrderStatusNew), total))
	writeJSON(w, http.StatusCreated, map[string]any{"order_id": orderID, "total_price": total})
}

func (s *Server) listUserOrders(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	orders, err := s.storage.UserOrders(login)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ordersToPayload(orders))
}

func (s *Server) listAllOrders(w http.ResponseWriter, _ *http.Request) {
	orders, err := s.storage.AllOrders()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ordersToPayload(orders))
}

type changeOrderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) changeOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	var req changeOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := s.storage.ChangeOrderStatus(orderID, req.Status); err != nil {
		s.writeError(w, err)
		return
	}

	s.publishOrderEvent(kafka.NewOrderEvent(kafka.EventTypeOrderStatusChanged, orderID, "", req.Status, 0))
	writeJSON(w, http.StatusOK, map[string]any{"order_id": orderID, "status": req.Status})
}
