// Package instrumented оборачивает любое domain.Storage метриками Prometheus:
// счётчик вызовов по операции и исходу плюс гистограмма длительности.
package instrumented

import (
	"time"

	"github.com/tolyara/webshop/internal/domain"
	"github.com/tolyara/webshop/internal/metrics"
)

type storage struct {
	inner domain.Storage
	m     *metrics.StorageMetrics
}

// Wrap возвращает хранилище, которое считает каждую операцию контракта.
func Wrap(inner domain.Storage, m *metrics.StorageMetrics) domain.Storage {
	return &storage{inner: inner, m: m}
}

func (s *storage) observe(operation string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case domain.IsNotFound(err):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	s.m.RecordOperation(operation, outcome, time.Since(start))
}

func (s *storage) Products() (map[int64]domain.Product, error) {
	start := time.Now()
	products, err := s.inner.Products()
	s.observe("Products", start, err)
	return products, err
}

func (s *storage) AddProduct(product domain.Product) (int64, error) {
	start := time.Now()
	id, err := s.inner.AddProduct(product)
	s.observe("AddProduct", start, err)
	return id, err
}

func (s *storage) ProductByID(id int64) (domain.Product, error) {
	start := time.Now()
	product, err := s.inner.ProductByID(id)
	s.observe("ProductByID", start, err)
	return product, err
}

func (s *storage) EditProduct(product domain.Product) error {
	start := time.Now()
	err := s.inner.EditProduct(product)
	s.observe("EditProduct", start, err)
	return err
}

func (s *storage) DeleteProduct(id int64) error {
	start := time.Now()
	err := s.inner.DeleteProduct(id)
	s.observe("DeleteProduct", start, err)
	return err
}

func (s *storage) ProductByName(name string) (domain.Product, error) {
	start := time.Now()
	product, err := s.inner.ProductByName(name)
	s.observe("ProductByName", start, err)
	return product, err
}

func (s *storage) FindProducts(filter domain.ProductFilter) (map[int64]domain.Product, error) {
	start := time.Now()
	products, err := s.inner.FindProducts(filter)
	s.observe("FindProducts", start, err)
	return products, err
}

func (s *storage) Manufacturers() (map[string]domain.Manufacturer, error) {
	start := time.Now()
	manufacturers, err := s.inner.Manufacturers()
	s.observe("Manufacturers", start, err)
	return manufacturers, err
}

func (s *storage) Accounts() (map[string]domain.Account, error) {
	start := time.Now()
	accounts, err := s.inner.Accounts()
	s.observe("Accounts", start, err)
	return accounts, err
}

func (s *storage) AddAccount(role string, account domain.Account) error {
	start := time.Now()
	err := s.inner.AddAccount(role, account)
	s.observe("AddAccount", start, err)
	return err
}

func (s *storage) AccountRole(login string) (string, error) {
	start := time.Now()
	role, err := s.inner.AccountRole(login)
	s.observe("AccountRole", start, err)
	return role, err
}

func (s *storage) CheckLoginPassword(login, password string) (bool, error) {
	start := time.Now()
	ok, err := s.inner.CheckLoginPassword(login, password)
	s.observe("CheckLoginPassword", start, err)
	return ok, err
}

func (s *storage) ToggleAccountActive(login string) (bool, error) {
	start := time.Now()
	active, err := s.inner.ToggleAccountActive(login)
	s.observe("ToggleAccountActive", start, err)
	return active, err
}

func (s *storage) MakeOrder(order domain.Order) (int64, error) {
	start := time.Now()
	id, err := s.inner.MakeOrder(order)
	s.observe("MakeOrder", start, err)
	return id, err
}

func (s *storage) UserOrders(login string) (map[int64]domain.Order, error) {
	start := time.Now()
	orders, err := s.inner.UserOrders(login)
	s.observe("UserOrders", start, err)
	return orders, err
}

func (s *storage) AllOrders() (map[int64]domain.Order, error) {
	start := time.Now()
	orders, err := s.inner.AllOrders()
	s.observe("AllOrders", start, err)
	return orders, err
}

func (s *storage) ChangeOrderStatus(orderID int64, statusText string) error {
	start := time.Now()
	err := s.inner.ChangeOrderStatus(orderID, statusText)
	s.observe("ChangeOrderStatus", start, err)
	return err
}

func (s *storage) Close() error {
	return s.inner.Close()
}

var _ domain.Storage = (*storage)(nil)
