package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/tolyara/webshop/internal/domain"
)

func makeTwoItemOrderForIntegrationTest(t *testing.T, storage domain.Storage, login string) (int64, map[int64]domain.Product) {
	t.Helper()

	if err := storage.AddAccount(domain.RoleUser, domain.Account{Login: login, Password: "secret", Active: true}); err != nil {
		t.Fatalf("add account %s: %v", login, err)
	}

	chairID, err := storage.AddProduct(sampleProduct("chair", "Acme", 15, strPtr("red")))
	if err != nil {
		t.Fatalf("add chair: %v", err)
	}
	tableID, err := storage.AddProduct(sampleProduct("table", "Globex", 50, nil))
	if err != nil {
		t.Fatalf("add table: %v", err)
	}

	chair, err := storage.ProductByID(chairID)
	if err != nil {
		t.Fatalf("get chair: %v", err)
	}
	table, err := storage.ProductByID(tableID)
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	chair.Amount = 2
	table.Amount = 1
	items := map[int64]domain.Product{chairID: chair, tableID: table}

	orderID, err := storage.MakeOrder(domain.Order{
		UserLogin:  login,
		Status:     domain.OrderStatusNew,
		TotalPrice: 80,
		Products:   items,
	})
	if err != nil {
		t.Fatalf("make order: %v", err)
	}
	return orderID, items
}

func TestMakeOrder_PostgresSnapshotSurvivesProductEdit(t *testing.T) {
	storage := openStorageForIntegrationTest(t)
	orderID, items := makeTwoItemOrderForIntegrationTest(t, storage, "buyer")

	for id := range items {
		product, err := storage.ProductByID(id)
		if err != nil {
			t.Fatalf("get product: %v", err)
		}
		product.Price = 999
		product.Name = "renamed"
		if err := storage.EditProduct(product); err != nil {
			t.Fatalf("edit product: %v", err)
		}
	}

	orders, err := storage.UserOrders("buyer")
	if err != nil {
		t.Fatalf("user orders: %v", err)
	}
	order, ok := orders[orderID]
	if !ok {
		t.Fatal("expected order in user listing")
	}
	if order.Status != domain.OrderStatusNew {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if order.TotalPrice != 80 {
		t.Fatalf("unexpected total price: %f", order.TotalPrice)
	}
	if len(order.Products) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(order.Products))
	}
	for id, want := range items {
		got, ok := order.Products[id]
		if !ok {
			t.Fatalf("missing line item for product %d", id)
		}
		if got.Price != want.Price || got.Name != want.Name || got.Amount != want.Amount {
			t.Fatalf("snapshot changed after product edit: got %+v, want %+v", got, want)
		}
	}
}

func TestOrders_PostgresUserAndAllListings(t *testing.T) {
	storage := openStorageForIntegrationTest(t)
	makeTwoItemOrderForIntegrationTest(t, storage, "first")
	makeTwoItemOrderForIntegrationTest(t, storage, "second")

	orders, err := storage.UserOrders("first")
	if err != nil {
		t.Fatalf("user orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order for login first, got %d", len(orders))
	}

	all, err := storage.AllOrders()
	if err != nil {
		t.Fatalf("all orders: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders total, got %d", len(all))
	}
}

func TestChangeOrderStatus_Postgres(t *testing.T) {
	storage := openStorageForIntegrationTest(t)
	orderID, _ := makeTwoItemOrderForIntegrationTest(t, storage, "buyer")

	if err := storage.ChangeOrderStatus(orderID, "DELIVERED"); err != nil {
		t.Fatalf("change status: %v", err)
	}

	all, err := storage.AllOrders()
	if err != nil {
		t.Fatalf("all orders: %v", err)
	}
	if all[orderID].Status != domain.OrderStatusDelivered {
		t.Fatalf("expected DELIVERED, got %s", all[orderID].Status)
	}

	if err := storage.ChangeOrderStatus(orderID, "LOST"); !errors.Is(err, domain.ErrUnknownOrderStatus) {
		t.Fatalf("expected ErrUnknownOrderStatus, got %v", err)
	}
	if err := storage.ChangeOrderStatus(999999, "NEW"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrders_PostgresRejectsGarbageStoredStatus(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	storage := NewStorage(store)
	makeTwoItemOrderForIntegrationTest(t, storage, "buyer")

	// Мусор в колонке status, записанный мимо контракта, должен уронить
	// чтение, а не молча превратиться в заказ с выдуманным статусом.
	if _, err := store.DB().ExecContext(context.Background(), `UPDATE orders SET status = 'GARBAGE'`); err != nil {
		t.Fatalf("write garbage status: %v", err)
	}

	if _, err := storage.AllOrders(); !errors.Is(err, domain.ErrUnknownOrderStatus) {
		t.Fatalf("expected ErrUnknownOrderStatus from listing, got %v", err)
	}
}

func TestMakeOrder_PostgresRollsBackHeaderOnLineInsertFailure(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	storage := NewStorage(store)

	if err := storage.AddAccount(domain.RoleUser, domain.Account{Login: "buyer", Password: "secret", Active: true}); err != nil {
		t.Fatalf("add account: %v", err)
	}

	chairID, err := storage.AddProduct(sampleProduct("chair", "Acme", 15, nil))
	if err != nil {
		t.Fatalf("add chair: %v", err)
	}
	chair, err := storage.ProductByID(chairID)
	if err != nil {
		t.Fatalf("get chair: %v", err)
	}
	chair.Amount = 2

	// Невалидный UTF-8 в имени позиции — postgres отклоняет вставку (22021),
	// транзакция должна откатиться целиком вместе с шапкой.
	broken := chair
	broken.ID = chairID + 1
	broken.Name = "broken\xff"
	broken.Amount = 1

	_, err = storage.MakeOrder(domain.Order{
		UserLogin:  "buyer",
		Status:     domain.OrderStatusNew,
		TotalPrice: 45,
		Products:   map[int64]domain.Product{chair.ID: chair, broken.ID: broken},
	})
	if err == nil {
		t.Fatal("expected make order to fail on broken line item")
	}

	var headers int
	if err := store.DB().QueryRowContext(context.Background(), `SELECT count(*) FROM orders`).Scan(&headers); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if headers != 0 {
		t.Fatalf("expected order header rolled back, found %d rows", headers)
	}

	var lines int
	if err := store.DB().QueryRowContext(context.Background(), `SELECT count(*) FROM order_product`).Scan(&lines); err != nil {
		t.Fatalf("count order lines: %v", err)
	}
	if lines != 0 {
		t.Fatalf("expected no orphan line items, found %d rows", lines)
	}
}
