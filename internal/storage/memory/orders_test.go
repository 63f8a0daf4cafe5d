package memory_test

import (
	"errors"
	"testing"

	"github.com/tolyara/webshop/internal/domain"
	"github.com/tolyara/webshop/internal/storage/memory"
)

func makeTwoItemOrder(t *testing.T, store domain.Storage, login string) (int64, map[int64]domain.Product) {
	t.Helper()

	chairID, err := store.AddProduct(newProduct("chair", "Acme", 15, strPtr("red")))
	if err != nil {
		t.Fatalf("add chair: %v", err)
	}
	tableID, err := store.AddProduct(newProduct("table", "Globex", 50, nil))
	if err != nil {
		t.Fatalf("add table: %v", err)
	}

	chair, err := store.ProductByID(chairID)
	if err != nil {
		t.Fatalf("get chair: %v", err)
	}
	table, err := store.ProductByID(tableID)
	if err != nil {
		t.Fatalf("get table: %v", err)
	}
	chair.Amount = 2
	table.Amount = 1
	items := map[int64]domain.Product{chairID: chair, tableID: table}

	orderID, err := store.MakeOrder(domain.Order{
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

func TestMakeOrder_SnapshotSurvivesProductEdit(t *testing.T) {
	store := memory.NewStorage()
	orderID, items := makeTwoItemOrder(t, store, "buyer")

	// Меняем товар каталога после оформления заказа.
	for id := range items {
		product, err := store.ProductByID(id)
		if err != nil {
			t.Fatalf("get product: %v", err)
		}
		product.Price = 999
		product.Name = "renamed"
		if err := store.EditProduct(product); err != nil {
			t.Fatalf("edit product: %v", err)
		}
	}

	orders, err := store.UserOrders("buyer")
	if err != nil {
		t.Fatalf("user orders: %v", err)
	}
	order, ok := orders[orderID]
	if !ok {
		t.Fatal("expected order in user listing")
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

func TestMakeOrder_DefaultsToNewStatus(t *testing.T) {
	store := memory.NewStorage()

	id, err := store.AddProduct(newProduct("chair", "Acme", 15, nil))
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	product, err := store.ProductByID(id)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	product.Amount = 1

	orderID, err := store.MakeOrder(domain.Order{
		UserLogin:  "buyer",
		TotalPrice: 15,
		Products:   map[int64]domain.Product{id: product},
	})
	if err != nil {
		t.Fatalf("make order: %v", err)
	}

	orders, err := store.AllOrders()
	if err != nil {
		t.Fatalf("all orders: %v", err)
	}
	if orders[orderID].Status != domain.OrderStatusNew {
		t.Fatalf("expected NEW status, got %s", orders[orderID].Status)
	}
}

func TestUserOrders_FiltersByLogin(t *testing.T) {
	store := memory.NewStorage()
	makeTwoItemOrder(t, store, "first")
	makeTwoItemOrder(t, store, "second")

	orders, err := store.UserOrders("first")
	if err != nil {
		t.Fatalf("user orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order for login first, got %d", len(orders))
	}
	for _, order := range orders {
		if order.UserLogin != "first" {
			t.Fatalf("foreign order in listing: %+v", order)
		}
	}

	all, err := store.AllOrders()
	if err != nil {
		t.Fatalf("all orders: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders total, got %d", len(all))
	}
}

func TestChangeOrderStatus(t *testing.T) {
	store := memory.NewStorage()
	orderID, _ := makeTwoItemOrder(t, store, "buyer")

	if err := store.ChangeOrderStatus(orderID, "DELIVERED"); err != nil {
		t.Fatalf("change status: %v", err)
	}

	orders, err := store.AllOrders()
	if err != nil {
		t.Fatalf("all orders: %v", err)
	}
	if orders[orderID].Status != domain.OrderStatusDelivered {
		t.Fatalf("expected DELIVERED, got %s", orders[orderID].Status)
	}

	// Нераспознанный статус отклоняется и ничего не перезаписывает.
	if err := store.ChangeOrderStatus(orderID, "LOST"); !errors.Is(err, domain.ErrUnknownOrderStatus) {
		t.Fatalf("expected ErrUnknownOrderStatus, got %v", err)
	}
	orders, err = store.AllOrders()
	if err != nil {
		t.Fatalf("all orders: %v", err)
	}
	if orders[orderID].Status != domain.OrderStatusDelivered {
		t.Fatalf("status overwritten by rejected text: %s", orders[orderID].Status)
	}

	if err := store.ChangeOrderStatus(999, "NEW"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
