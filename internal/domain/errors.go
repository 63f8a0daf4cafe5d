package domain

import "errors"

var (
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отсутствующего производителя у товара.
	ErrManufacturerRequired = errors.New("manufacturer name is required")
	// Ошибка отсутствующего логина.
	ErrLoginRequired = errors.New("login is required")
	// Ошибка отсутствующего пароля при создании аккаунта.
	ErrPasswordRequired = errors.New("password is required")
	// Ошибка заказа без единой позиции.
	ErrOrderItemsRequired = errors.New("order must contain at least one product")
	// Ошибка отрицательной суммы заказа.
	ErrTotalPriceNegative = errors.New("order total price must be non-negative")
	// Ошибка при некорректном заказанном количестве (<= 0).
	ErrOrderedAmountInvalid = errors.New("ordered amount must be greater than zero")
	// Ошибка нечисловой границы цены в фильтре поиска.
	ErrPriceBoundInvalid = errors.New("price bound is not a number")

	// ErrProductNotFound возвращается, если товар не найден в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAccountNotFound возвращается, если аккаунт не найден в хранилище.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateKey сигнализирует о нарушении уникальности ключа.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownOrderStatus возвращается распознавателем для текста вне словаря статусов.
	ErrUnknownOrderStatus = errors.New("unknown order status")
	// ErrNoGeneratedID — фатальное нарушение инварианта: вставка не вернула
	// сгенерированный хранилищем ключ.
	ErrNoGeneratedID = errors.New("storage did not return generated id")
)

// IsNotFound проверяет, относится ли ошибка к категории "не найдено".
// Отсутствие записи — штатный исход чтения, а не сбой хранилища.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}
