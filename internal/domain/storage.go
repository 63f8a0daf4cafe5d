package domain

// Storage описывает требования к хранилищу магазина. Это единственный
// интерфейс, который персистентный слой отдаёт остальной системе:
// один вызов контракта на один запрос внешнего слоя.
//
// Отсутствие записи выражается типовыми ошибками (ErrProductNotFound и т.п.)
// либо пустым значением там, где контракт явно это оговаривает; любая другая
// ошибка — сбой хранилища и должна доходить до вызывающего, а не гаситься.
type Storage interface {
	// Products возвращает полный снимок каталога по идентификатору товара.
	Products() (map[int64]Product, error)
	// AddProduct сохраняет новый товар и возвращает присвоенный хранилищем id.
	AddProduct(product Product) (int64, error)
	// ProductByID возвращает товар или ErrProductNotFound, если его нет.
	ProductByID(id int64) (Product, error)
	// EditProduct полностью заменяет все поля товара product.ID.
	// Неизменившиеся поля тоже должны быть заполнены.
	EditProduct(product Product) error
	// DeleteProduct удаляет товар. Удаление несуществующего id — не ошибка.
	DeleteProduct(id int64) error
	// ProductByName ищет товар по точному имени без учёта регистра.
	// При нескольких совпадениях возвращается товар с наибольшим id.
	ProductByName(name string) (Product, error)
	// FindProducts возвращает товары, прошедшие фильтр (см. ProductFilter).
	FindProducts(filter ProductFilter) (map[int64]Product, error)

	// Manufacturers возвращает справочник производителей по имени.
	Manufacturers() (map[string]Manufacturer, error)

	// Accounts возвращает все аккаунты по логину. Пароли в выборку не входят.
	Accounts() (map[string]Account, error)
	// AddAccount атомарно создаёт аккаунт и ровно одну запись роли.
	AddAccount(role string, account Account) error
	// AccountRole возвращает роль аккаунта; для неизвестного логина — пустую
	// строку без ошибки. При нескольких ролях побеждает последняя выданная.
	AccountRole(login string) (string, error)
	// CheckLoginPassword сверяет пару логин/пароль. Истина возвращается только
	// для активного аккаунта с точным совпадением пароля.
	CheckLoginPassword(login, password string) (bool, error)
	// ToggleAccountActive переключает флаг блокировки аккаунта и возвращает
	// новое значение флага.
	ToggleAccountActive(login string) (bool, error)

	// MakeOrder атомарно сохраняет шапку заказа и все его позиции,
	// возвращая присвоенный хранилищем id заказа.
	MakeOrder(order Order) (int64, error)
	// UserOrders возвращает заказы пользователя по id заказа.
	UserOrders(login string) (map[int64]Order, error)
	// AllOrders возвращает все заказы по id заказа.
	AllOrders() (map[int64]Order, error)
	// ChangeOrderStatus переводит заказ в новый статус. Текст статуса
	// обязан распознаваться словарём, иначе ErrUnknownOrderStatus.
	ChangeOrderStatus(orderID int64, statusText string) error

	// Close освобождает ресурсы хранилища.
	Close() error
}
