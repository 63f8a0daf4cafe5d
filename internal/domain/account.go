package domain

// Account описывает учётную запись магазина. Логин — естественный ключ.
// Пароль хранится открытым текстом (унаследованное поведение схемы);
// выборки списков аккаунтов пароль не возвращают.
type Account struct {
	Login    string
	Password string
	// Active — флаг блокировки: false запрещает вход в систему.
	Active bool
}

// Роли аккаунтов, известные приложению. Хранилище ролей не ограничивает
// набор значений, это справочные константы для вызывающего слоя.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidateInvariants проверяет базовые инварианты учётной записи.
func (a *Account) ValidateInvariants() []error {
	var errs []error

	if a.Login == "" {
		errs = append(errs, ErrLoginRequired)
	}
	if a.Password == "" {
		errs = append(errs, ErrPasswordRequired)
	}

	return errs
}
