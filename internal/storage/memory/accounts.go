package memory

import (
	"crypto/subtle"

	"github.com/tolyara/webshop/internal/domain"
)

// Accounts возвращает все аккаунты; пароли в выборку не входят.
func (s *shopStorage) Accounts() (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make(map[string]domain.Account, len(s.accounts))
	for login, account := range s.accounts {
		account.Password = ""
		accounts[login] = account
	}
	return accounts, nil
}

// AddAccount создаёт аккаунт и ровно одну запись роли.
func (s *shopStorage) AddAccount(role string, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Login]; exists {
		return domain.ErrDuplicateKey
	}
	s.accounts[account.Login] = account
	s.roles = append(s.roles, roleRow{login: account.Login, role: role})
	return nil
}

// AccountRole возвращает последнюю выданную роль логина;
// для неизвестного логина — пустую строку без ошибки.
func (s *shopStorage) AccountRole(login string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role := ""
	for _, row := range s.roles {
		if row.login == login {
			role = row.role
		}
	}
	return role, nil
}

// CheckLoginPassword сверяет пару логин/пароль для активного аккаунта.
func (s *shopStorage) CheckLoginPassword(login, password string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[login]
	if !ok {
		return false, nil
	}

	match := subtle.ConstantTimeCompare([]byte(account.Password), []byte(password)) == 1
	return match && account.Active, nil
}

// ToggleAccountActive переключает флаг блокировки и возвращает новое значение.
func (s *shopStorage) ToggleAccountActive(login string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[login]
	if !ok {
		return false, domain.ErrAccountNotFound
	}
	account.Active = !account.Active
	s.accounts[login] = account
	return account.Active, nil
}
