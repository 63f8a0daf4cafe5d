package postgres

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tolyara/webshop/internal/domain"
)

// Accounts возвращает все аккаунты по логину. Пароли наружу не отдаются.
func (s *shopStorage) Accounts() (map[string]domain.Account, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT account_name, is_active FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.Login, &account.Active); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts[account.Login] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

// AddAccount создаёт аккаунт и ровно одну запись роли в одной транзакции:
// либо появляются обе записи, либо ни одной.
func (s *shopStorage) AddAccount(role string, account domain.Account) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (account_name, account_pass, is_active)
		VALUES ($1,$2,$3)
	`, account.Login, account.Password, account.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert account: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO account_roles (account_name_fk, role_name)
		VALUES ($1,$2)
	`, account.Login, role)
	if err != nil {
		return fmt.Errorf("insert account role: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit add account: %w", err)
	}
	return nil
}

// AccountRole возвращает роль аккаунта точечным запросом.
// При нескольких ролях побеждает последняя выданная (наибольший account_role_id);
// неизвестный логин — пустая строка без ошибки.
func (s *shopStorage) AccountRole(login string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var role string
	err := s.db.QueryRowContext(ctx, `
		SELECT role_name
		FROM account_roles
		WHERE account_name_fk = $1
		ORDER BY account_role_id DESC
		LIMIT 1
	`, login).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("select account role: %w", err)
	}

	return role, nil
}

// CheckLoginPassword сверяет пару логин/пароль точечным запросом.
// Вход разрешён только при точном совпадении пароля и активном аккаунте.
func (s *shopStorage) CheckLoginPassword(login, password string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		storedPass string
		active     bool
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT account_pass, is_active
		FROM accounts
		WHERE account_name = $1
	`, login).Scan(&storedPass, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("select account credentials: %w", err)
	}

	// Сравнение за постоянное время, чтобы не выдавать длину и префикс пароля.
	match := subtle.ConstantTimeCompare([]byte(storedPass), []byte(password)) == 1
	return match && active, nil
}

// ToggleAccountActive переключает флаг блокировки и возвращает новое значение.
func (s *shopStorage) ToggleAccountActive(login string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var active bool
	err := s.db.QueryRowContext(ctx, `
		UPDATE accounts
		SET is_active = NOT is_active
		WHERE account_name = $1
		RETURNING is_active
	`, login).Scan(&active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrAccountNotFound
		}
		return false, fmt.Errorf("toggle account status: %w", err)
	}

	return active, nil
}
