package domain

import "time"

// Product описывает товар каталога. Идентификатор присваивается хранилищем
// при вставке; до этого момента ID равен нулю.
type Product struct {
	ID   int64
	Name string
	// CategoryID — внешний ключ на категорию товара.
	CategoryID int64
	// ManufacturerName — естественный ключ производителя.
	ManufacturerName string
	Price            float64
	CreationDate     time.Time
	// Colour может отсутствовать (NULL в БД); nil означает "цвет не указан".
	Colour *string
	Size   string
	// Amount — количество на складе; в составе заказа это же поле хранит
	// заказанное количество (см. Order.Products).
	Amount int32
}

// Manufacturer описывает производителя. Имя — естественный ключ,
// строки справочника заполняются заранее (см. cmd/seed).
type Manufacturer struct {
	Name string
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
// Цена намеренно не проверяется: хранилище принимает любую цену,
// контроль значений остаётся на вызывающем слое.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.ManufacturerName == "" {
		errs = append(errs, ErrManufacturerRequired)
	}

	return errs
}
