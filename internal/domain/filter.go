package domain

import (
	"fmt"
	"strconv"
)

// maxPriceCeiling — верхняя граница цены "по умолчанию": достаточно большая,
// чтобы при пустом фильтре в выборку попадали все товары.
const maxPriceCeiling = 100_000_000.0

// ProductFilter — параметры поиска товаров в том виде, в котором их передаёт
// внешний слой (строки из параметров запроса). Пустая строка означает
// "фильтр не задан".
//
// ManufacturerName и Colour — шаблоны LIKE, допускаются '%' и '_'.
// Товары без указанного цвета попадают в выборку при любом значении фильтра
// цвета — это намеренная политика, а не ошибка.
type ProductFilter struct {
	ManufacturerName string
	MinPrice         string
	MaxPrice         string
	Colour           string
}

// NormalizedProductFilter — фильтр после применения правил умолчания,
// готовый к подстановке в запрос.
type NormalizedProductFilter struct {
	ManufacturerPattern string
	MinPrice            float64
	MaxPrice            float64
	ColourPattern       string
}

// Normalize применяет правила умолчания: пустой производитель и цвет
// превращаются в шаблон "всё подряд", пустые границы цены — в 0 и потолок.
// Нечисловая граница цены — ошибка ErrPriceBoundInvalid.
func (f ProductFilter) Normalize() (NormalizedProductFilter, error) {
	normalized := NormalizedProductFilter{
		ManufacturerPattern: "%",
		MinPrice:            0.0,
		MaxPrice:            maxPriceCeiling,
		ColourPattern:       "%",
	}

	if f.ManufacturerName != "" {
		normalized.ManufacturerPattern = f.ManufacturerName
	}
	if f.MinPrice != "" {
		min, err := strconv.ParseFloat(f.MinPrice, 64)
		if err != nil {
			return NormalizedProductFilter{}, fmt.Errorf("min price %q: %w", f.MinPrice, ErrPriceBoundInvalid)
		}
		normalized.MinPrice = min
	}
	if f.MaxPrice != "" {
		max, err := strconv.ParseFloat(f.MaxPrice, 64)
		if err != nil {
			return NormalizedProductFilter{}, fmt.Errorf("max price %q: %w", f.MaxPrice, ErrPriceBoundInvalid)
		}
		normalized.MaxPrice = max
	}
	if f.Colour != "" {
		normalized.ColourPattern = f.Colour
	}

	return normalized, nil
}
