package search

import (
	"fmt"
	"strings"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

// BuildFilterPredicate переводит извлечённый фильтр в структурированный
// предикат над карточной выборкой (псевдонимы p, t, loc, c, d).
// Пустой фильтр даёт пустой предикат — выборка не ограничивается.
// Нулевые значения числовых полей значимы: precio_min = 0 — это условие.
func BuildFilterPredicate(filter domain.SearchFilter) *repository.Predicate {
	pred := &repository.Predicate{}

	if filter.PropertyType != nil && *filter.PropertyType != "" {
		like := "%" + *filter.PropertyType + "%"
		pred.And(
			"(t.name ILIKE ? OR p.title ILIKE ? OR p.description ILIKE ?)",
			*filter.PropertyType, like, like,
		)
	}

	if filter.TransactionType != nil {
		switch *filter.TransactionType {
		case domain.TransactionSale:
			pred.And("p.sale_price IS NOT NULL")
		case domain.TransactionRent:
			pred.And("p.rent_price IS NOT NULL")
		}
	}

	if filter.PriceMin != nil {
		pred.And("COALESCE(p.sale_price, p.rent_price) >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		pred.And("COALESCE(p.sale_price, p.rent_price) <= ?", *filter.PriceMax)
	}

	if filter.AreaMin != nil {
		pred.And("p.total_area >= ?", *filter.AreaMin)
	}
	if filter.AreaMax != nil {
		pred.And("p.total_area <= ?", *filter.AreaMax)
	}

	if filter.BedroomsMin != nil {
		pred.And("d.bedrooms >= ?", *filter.BedroomsMin)
	}
	if filter.BathroomsMin != nil {
		pred.And("d.bathrooms >= ?", *filter.BathroomsMin)
	}

	// Удобства — одна OR-группа: достаточно совпадения любого из них
	if len(filter.Amenities) > 0 {
		var parts []string
		var args []any
		for _, a := range filter.Amenities {
			if strings.TrimSpace(a) == "" {
				continue
			}
			like := "%" + a + "%"
			parts = append(parts, "(p.title ILIKE ? OR p.description ILIKE ? OR d.other_details ILIKE ?)")
			args = append(args, like, like, like)
		}
		if len(parts) > 0 {
			pred.And(fmt.Sprintf("(%s)", strings.Join(parts, " OR ")), args...)
		}
	}

	if filter.LocationKeyword != nil && strings.TrimSpace(*filter.LocationKeyword) != "" {
		like := "%" + *filter.LocationKeyword + "%"
		pred.And(
			"(loc.address ILIKE ? OR loc.neighborhood ILIKE ? OR c.name ILIKE ?)",
			like, like, like,
		)
	}

	return pred
}

// DescribeFilter — словесная расшифровка фильтра для /ai-search/explain.
func DescribeFilter(filter domain.SearchFilter) []string {
	var notes []string

	if filter.PropertyType != nil && *filter.PropertyType != "" {
		notes = append(notes, fmt.Sprintf("Tipo de propiedad: %s", *filter.PropertyType))
	}
	if filter.TransactionType != nil {
		notes = append(notes, fmt.Sprintf("Tipo de transacción: %s", filter.TransactionType.String()))
	}
	if filter.PriceMin != nil {
		notes = append(notes, fmt.Sprintf("Precio mínimo: %.0f", *filter.PriceMin))
	}
	if filter.PriceMax != nil {
		notes = append(notes, fmt.Sprintf("Precio máximo: %.0f", *filter.PriceMax))
	}
	if filter.AreaMin != nil {
		notes = append(notes, fmt.Sprintf("Superficie mínima: %.0f m²", *filter.AreaMin))
	}
	if filter.AreaMax != nil {
		notes = append(notes, fmt.Sprintf("Superficie máxima: %.0f m²", *filter.AreaMax))
	}
	if filter.BedroomsMin != nil {
		notes = append(notes, fmt.Sprintf("Habitaciones: al menos %d", *filter.BedroomsMin))
	}
	if filter.BathroomsMin != nil {
		notes = append(notes, fmt.Sprintf("Baños: al menos %d", *filter.BathroomsMin))
	}
	if len(filter.Amenities) > 0 {
		notes = append(notes, fmt.Sprintf("Amenidades: %s", strings.Join(filter.Amenities, ", ")))
	}
	if filter.LocationKeyword != nil && strings.TrimSpace(*filter.LocationKeyword) != "" {
		notes = append(notes, fmt.Sprintf("Ubicación: %s", *filter.LocationKeyword))
	}
	if len(notes) == 0 {
		notes = append(notes, "Sin filtros: se listan todas las propiedades activas")
	}

	return notes
}
