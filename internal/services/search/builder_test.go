package search

import (
	"strings"
	"testing"

	"inmo_backend/internal/domain"
)

func strPtr(s string) *string       { return &s }
func f64Ptr(f float64) *float64     { return &f }
func i32Ptr(i int32) *int32         { return &i }
func txPtr(t domain.TransactionType) *domain.TransactionType { return &t }

func TestBuildFilterPredicate_Empty(t *testing.T) {
	pred := BuildFilterPredicate(domain.SearchFilter{})

	if !pred.IsEmpty() {
		t.Errorf("expected empty predicate, got %d conditions", pred.Len())
	}

	sql, args := pred.ToSQL(1)
	if sql != "" || args != nil {
		t.Errorf("expected no SQL for empty predicate, got %q", sql)
	}
}

func TestBuildFilterPredicate_Composite(t *testing.T) {
	filter := domain.SearchFilter{
		PropertyType:    strPtr("Apartamento"),
		TransactionType: txPtr(domain.TransactionRent),
		PriceMax:        f64Ptr(400),
		BedroomsMin:     i32Ptr(2),
	}

	pred := BuildFilterPredicate(filter)

	if pred.Len() != 4 {
		t.Fatalf("expected 4 conditions, got %d", pred.Len())
	}

	sql, args := pred.ToSQL(1)

	if !strings.Contains(sql, "t.name ILIKE $1") {
		t.Errorf("expected property type condition, got %q", sql)
	}
	if !strings.Contains(sql, "p.rent_price IS NOT NULL") {
		t.Errorf("expected rent condition, got %q", sql)
	}
	if !strings.Contains(sql, "COALESCE(p.sale_price, p.rent_price) <= $4") {
		t.Errorf("expected price max condition, got %q", sql)
	}
	if !strings.Contains(sql, "d.bedrooms >= $5") {
		t.Errorf("expected bedrooms condition, got %q", sql)
	}

	// Venta/Alquiler не добавляет параметров, остальные — по числу маркеров
	if len(args) != 5 {
		t.Errorf("expected 5 args, got %d: %v", len(args), args)
	}
}

func TestBuildFilterPredicate_TransactionSale(t *testing.T) {
	pred := BuildFilterPredicate(domain.SearchFilter{
		TransactionType: txPtr(domain.TransactionSale),
	})

	sql, args := pred.ToSQL(1)
	if sql != "p.sale_price IS NOT NULL" {
		t.Errorf("unexpected SQL: %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildFilterPredicate_AmenitiesSingleOrGroup(t *testing.T) {
	pred := BuildFilterPredicate(domain.SearchFilter{
		Amenities: []string{"piscina", "jardín", "garaje"},
	})

	// Все удобства — одно AND-условие верхнего уровня
	if pred.Len() != 1 {
		t.Fatalf("expected 1 condition, got %d", pred.Len())
	}

	sql, args := pred.ToSQL(1)
	if strings.Count(sql, " OR ") != 8 {
		t.Errorf("expected OR-group over 3 amenities, got %q", sql)
	}
	if len(args) != 9 {
		t.Errorf("expected 9 args (3 per amenity), got %d", len(args))
	}
	if args[0] != "%piscina%" {
		t.Errorf("expected wildcard-wrapped arg, got %v", args[0])
	}
}

func TestBuildFilterPredicate_AmenityMatchesTitle(t *testing.T) {
	pred := BuildFilterPredicate(domain.SearchFilter{
		Amenities: []string{"piscina"},
	})

	// "Casa con piscina" без упоминания в описании всё равно должна находиться
	sql, _ := pred.ToSQL(1)
	if !strings.Contains(sql, "p.title ILIKE $1") {
		t.Errorf("expected title to participate in amenity match, got %q", sql)
	}
	if !strings.Contains(sql, "p.description ILIKE $2") {
		t.Errorf("expected description to participate in amenity match, got %q", sql)
	}
}

func TestBuildFilterPredicate_ZeroIsMeaningful(t *testing.T) {
	pred := BuildFilterPredicate(domain.SearchFilter{
		PriceMin:    f64Ptr(0),
		BedroomsMin: i32Ptr(0),
	})

	if pred.Len() != 2 {
		t.Fatalf("expected zero values to produce conditions, got %d", pred.Len())
	}

	sql, args := pred.ToSQL(1)
	if !strings.Contains(sql, ">= $1") || !strings.Contains(sql, ">= $2") {
		t.Errorf("unexpected SQL: %q", sql)
	}
	if args[0] != float64(0) {
		t.Errorf("expected zero arg preserved, got %v", args[0])
	}
}

func TestBuildFilterPredicate_LocationKeyword(t *testing.T) {
	pred := BuildFilterPredicate(domain.SearchFilter{
		LocationKeyword: strPtr("zona 10"),
	})

	sql, args := pred.ToSQL(3)

	if !strings.Contains(sql, "loc.address ILIKE $3") ||
		!strings.Contains(sql, "loc.neighborhood ILIKE $4") ||
		!strings.Contains(sql, "c.name ILIKE $5") {
		t.Errorf("unexpected SQL: %q", sql)
	}
	for _, a := range args {
		if a != "%zona 10%" {
			t.Errorf("expected wildcard-wrapped keyword, got %v", a)
		}
	}
}

func TestBuildFilterPredicate_IgnoresBlankValues(t *testing.T) {
	pred := BuildFilterPredicate(domain.SearchFilter{
		PropertyType:    strPtr(""),
		LocationKeyword: strPtr("   "),
		Amenities:       []string{"", "  "},
	})

	if !pred.IsEmpty() {
		t.Errorf("expected blank values ignored, got %d conditions", pred.Len())
	}
}
