package repository

import (
	"testing"
)

func TestPredicate_Empty(t *testing.T) {
	var p Predicate

	if !p.IsEmpty() {
		t.Error("expected empty predicate")
	}

	sql, args := p.ToSQL(1)
	if sql != "" || args != nil {
		t.Errorf("expected empty SQL, got %q with %v", sql, args)
	}

	where, _ := p.WhereClause(1)
	if where != "" {
		t.Errorf("expected empty WHERE clause, got %q", where)
	}
}

func TestPredicate_RenumbersPlaceholders(t *testing.T) {
	var p Predicate
	p.And("COALESCE(p.sale_price, p.rent_price) <= ?", 400)
	p.And("p.rent_price IS NOT NULL")
	p.And("(loc.address ILIKE ? OR c.name ILIKE ?)", "%centro%", "%centro%")

	sql, args := p.ToSQL(3)

	want := "COALESCE(p.sale_price, p.rent_price) <= $3 AND p.rent_price IS NOT NULL AND (loc.address ILIKE $4 OR c.name ILIKE $5)"
	if sql != want {
		t.Errorf("unexpected SQL:\n got %q\nwant %q", sql, want)
	}

	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != 400 || args[1] != "%centro%" || args[2] != "%centro%" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestPredicate_WhereClause(t *testing.T) {
	var p Predicate
	p.And("p.total_area >= ?", 50.0)

	where, args := p.WhereClause(1)
	if where != "WHERE p.total_area >= $1" {
		t.Errorf("unexpected WHERE clause: %q", where)
	}
	if len(args) != 1 || args[0] != 50.0 {
		t.Errorf("unexpected args: %v", args)
	}
}
