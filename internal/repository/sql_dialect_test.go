package repository

import "testing"

func TestLikeOperator(t *testing.T) {
	if got := likeOperator("postgres"); got != "ILIKE" {
		t.Fatalf("postgres want ILIKE got %s", got)
	}
	if got := likeOperator("sqlite"); got != "LIKE" {
		t.Fatalf("sqlite want LIKE got %s", got)
	}
}

func TestKeywordCondition(t *testing.T) {
	cond, args := keywordCondition("sqlite", " 50%_off ", "name", "", "unique_code")
	want := `name LIKE ? ESCAPE '\' OR unique_code LIKE ? ESCAPE '\'`
	if cond != want {
		t.Fatalf("condition want %s got %s", want, cond)
	}
	if len(args) != 2 {
		t.Fatalf("args len want 2 got %d", len(args))
	}
	if args[0] != `%50\%\_off%` {
		t.Fatalf("escaped arg mismatch, got %v", args[0])
	}
}
