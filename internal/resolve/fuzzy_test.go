package resolve

import (
	"errors"
	"testing"
)

var courses = []Candidate{
	{ID: 1, Name: "Introduction to Go", Aliases: []string{"GO-101"}},
	{ID: 2, Name: "Advanced Go", Aliases: []string{"GO-201"}},
	{ID: 3, Name: "Workplace Safety", Aliases: []string{"HS-1"}},
}

func TestBest_Exact(t *testing.T) {
	got, err := Best("advanced go", courses)
	if err != nil || got.ID != 2 {
		t.Fatalf("Best = %+v, %v", got, err)
	}
}

func TestBest_ExactAlias(t *testing.T) {
	got, err := Best("hs-1", courses)
	if err != nil || got.ID != 3 {
		t.Fatalf("Best = %+v, %v", got, err)
	}
}

func TestBest_Fuzzy(t *testing.T) {
	got, err := Best("safety", courses)
	if err != nil || got.ID != 3 {
		t.Fatalf("Best = %+v, %v", got, err)
	}
}

func TestBest_Errors(t *testing.T) {
	if _, err := Best("  ", courses); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
	if _, err := Best("go", nil); !errors.Is(err, ErrNoItems) {
		t.Errorf("expected ErrNoItems, got %v", err)
	}
	var nf *NotFoundError
	if _, err := Best("zzzz", courses); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestBest_Ambiguous(t *testing.T) {
	twins := []Candidate{{ID: 1, Name: "Sales A"}, {ID: 2, Name: "Sales B"}}
	_, err := Best("sales", twins)
	var amb *AmbiguousError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(amb.Matches) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(amb.Matches))
	}
	if msg := amb.Error(); msg == "" {
		t.Error("empty message")
	}
}

func TestRank(t *testing.T) {
	got := Rank("go", courses, 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].ID != 1 && got[0].ID != 2 {
		t.Errorf("unexpected best match %+v", got[0])
	}
	if Rank("", courses, 5) != nil || Rank("go", courses, 0) != nil {
		t.Error("expected nil for empty query or zero limit")
	}
}
