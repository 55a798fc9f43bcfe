package metastore

import (
	"errors"
	"testing"
)

func TestAddDescFirstInsertSucceeds(t *testing.T) {
	s := newDescStore()
	desc := Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 0, Units: 0}
	if err := s.addDesc(desc); err != nil {
		t.Fatalf("addDesc: %v", err)
	}
	got, err := s.lookupDesc(1)
	if err != nil {
		t.Fatalf("lookupDesc: %v", err)
	}
	if got != desc {
		t.Errorf("got %+v, want %+v", got, desc)
	}
}

func TestAddDescIdenticalReinsertIsNoop(t *testing.T) {
	s := newDescStore()
	desc := Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 0, Units: 0}
	if err := s.addDesc(desc); err != nil {
		t.Fatal(err)
	}
	if err := s.addDesc(desc); err != nil {
		t.Fatalf("re-insert of identical desc returned %v, want nil", err)
	}
	if s.count() != 1 {
		t.Errorf("count = %d, want 1", s.count())
	}
}

// TestAddDescConflictOrder implements S1: Type mismatch is reported before
// Sem/Indom/Units, even when all four fields differ.
func TestAddDescConflictOrder(t *testing.T) {
	s := newDescStore()
	if err := s.addDesc(Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 1, Units: 1}); err != nil {
		t.Fatal(err)
	}
	err := s.addDesc(Desc{Pmid: 1, Type: 2, Sem: 2, Indom: 2, Units: 2})
	if !errors.Is(err, ErrChangeType) {
		t.Fatalf("err = %v, want ErrChangeType", err)
	}
}

func TestAddDescConflictSemOnly(t *testing.T) {
	s := newDescStore()
	if err := s.addDesc(Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 1, Units: 1}); err != nil {
		t.Fatal(err)
	}
	err := s.addDesc(Desc{Pmid: 1, Type: 1, Sem: 9, Indom: 1, Units: 1})
	if !errors.Is(err, ErrChangeSem) {
		t.Fatalf("err = %v, want ErrChangeSem", err)
	}
}

func TestLookupDescUnknownPmid(t *testing.T) {
	s := newDescStore()
	_, err := s.lookupDesc(99)
	if !errors.Is(err, ErrPmidLog) {
		t.Fatalf("err = %v, want ErrPmidLog", err)
	}
}

func TestAddNameDuplicateDifferentPmidIsNotFatal(t *testing.T) {
	s := newDescStore()
	if err := s.addName(1, "metric.a"); err != nil {
		t.Fatal(err)
	}
	if err := s.addName(2, "metric.a"); err != nil {
		t.Fatalf("addName with reused name returned %v, want nil (downgraded)", err)
	}
}
