package metastore

import (
	"errors"
	"testing"
)

func mkSet(json string, inst int32) LabelSet {
	return LabelSet{
		Inst: inst,
		JSON: append([]byte(json), 0),
		Labels: []Label{
			{NameOff: 0, NameLen: int32(len(json)), ValueOff: 0, ValueLen: int32(len(json))},
		},
	}
}

func TestAddLabelContextForcesIdentNull(t *testing.T) {
	s := newLabelStore()
	s.addLabel(labelTypeContext, 77, Timestamp{Sec: 1}, []LabelSet{mkSet(`{"a":1}`, -1)})

	_, err := s.lookupLabel(labelTypeContext, labelIdentNull, nil)
	if err != nil {
		t.Fatalf("lookupLabel at forced null ident: %v", err)
	}
}

func TestAddLabelMasksCompoundAndOptionalBits(t *testing.T) {
	s := newLabelStore()
	s.addLabel(8|labelCompound|labelOptional, 1, Timestamp{Sec: 1}, []LabelSet{mkSet(`{"a":1}`, -1)})

	got, err := s.lookupLabel(8, 1, nil)
	if err != nil || len(got) != 1 {
		t.Fatalf("lookupLabel with masked type: got=%v err=%v", got, err)
	}
}

// TestCheckDupLabels implements S5: a group that repeats a set already
// present in its immediate older neighbor has that set stripped; a group
// left entirely empty is unlinked.
func TestCheckDupLabels(t *testing.T) {
	s := newLabelStore()
	shared := mkSet(`{"shared":1}`, -1)
	fresh := mkSet(`{"fresh":1}`, -1)

	s.addLabel(8, 1, Timestamp{Sec: 1}, []LabelSet{shared})
	s.addLabel(8, 1, Timestamp{Sec: 2}, []LabelSet{shared, fresh})
	s.addLabel(8, 1, Timestamp{Sec: 3}, []LabelSet{fresh})

	s.checkDupLabels()

	chain := s.chains[labelKey{Type: 8, Ident: 1}]
	if len(chain.groups) != 2 {
		t.Fatalf("groups after dedup = %d, want 2 (newest group emptied and unlinked)", len(chain.groups))
	}
	if len(chain.groups[0].Sets) != 1 {
		t.Fatalf("surviving group sets = %d, want 1 (shared stripped, fresh kept)", len(chain.groups[0].Sets))
	}
}

func TestLookupLabelPointInTime(t *testing.T) {
	s := newLabelStore()
	s.addLabel(8, 1, Timestamp{Sec: 10}, []LabelSet{mkSet(`{"v":1}`, -1)})
	s.addLabel(8, 1, Timestamp{Sec: 20}, []LabelSet{mkSet(`{"v":2}`, -1)})

	got, err := s.lookupLabel(8, 1, &Timestamp{Sec: 15})
	if err != nil {
		t.Fatalf("lookupLabel: %v", err)
	}
	if string(got[0].JSON) != `{"v":1}`+"\x00" {
		t.Errorf("got %q, want the sec=10 group", got[0].JSON)
	}
}

// TestAddLabelEqualTimestampInsertsBeforeExisting implements §4.3 step 3's
// tie-break: "insert before equal-timestamp neighbors (new first)". The
// second group recorded at the same Stamp as the first must end up at the
// chain head, not appended after it.
func TestAddLabelEqualTimestampInsertsBeforeExisting(t *testing.T) {
	s := newLabelStore()
	x := mkSet(`{"x":1}`, -1)
	y := mkSet(`{"y":1}`, -1)

	s.addLabel(8, 1, Timestamp{Sec: 20}, []LabelSet{x})
	s.addLabel(8, 1, Timestamp{Sec: 20}, []LabelSet{y})

	chain := s.chains[labelKey{Type: 8, Ident: 1}]
	if len(chain.groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(chain.groups))
	}
	if string(chain.groups[0].Sets[0].JSON) != `{"y":1}`+"\x00" {
		t.Fatalf("head group = %q, want the second (y) insert first", chain.groups[0].Sets[0].JSON)
	}
	if string(chain.groups[1].Sets[0].JSON) != `{"x":1}`+"\x00" {
		t.Fatalf("second group = %q, want the first (x) insert second", chain.groups[1].Sets[0].JSON)
	}
}

func TestLookupLabelUnknownKey(t *testing.T) {
	s := newLabelStore()
	_, err := s.lookupLabel(8, 1, nil)
	if !errors.Is(err, ErrNoLabels) {
		t.Fatalf("err = %v, want ErrNoLabels", err)
	}
}
