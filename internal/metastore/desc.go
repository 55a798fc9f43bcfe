package metastore

import "sync"

// Desc is a metric descriptor. Identity is Pmid; for a given Pmid the
// remaining fields never change across records once accepted (§3).
type Desc struct {
	Pmid  uint32
	Type  int32
	Sem   int32
	Indom uint32
	Units uint32 // packed units word, opaque to this store
}

// descStore is the map from metric id to frozen descriptor (§4.5). Names
// are handed off to the external PMNS tree; the store itself never needs
// more than pmid -> Desc.
type descStore struct {
	mu    sync.RWMutex
	descs map[uint32]Desc
	pmns  *pmnsTree
}

func newDescStore() *descStore {
	return &descStore{
		descs: make(map[uint32]Desc),
		pmns:  newPMNSTree(),
	}
}

// addDesc inserts newdesc if its Pmid is unseen, and returns nil. If the
// Pmid is already known, it compares Type/Sem/Indom/Units in that order and
// returns the first mismatch's typed error; an exact match returns nil
// without re-inserting (descriptors are frozen after first insert).
func (s *descStore) addDesc(newdesc Desc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.descs[newdesc.Pmid]
	if !ok {
		s.descs[newdesc.Pmid] = newdesc
		return nil
	}

	if existing.Type != newdesc.Type {
		return ErrChangeType
	}
	if existing.Sem != newdesc.Sem {
		return ErrChangeSem
	}
	if existing.Indom != newdesc.Indom {
		return ErrChangeIndom
	}
	if existing.Units != newdesc.Units {
		return ErrChangeUnits
	}
	return nil
}

// lookupDesc returns the descriptor for pmid, or ErrPmidLog.
func (s *descStore) lookupDesc(pmid uint32) (Desc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.descs[pmid]
	if !ok {
		return Desc{}, ErrPmidLog
	}
	return d, nil
}

// count returns the number of distinct descriptors seen.
func (s *descStore) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.descs)
}

// addName inserts name -> pmid into the PMNS. A "duplicate name with a
// different pmid" conflict is downgraded to success per §4.5: the design
// prefers partial readability of the namespace over rejecting the whole
// archive over one clashing name.
func (s *descStore) addName(pmid uint32, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pmns.insert(name, pmid); err != nil && err != errPMNSDupName {
		return err
	}
	return nil
}
