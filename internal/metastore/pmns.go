package metastore

import "errors"

// pmnsTree is a minimal stand-in for PCP's metric namespace tree. The full
// PMNS (wildcard traversal, subtree export/import, ASCII grammar parsing)
// is explicitly out of scope for this catalog (§1); what remains is the one
// operation the loader depends on: inserting a name -> pmid mapping and
// noticing when a name is reused for a different pmid.
type pmnsTree struct {
	byName map[string]uint32
}

var errPMNSDupName = errors.New("[METASTORE]> name already bound to a different pmid")

func newPMNSTree() *pmnsTree {
	return &pmnsTree{byName: make(map[string]uint32)}
}

// insert binds name to pmid. Re-inserting the same (name, pmid) pair is a
// no-op; binding an already-used name to a different pmid reports
// errPMNSDupName so the caller (descStore.addName) can decide whether that
// is fatal.
func (t *pmnsTree) insert(name string, pmid uint32) error {
	if existing, ok := t.byName[name]; ok {
		if existing == pmid {
			return nil
		}
		return errPMNSDupName
	}
	t.byName[name] = pmid
	return nil
}

// lookup returns the pmid bound to name, if any.
func (t *pmnsTree) lookup(name string) (uint32, bool) {
	pmid, ok := t.byName[name]
	return pmid, ok
}

// normalize is a no-op placeholder for the PMNS normalization step the
// loader runs after a successful archive load (§4.6). The real PMNS
// rebuilds internal wildcard/hash structures here; this catalog only
// tracks a flat name->pmid map, so there is nothing to rebuild.
func (t *pmnsTree) normalize() {}
