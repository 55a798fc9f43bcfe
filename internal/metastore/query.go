package metastore

// LookupDesc implements lookup_desc: the frozen descriptor for pmid.
func (c *Catalog) LookupDesc(pmid uint32) (Desc, error) {
	return c.descs.lookupDesc(pmid)
}

// GetIndom implements get_indom: the latest instance domain snapshot.
func (c *Catalog) GetIndom(indom uint32) (*InDomSnapshot, error) {
	return c.indoms.searchIndom(indom, nil)
}

// GetIndomAt implements search_indom's point-in-time form: the instance
// domain snapshot in force as of stamp (largest recorded stamp <= stamp).
func (c *Catalog) GetIndomAt(indom uint32, stamp Timestamp) (*InDomSnapshot, error) {
	return c.indoms.searchIndom(indom, &stamp)
}

// LookupIndom implements lookup_indom: instance name -> id within the
// indom's latest snapshot.
func (c *Catalog) LookupIndom(indom uint32, name string) (int32, error) {
	return c.LookupIndomAt(indom, nil, name)
}

// LookupIndomAt implements lookup_indom's point-in-time form: instance
// name -> id within the snapshot in force as of stamp (or the latest, if
// stamp is nil).
func (c *Catalog) LookupIndomAt(indom uint32, stamp *Timestamp, name string) (int32, error) {
	snap, err := c.indoms.searchIndom(indom, stamp)
	if err != nil {
		return 0, err
	}
	return lookupIndomInstance(snap, name)
}

// NameInIndom implements name_in_indom: instance id -> name within the
// indom's latest snapshot.
func (c *Catalog) NameInIndom(indom uint32, id int32) (string, error) {
	return c.NameInIndomAt(indom, nil, id)
}

// NameInIndomAt implements name_in_indom's point-in-time form: instance
// id -> name within the snapshot in force as of stamp (or the latest, if
// stamp is nil).
func (c *Catalog) NameInIndomAt(indom uint32, stamp *Timestamp, id int32) (string, error) {
	snap, err := c.indoms.searchIndom(indom, stamp)
	if err != nil {
		return "", err
	}
	return nameInIndom(snap, id)
}

// GetIndomUnion implements get_indom_union: the de-duplicated union of
// every instance ever recorded for indom.
func (c *Catalog) GetIndomUnion(indom uint32) ([]Instance, error) {
	return c.indoms.unionIndom(indom)
}

// LookupLabel implements lookup_label: the label sets in force for
// (typ, ident) as of stamp, or the latest if stamp is nil.
func (c *Catalog) LookupLabel(typ, ident uint32, stamp *Timestamp) ([]LabelSet, error) {
	return c.labels.lookupLabel(typ, ident, stamp)
}

// LookupText implements lookup_text: the latest help/oneline string for
// (ident, typ).
func (c *Catalog) LookupText(ident, typ uint32) (string, error) {
	return c.texts.lookupText(ident, typ)
}
