package metastore

import "io"

// indomRecordType and labelRecordType mirror indomVersion/labelVersion in
// reverse: which on-disk record type to emit for the catalog's configured
// wire version (§6).
func (c *Catalog) indomRecordType() RecordType {
	if c.version == LogVersion2 {
		return RecIndomV2
	}
	return RecIndom
}

func (c *Catalog) labelRecordType() RecordType {
	if c.version == LogVersion2 {
		return RecLabelV2
	}
	return RecLabel
}

// PutDesc encodes and writes a DESC record to w, then applies it to the
// catalog the same way loading it back would (§4.5).
func (c *Catalog) PutDesc(w io.Writer, desc Desc, names []string) error {
	if err := WriteRecord(w, RecDesc, EncodeDesc(desc, names)); err != nil {
		return err
	}
	if err := c.descs.addDesc(desc); err != nil {
		return err
	}
	for _, name := range names {
		if err := c.descs.addName(desc.Pmid, name); err != nil {
			return err
		}
	}
	return nil
}

// PutIndom encodes and writes an INDOM (or INDOM_V2) record to w, then
// applies it to the catalog, returning whether it was accepted as new or
// suppressed as a time-slot duplicate (§4.2).
func (c *Catalog) PutIndom(w io.Writer, indom uint32, stamp Timestamp, instances []Instance) (InsertResult, error) {
	payload := EncodeIndom(stamp, indom, instances, c.version)
	if err := WriteRecord(w, c.indomRecordType(), payload); err != nil {
		return InsertOK, err
	}
	return c.indoms.addIndom(indom, stamp, instances), nil
}

// PutLabel encodes and writes a LABEL (or LABEL_V2) record to w, then
// applies it to the catalog. The post-load dedup pass (checkDupLabels) is
// not run automatically; callers writing many records in a batch should
// call Catalog.Finalize once at the end (§4.3).
func (c *Catalog) PutLabel(w io.Writer, typ, ident uint32, stamp Timestamp, sets []LabelSet) error {
	payload := EncodeLabel(stamp, typ, ident, sets, c.version)
	if err := WriteRecord(w, c.labelRecordType(), payload); err != nil {
		return err
	}
	c.labels.addLabel(typ, ident, stamp, sets)
	return nil
}

// PutText encodes and writes a TEXT record to w, then applies it to the
// catalog (§4.4).
func (c *Catalog) PutText(w io.Writer, typ, ident uint32, text string) error {
	if err := WriteRecord(w, RecText, EncodeText(typ, ident, text)); err != nil {
		return err
	}
	c.texts.addText(typ, ident, text)
	return nil
}
