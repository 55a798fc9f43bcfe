package metastore

import (
	"bytes"
	"encoding/binary"
)

// MaxLabelJSONLen bounds a single LabelSet's raw JSON length (§4.1).
const MaxLabelJSONLen = 2048

// labelWireSize is the fixed on-disk size of one Label struct: two-byte
// name/value offset and length fields plus a four-byte flags word
// (2+2+2+2+4 = 12 bytes), matching §6's "fixed 12-byte struct".
const labelWireSize = 12

// byteCursor is a small positional reader over an in-memory payload. The
// codec works on whole payloads (already framed and size-validated by
// ReadRecord) rather than streaming, the same way the teacher's line
// protocol decoder works against one already-buffered NATS message
// (internal/memorystore/lineprotocol.go).
type byteCursor struct {
	buf []byte
	pos int
}

func (c *byteCursor) remaining() int { return len(c.buf) - c.pos }

func (c *byteCursor) u32() (uint32, bool) {
	if c.remaining() < 4 {
		return 0, false
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, true
}

func (c *byteCursor) i32() (int32, bool) {
	v, ok := c.u32()
	return int32(v), ok
}

func (c *byteCursor) u64() (uint64, bool) {
	if c.remaining() < 8 {
		return 0, false
	}
	v := binary.BigEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return v, true
}

func (c *byteCursor) i64() (int64, bool) {
	v, ok := c.u64()
	return int64(v), ok
}

func (c *byteCursor) bytes(n int) ([]byte, bool) {
	if n < 0 || c.remaining() < n {
		return nil, false
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, true
}

func (c *byteCursor) cString() (string, bool) {
	rest := c.buf[c.pos:]
	nul := bytes.IndexByte(rest, 0)
	if nul < 0 {
		return "", false
	}
	s := string(rest[:nul])
	c.pos += nul + 1
	return s, true
}

// --- Timestamp ---

// decodeTimestamp reads the wire encoding matching version: V2 is a 32-bit
// sec, 32-bit usec "timeval"; V3 is a 64-bit sec, 32-bit nsec "timestamp"
// (§3, §6).
func decodeTimestamp(c *byteCursor, version LogVersion) (Timestamp, bool) {
	if version == LogVersion2 {
		sec, ok := c.i32()
		if !ok {
			return Timestamp{}, false
		}
		usec, ok := c.i32()
		if !ok {
			return Timestamp{}, false
		}
		return Timestamp{Sec: int64(sec), Nsec: usec * 1000}, true
	}

	sec, ok := c.i64()
	if !ok {
		return Timestamp{}, false
	}
	nsec, ok := c.i32()
	if !ok {
		return Timestamp{}, false
	}
	return Timestamp{Sec: sec, Nsec: nsec}, true
}

func encodeTimestamp(buf []byte, stamp Timestamp, version LogVersion) []byte {
	if version == LogVersion2 {
		var tmp [8]byte
		binary.BigEndian.PutUint32(tmp[0:4], uint32(stamp.Sec))
		binary.BigEndian.PutUint32(tmp[4:8], uint32(stamp.Nsec/1000))
		return append(buf, tmp[:]...)
	}

	var tmp [12]byte
	binary.BigEndian.PutUint64(tmp[0:8], uint64(stamp.Sec))
	binary.BigEndian.PutUint32(tmp[8:12], uint32(stamp.Nsec))
	return append(buf, tmp[:]...)
}

// --- DESC ---

// DecodeDesc decodes a DESC payload (§4.1): the fixed Desc fields followed
// by a count and that many (length-prefixed) names.
func DecodeDesc(payload []byte) (Desc, []string, error) {
	c := &byteCursor{buf: payload}

	pmid, ok1 := c.u32()
	typ, ok2 := c.i32()
	sem, ok3 := c.i32()
	indom, ok4 := c.u32()
	units, ok5 := c.u32()
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return Desc{}, nil, ErrLogRec
	}
	desc := Desc{Pmid: pmid, Type: typ, Sem: sem, Indom: indom, Units: units}

	numNames, ok := c.u32()
	if !ok {
		return Desc{}, nil, ErrLogRec
	}

	names := make([]string, 0, numNames)
	for i := uint32(0); i < numNames; i++ {
		nlen, ok := c.u32()
		if !ok {
			return Desc{}, nil, ErrLogRec
		}
		nameBytes, ok := c.bytes(int(nlen))
		if !ok {
			return Desc{}, nil, ErrLogRec
		}
		names = append(names, string(nameBytes))
	}

	return desc, names, nil
}

// EncodeDesc is the inverse of DecodeDesc.
func EncodeDesc(desc Desc, names []string) []byte {
	buf := make([]byte, 0, 24+16*len(names))

	var fixed [20]byte
	binary.BigEndian.PutUint32(fixed[0:4], desc.Pmid)
	binary.BigEndian.PutUint32(fixed[4:8], uint32(desc.Type))
	binary.BigEndian.PutUint32(fixed[8:12], uint32(desc.Sem))
	binary.BigEndian.PutUint32(fixed[12:16], desc.Indom)
	binary.BigEndian.PutUint32(fixed[16:20], desc.Units)
	buf = append(buf, fixed[:]...)

	var nn [4]byte
	binary.BigEndian.PutUint32(nn[:], uint32(len(names)))
	buf = append(buf, nn[:]...)

	for _, name := range names {
		var nlen [4]byte
		binary.BigEndian.PutUint32(nlen[:], uint32(len(name)))
		buf = append(buf, nlen[:]...)
		buf = append(buf, name...)
	}
	return buf
}

// --- INDOM / INDOM_V2 ---

// DecodeIndom decodes an INDOM or INDOM_V2 payload (§4.1, §6): a timestamp
// in the encoding matching version, the indom id, an instance count, then
// (if positive) an id array and a name-offset array indexing into a packed,
// NUL-terminated name-byte section.
func DecodeIndom(payload []byte, version LogVersion) (Timestamp, uint32, []Instance, error) {
	c := &byteCursor{buf: payload}

	stamp, ok := decodeTimestamp(c, version)
	if !ok {
		return Timestamp{}, 0, nil, ErrLogRec
	}

	indom, ok := c.u32()
	if !ok {
		return Timestamp{}, 0, nil, ErrLogRec
	}

	numinst, ok := c.i32()
	if !ok {
		return Timestamp{}, 0, nil, ErrLogRec
	}
	if numinst <= 0 {
		return stamp, indom, nil, nil
	}

	ids := make([]int32, numinst)
	for i := range ids {
		v, ok := c.i32()
		if !ok {
			return Timestamp{}, 0, nil, ErrLogRec
		}
		ids[i] = v
	}

	offsets := make([]uint32, numinst)
	for i := range offsets {
		v, ok := c.u32()
		if !ok {
			return Timestamp{}, 0, nil, ErrLogRec
		}
		offsets[i] = v
	}

	namesStart := c.pos
	instances := make([]Instance, numinst)
	for i := range instances {
		off := namesStart + int(offsets[i])
		if off < 0 || off > len(payload) {
			return Timestamp{}, 0, nil, ErrLogRec
		}
		nameCursor := &byteCursor{buf: payload, pos: off}
		name, ok := nameCursor.cString()
		if !ok {
			return Timestamp{}, 0, nil, ErrLogRec
		}
		instances[i] = Instance{ID: ids[i], Name: name}
	}

	return stamp, indom, instances, nil
}

// EncodeIndom is the inverse of DecodeIndom.
func EncodeIndom(stamp Timestamp, indom uint32, instances []Instance, version LogVersion) []byte {
	buf := make([]byte, 0, 32+12*len(instances))
	buf = encodeTimestamp(buf, stamp, version)

	var indomBuf [4]byte
	binary.BigEndian.PutUint32(indomBuf[:], indom)
	buf = append(buf, indomBuf[:]...)

	var numinst [4]byte
	binary.BigEndian.PutUint32(numinst[:], uint32(int32(len(instances))))
	buf = append(buf, numinst[:]...)

	if len(instances) == 0 {
		return buf
	}

	for _, inst := range instances {
		var idBuf [4]byte
		binary.BigEndian.PutUint32(idBuf[:], uint32(inst.ID))
		buf = append(buf, idBuf[:]...)
	}

	nameBytes := make([]byte, 0, len(instances)*8)
	offsets := make([]uint32, len(instances))
	for i, inst := range instances {
		offsets[i] = uint32(len(nameBytes))
		nameBytes = append(nameBytes, inst.Name...)
		nameBytes = append(nameBytes, 0)
	}

	for _, off := range offsets {
		var offBuf [4]byte
		binary.BigEndian.PutUint32(offBuf[:], off)
		buf = append(buf, offBuf[:]...)
	}

	buf = append(buf, nameBytes...)
	return buf
}

// --- LABEL / LABEL_V2 ---

// DecodeLabel decodes a LABEL or LABEL_V2 payload (§4.1, §6): a timestamp,
// the label type and identifier, a set count, then that many LabelSets.
func DecodeLabel(payload []byte, version LogVersion) (Timestamp, uint32, uint32, []LabelSet, error) {
	c := &byteCursor{buf: payload}

	stamp, ok := decodeTimestamp(c, version)
	if !ok {
		return Timestamp{}, 0, 0, nil, ErrLogRec
	}

	labelType, ok := c.u32()
	if !ok {
		return Timestamp{}, 0, 0, nil, ErrLogRec
	}
	ident, ok := c.u32()
	if !ok {
		return Timestamp{}, 0, 0, nil, ErrLogRec
	}
	nsets, ok := c.u32()
	if !ok {
		return Timestamp{}, 0, 0, nil, ErrLogRec
	}

	sets := make([]LabelSet, 0, nsets)
	for i := uint32(0); i < nsets; i++ {
		set, err := decodeLabelSet(c)
		if err != nil {
			return Timestamp{}, 0, 0, nil, err
		}
		if set != nil {
			sets = append(sets, *set)
		}
	}

	return stamp, labelType, ident, sets, nil
}

// decodeLabelSet decodes one LabelSet. A negative nlabels is an embedded
// error code (§4.1): the set is skipped (nil, nil) rather than treated as a
// decode failure.
func decodeLabelSet(c *byteCursor) (*LabelSet, error) {
	inst, ok := c.u32()
	if !ok {
		return nil, ErrLogRec
	}
	jsonlen, ok := c.u32()
	if !ok {
		return nil, ErrLogRec
	}
	if jsonlen > MaxLabelJSONLen {
		return nil, ErrLogRec
	}
	jsonBytes, ok := c.bytes(int(jsonlen))
	if !ok {
		return nil, ErrLogRec
	}
	// Decoder-owned copy with an appended NUL, matching §4.1's "decoder
	// appends NUL" note; byte offsets recorded below never include it.
	json := make([]byte, len(jsonBytes)+1)
	copy(json, jsonBytes)

	nlabels, ok := c.i32()
	if !ok {
		return nil, ErrLogRec
	}
	if nlabels < 0 {
		// Embedded error code: malformed but not fatal, set is skipped.
		return nil, nil
	}

	need := int(nlabels) * labelWireSize
	if c.remaining() < need {
		return nil, ErrLogRec
	}

	labels := make([]Label, nlabels)
	for i := range labels {
		nameOff, _ := c.u32Half()
		nameLen, _ := c.u32Half()
		valueOff, _ := c.u32Half()
		valueLen, _ := c.u32Half()
		flags, ok := c.i32()
		if !ok {
			return nil, ErrLogRec
		}
		labels[i] = Label{
			NameOff:  int32(nameOff),
			NameLen:  int32(nameLen),
			ValueOff: int32(valueOff),
			ValueLen: int32(valueLen),
			Flags:    flags,
		}
	}

	return &LabelSet{Inst: int32(inst), JSON: json, Labels: labels}, nil
}

// u32Half reads a 16-bit big-endian field, used for Label's packed offset
// and length fields.
func (c *byteCursor) u32Half() (uint16, bool) {
	if c.remaining() < 2 {
		return 0, false
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, true
}

// EncodeLabel is the inverse of DecodeLabel.
func EncodeLabel(stamp Timestamp, labelType, ident uint32, sets []LabelSet, version LogVersion) []byte {
	buf := make([]byte, 0, 32+64*len(sets))
	buf = encodeTimestamp(buf, stamp, version)

	var hdr [12]byte
	binary.BigEndian.PutUint32(hdr[0:4], labelType)
	binary.BigEndian.PutUint32(hdr[4:8], ident)
	binary.BigEndian.PutUint32(hdr[8:12], uint32(len(sets)))
	buf = append(buf, hdr[:]...)

	for _, set := range sets {
		buf = encodeLabelSet(buf, set)
	}
	return buf
}

func encodeLabelSet(buf []byte, set LabelSet) []byte {
	var instBuf [4]byte
	binary.BigEndian.PutUint32(instBuf[:], uint32(set.Inst))
	buf = append(buf, instBuf[:]...)

	jsonNoNUL := set.JSON
	if n := len(jsonNoNUL); n > 0 && jsonNoNUL[n-1] == 0 {
		jsonNoNUL = jsonNoNUL[:n-1]
	}

	var jlenBuf [4]byte
	binary.BigEndian.PutUint32(jlenBuf[:], uint32(len(jsonNoNUL)))
	buf = append(buf, jlenBuf[:]...)
	buf = append(buf, jsonNoNUL...)

	var nlBuf [4]byte
	binary.BigEndian.PutUint32(nlBuf[:], uint32(int32(len(set.Labels))))
	buf = append(buf, nlBuf[:]...)

	for _, lbl := range set.Labels {
		var wire [labelWireSize]byte
		binary.BigEndian.PutUint16(wire[0:2], uint16(lbl.NameOff))
		binary.BigEndian.PutUint16(wire[2:4], uint16(lbl.NameLen))
		binary.BigEndian.PutUint16(wire[4:6], uint16(lbl.ValueOff))
		binary.BigEndian.PutUint16(wire[6:8], uint16(lbl.ValueLen))
		binary.BigEndian.PutUint32(wire[8:12], uint32(lbl.Flags))
		buf = append(buf, wire[:]...)
	}
	return buf
}

// --- TEXT ---

const (
	TextOneline uint32 = 1 << 0
	TextHelp    uint32 = 1 << 1
	TextPMID    uint32 = 1 << 2
	TextIndom   uint32 = 1 << 3
)

// DecodeText decodes a TEXT payload (§4.1): type, identifier, then a
// NUL-terminated string. It reports ok=false (not an error) when the type
// word fails §4.1's "at least one of {ONELINE,HELP} and exactly one of
// {PMID,INDOM}" check, matching the loader's documented asymmetry of
// skipping malformed TEXT records rather than aborting the whole load.
func DecodeText(payload []byte) (typ, ident uint32, text string, ok bool) {
	c := &byteCursor{buf: payload}

	typ, ok1 := c.u32()
	ident, ok2 := c.u32()
	if !ok1 || !ok2 {
		return 0, 0, "", false
	}

	text, ok3 := c.cString()
	if !ok3 {
		return 0, 0, "", false
	}

	if typ&(TextOneline|TextHelp) == 0 {
		return 0, 0, "", false
	}
	hasPMID := typ&TextPMID != 0
	hasIndom := typ&TextIndom != 0
	if hasPMID == hasIndom { // neither, or both: exactly one is required
		return 0, 0, "", false
	}

	return typ, ident, text, true
}

// EncodeText is the inverse of DecodeText.
func EncodeText(typ, ident uint32, text string) []byte {
	buf := make([]byte, 0, 8+len(text)+1)
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], typ)
	binary.BigEndian.PutUint32(hdr[4:8], ident)
	buf = append(buf, hdr[:]...)
	buf = append(buf, text...)
	buf = append(buf, 0)
	return buf
}
