package metastore

import (
	"encoding/binary"
	"io"
)

// RecordType identifies the kind of metadata record framed on disk (§4.1).
type RecordType uint32

const (
	RecDesc       RecordType = 1
	RecIndom      RecordType = 2
	RecIndomV2    RecordType = 3
	RecIndomDelta RecordType = 4
	RecLabel      RecordType = 5
	RecLabelV2    RecordType = 6
	RecText       RecordType = 7
)

// headerTrailerOverhead is the byte cost of the 8-byte header plus the
// 4-byte trailer that frame every record (§4.1, §6).
const headerTrailerOverhead = 12

// ReadRecord reads one framed record from r: an 8-byte header (total length,
// type), a payload of totalLen-12 bytes, and a 4-byte trailer that must
// repeat totalLen. A clean EOF before any header bytes are read is reported
// as io.EOF so the loader can stop; any other short read or a trailer
// mismatch is ErrLogRec.
func ReadRecord(r io.Reader) (RecordType, []byte, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, ErrLogRec
	}

	totalLen := binary.BigEndian.Uint32(header[0:4])
	typ := RecordType(binary.BigEndian.Uint32(header[4:8]))

	if totalLen < headerTrailerOverhead {
		return 0, nil, ErrLogRec
	}

	payload := make([]byte, totalLen-headerTrailerOverhead)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, ErrLogRec
	}

	var trailer [4]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return 0, nil, ErrLogRec
	}
	trailerLen := binary.BigEndian.Uint32(trailer[:])
	if trailerLen != totalLen {
		return 0, nil, ErrLogRec
	}

	return typ, payload, nil
}

// WriteRecord frames payload as one record of the given type and writes it
// to w: header, payload, trailer, all network byte order.
func WriteRecord(w io.Writer, typ RecordType, payload []byte) error {
	totalLen := uint32(len(payload) + headerTrailerOverhead)

	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], totalLen)
	binary.BigEndian.PutUint32(header[4:8], uint32(typ))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}

	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], totalLen)
	_, err := w.Write(trailer[:])
	return err
}
