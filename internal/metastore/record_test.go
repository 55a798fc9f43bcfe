package metastore

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestWriteReadRecordRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello metadata")
	if err := WriteRecord(&buf, RecText, payload); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	typ, got, err := ReadRecord(&buf)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if typ != RecText {
		t.Errorf("type = %v, want %v", typ, RecText)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}

func TestReadRecordCleanEOF(t *testing.T) {
	_, _, err := ReadRecord(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestReadRecordTruncatedHeaderIsMalformed(t *testing.T) {
	_, _, err := ReadRecord(bytes.NewReader([]byte{0, 0, 0}))
	if !errors.Is(err, ErrLogRec) {
		t.Fatalf("err = %v, want ErrLogRec", err)
	}
}

func TestReadRecordTrailerMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecord(&buf, RecText, []byte("x")); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()
	// Corrupt the trailer's length word.
	raw[len(raw)-1] ^= 0xff

	_, _, err := ReadRecord(bytes.NewReader(raw))
	if !errors.Is(err, ErrLogRec) {
		t.Fatalf("err = %v, want ErrLogRec", err)
	}
}

func TestReadRecordRejectsUndersizedTotalLen(t *testing.T) {
	var header [8]byte
	// total_len smaller than the 12-byte header+trailer overhead.
	header[3] = 4
	_, _, err := ReadRecord(bytes.NewReader(header[:]))
	if !errors.Is(err, ErrLogRec) {
		t.Fatalf("err = %v, want ErrLogRec", err)
	}
}
