// Package metastore implements the in-memory archive metadata catalog:
// descriptors, instance domains, labels and help text decoded from a
// versioned, length-prefixed, network-byte-order record stream, kept as
// time-ordered de-duplicated histories and queryable point-in-time.
package metastore

import "fmt"

// Timestamp is a PCP archive timestamp: seconds plus nanoseconds.
// Comparison is lexicographic on (Sec, Nsec).
type Timestamp struct {
	Sec  int64
	Nsec int32
}

// Before reports whether t happened strictly before o.
func (t Timestamp) Before(o Timestamp) bool {
	return t.Sec < o.Sec || (t.Sec == o.Sec && t.Nsec < o.Nsec)
}

// After reports whether t happened strictly after o.
func (t Timestamp) After(o Timestamp) bool {
	return o.Before(t)
}

// Equal reports whether t and o denote the same instant.
func (t Timestamp) Equal(o Timestamp) bool {
	return t.Sec == o.Sec && t.Nsec == o.Nsec
}

// LessOrEqual reports whether t <= o.
func (t Timestamp) LessOrEqual(o Timestamp) bool {
	return t.Before(o) || t.Equal(o)
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%09d", t.Sec, t.Nsec)
}

// LogVersion selects which on-disk timestamp encoding a record uses.
type LogVersion int

const (
	// LogVersion2 uses the "timeval" wire encoding: 32-bit sec, 32-bit usec.
	LogVersion2 LogVersion = 2
	// LogVersion3 uses the "timestamp" wire encoding: 64-bit sec, 32-bit nsec.
	LogVersion3 LogVersion = 3
)
