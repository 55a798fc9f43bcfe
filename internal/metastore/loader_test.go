package metastore

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPutThenLoadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	c := NewCatalog(LogVersion3)

	desc := Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 60, Units: 0}
	require.NoError(t, c.PutDesc(&buf, desc, []string{"kernel.all.load1"}))

	stamp := Timestamp{Sec: 100}
	_, err := c.PutIndom(&buf, 60, stamp, []Instance{{ID: 0, Name: "cpu0"}})
	require.NoError(t, err)

	require.NoError(t, c.PutLabel(&buf, 4, 0, stamp, []LabelSet{mkSet(`{"a":1}`, -1)}))
	require.NoError(t, c.PutText(&buf, TextHelp|TextPMID, 1, "load average"))

	reloaded := NewCatalog(LogVersion3)
	require.NoError(t, loadFrom(bytes.NewReader(buf.Bytes()), reloaded))

	gotDesc, err := reloaded.LookupDesc(1)
	require.NoError(t, err)
	assert.Equal(t, desc, gotDesc)

	snap, err := reloaded.GetIndom(60)
	require.NoError(t, err)
	require.Len(t, snap.Instances, 1)
	assert.Equal(t, "cpu0", snap.Instances[0].Name)

	text, err := reloaded.LookupText(1, TextHelp|TextPMID)
	require.NoError(t, err)
	assert.Equal(t, "load average", text)
}

// TestLoadFromRejectsTrailerMismatch implements S7: a record whose trailer
// disagrees with its header aborts the load with ErrLogRec.
func TestLoadFromRejectsTrailerMismatch(t *testing.T) {
	var buf bytes.Buffer
	desc := Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 0, Units: 0}
	require.NoError(t, WriteRecord(&buf, RecDesc, EncodeDesc(desc, nil)))
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xff

	c := NewCatalog(LogVersion3)
	err := loadFrom(bytes.NewReader(raw), c)
	assert.ErrorIs(t, err, ErrLogRec)
}

func TestLoadFromRejectsDescriptorConflict(t *testing.T) {
	var buf bytes.Buffer
	WriteRecord(&buf, RecDesc, EncodeDesc(Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 0, Units: 0}, nil))
	WriteRecord(&buf, RecDesc, EncodeDesc(Desc{Pmid: 1, Type: 2, Sem: 1, Indom: 0, Units: 0}, nil))

	c := NewCatalog(LogVersion3)
	err := loadFrom(bytes.NewReader(buf.Bytes()), c)
	assert.ErrorIs(t, err, ErrChangeType)
}

func TestLoadFromRejectsEmptyArchive(t *testing.T) {
	c := NewCatalog(LogVersion3)
	err := loadFrom(bytes.NewReader(nil), c)
	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestLoadFromSkipsUnknownRecordType(t *testing.T) {
	var buf bytes.Buffer
	WriteRecord(&buf, RecDesc, EncodeDesc(Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 0, Units: 0}, nil))
	WriteRecord(&buf, RecordType(999), []byte("opaque"))

	c := NewCatalog(LogVersion3)
	require.NoError(t, loadFrom(bytes.NewReader(buf.Bytes()), c))
	assert.Equal(t, 1, c.DescCount())
}

func TestLoadFromSkipsMalformedTextButKeepsGoing(t *testing.T) {
	var buf bytes.Buffer
	WriteRecord(&buf, RecDesc, EncodeDesc(Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 0, Units: 0}, nil))
	WriteRecord(&buf, RecText, EncodeText(TextPMID, 1, "missing oneline/help bit"))
	WriteRecord(&buf, RecText, EncodeText(TextHelp|TextPMID, 1, "good"))

	c := NewCatalog(LogVersion3)
	require.NoError(t, loadFrom(bytes.NewReader(buf.Bytes()), c))
	text, err := c.LookupText(1, TextHelp|TextPMID)
	require.NoError(t, err)
	assert.Equal(t, "good", text)
}

// TestLoadFromSkipsEmptyIndomRecord implements §4.6 step 4: a numinst<=0
// INDOM record must not reach addIndom at all, so it can never shadow the
// true latest non-empty snapshot at the chain head.
func TestLoadFromSkipsEmptyIndomRecord(t *testing.T) {
	var buf bytes.Buffer
	WriteRecord(&buf, RecDesc, EncodeDesc(Desc{Pmid: 1, Type: 1, Sem: 1, Indom: 60, Units: 0}, nil))
	WriteRecord(&buf, RecIndom, EncodeIndom(Timestamp{Sec: 10}, 60, []Instance{{ID: 0, Name: "cpu0"}}, LogVersion3))
	WriteRecord(&buf, RecIndom, EncodeIndom(Timestamp{Sec: 20}, 60, nil, LogVersion3))

	c := NewCatalog(LogVersion3)
	require.NoError(t, loadFrom(bytes.NewReader(buf.Bytes()), c))

	snap, err := c.GetIndom(60)
	require.NoError(t, err)
	require.Len(t, snap.Instances, 1)
	assert.Equal(t, "cpu0", snap.Instances[0].Name)
}

func TestLoadDirMergesMultipleArchives(t *testing.T) {
	dir := t.TempDir()

	writeArchive := func(name string, pmid uint32) {
		var buf bytes.Buffer
		WriteRecord(&buf, RecDesc, EncodeDesc(Desc{Pmid: pmid, Type: 1, Sem: 1, Indom: 0, Units: 0}, nil))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
	}
	writeArchive("a.meta", 1)
	writeArchive("b.meta", 2)

	c, err := LoadDir(dir, LogVersion3, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.DescCount())
}
