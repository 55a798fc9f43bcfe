package metastore

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jkter/pcp/pkg/pcplog"
)

// ErrEmptyArchive is returned when a file produced zero descriptors: an
// archive that never defines a metric contributed nothing worth keeping
// (§4.6).
var ErrEmptyArchive = errors.New("[METASTORE]> archive contributed no descriptors")

// indomVersion and labelVersion map each on-disk record type to its
// timestamp encoding. The naming is the grammar's, not a V2-is-newer
// convention: INDOM/LABEL (unsuffixed) carry the 64-bit Timestamp form,
// while INDOM_V2/LABEL_V2 carry the older 32-bit Timeval form (§6).
func indomVersion(typ RecordType) LogVersion {
	if typ == RecIndomV2 {
		return LogVersion2
	}
	return LogVersion3
}

func labelVersion(typ RecordType) LogVersion {
	if typ == RecLabelV2 {
		return LogVersion2
	}
	return LogVersion3
}

// loadFrom sequentially scans one metadata stream into c. It does not run
// the post-load label dedup pass or PMNS normalization; callers merging
// multiple archives should call Catalog.Finalize once after every file has
// been scanned (§4.6).
func loadFrom(r io.Reader, c *Catalog) error {
	sawDesc := false

	for {
		typ, payload, err := ReadRecord(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch typ {
		case RecDesc:
			if err := loadDesc(c, payload); err != nil {
				return err
			}
			sawDesc = true
		case RecIndom, RecIndomV2:
			if err := loadIndom(c, payload, indomVersion(typ)); err != nil {
				return err
			}
		case RecIndomDelta:
			// Delta-encoded indom updates are a recognized type with no
			// payload grammar in scope here; treated like an unknown type.
		case RecLabel, RecLabelV2:
			if err := loadLabel(c, payload, labelVersion(typ)); err != nil {
				return err
			}
		case RecText:
			loadText(c, payload) // malformed TEXT records are skipped, not fatal
		default:
			// Unknown type: payload already consumed and trailer already
			// validated by ReadRecord, nothing further to do (§4.1).
		}
	}

	if !sawDesc {
		return ErrEmptyArchive
	}
	return nil
}

func loadDesc(c *Catalog, payload []byte) error {
	desc, names, err := DecodeDesc(payload)
	if err != nil {
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

func loadIndom(c *Catalog, payload []byte, version LogVersion) error {
	stamp, indom, instances, err := DecodeIndom(payload, version)
	if err != nil {
		return err
	}
	if len(instances) == 0 {
		// numinst <= 0: nothing to insert, the decoded buffer is simply
		// discarded (§4.6 step 4).
		return nil
	}
	result := c.indoms.addIndom(indom, stamp, instances)
	pcplog.Debugf("metastore: indom %d @ %s: %s", indom, stamp, result)
	return nil
}

func loadLabel(c *Catalog, payload []byte, version LogVersion) error {
	stamp, labelType, ident, sets, err := DecodeLabel(payload, version)
	if err != nil {
		return err
	}
	c.labels.addLabel(labelType, ident, stamp, sets)
	return nil
}

func loadText(c *Catalog, payload []byte) {
	typ, ident, text, ok := DecodeText(payload)
	if !ok {
		pcplog.Debug("metastore: skipping malformed text record")
		return
	}
	c.texts.addText(typ, ident, text)
}

// LoadDir loads every archive metadata file in dir (matching the suffix
// convention *.meta) into a fresh catalog, using a bounded worker pool the
// way the teacher's FromCheckpointFiles fans out over many checkpoint files
// (internal/memorystore/checkpoint.go). Per-file decode runs concurrently;
// inserts into the shared stores serialize on each store's own mutex, and a
// single Finalize pass runs after every worker has returned.
func LoadDir(dir string, version LogVersion, numWorkers int) (*Catalog, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.meta"))
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	c := NewCatalog(version)
	if len(entries) == 0 {
		return c, nil
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	paths := make(chan string)
	errs := make(chan error, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				if err := c.LoadArchive(path); err != nil {
					errs <- fmt.Errorf("%s: %w", path, err)
				}
			}
		}()
	}

	for _, path := range entries {
		paths <- path
	}
	close(paths)
	wg.Wait()
	close(errs)

	var firstErr error
	for err := range errs {
		pcplog.Errorf("metastore: %v", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	c.Finalize()
	return c, nil
}
