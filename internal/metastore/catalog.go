package metastore

import (
	"io"
	"os"

	"github.com/jkter/pcp/pkg/pcplog"
)

// Catalog is the in-memory archive metadata store: the four per-kind
// stores (descriptors, instance domains, labels, help text) plus the wire
// version in force for encoding new records. It is the single point
// call sites reach for once an archive (or a directory of archives) is
// loaded, the way the teacher's memorystore.GetMemoryStore() singleton
// fronts its own four-kind Level tree (internal/memorystore/memorystore.go).
type Catalog struct {
	descs   *descStore
	indoms  *indomStore
	labels  *labelStore
	texts   *textStore
	version LogVersion
}

// NewCatalog returns an empty catalog that encodes new records using
// version.
func NewCatalog(version LogVersion) *Catalog {
	return &Catalog{
		descs:   newDescStore(),
		indoms:  newIndomStore(),
		labels:  newLabelStore(),
		texts:   newTextStore(),
		version: version,
	}
}

// LoadArchive loads one metadata file into the catalog, merging it with
// whatever the catalog already holds (§4.6).
func (c *Catalog) LoadArchive(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pcplog.Debugf("metastore: loading archive %s", path)
	if err := loadFrom(f, c); err != nil {
		return err
	}
	pcplog.Infof("metastore: loaded archive %s (%d descriptors known)", path, c.descs.count())
	return nil
}

// LoadStream loads one metadata stream from r into the catalog, the way
// LoadArchive does for an on-disk file. It is the entry point for callers
// that discover archives through a non-filesystem locator.Backend.
func (c *Catalog) LoadStream(r io.Reader) error {
	return loadFrom(r, c)
}

// DescCount reports how many distinct descriptors the catalog has seen
// across every archive loaded into it.
func (c *Catalog) DescCount() int {
	return c.descs.count()
}

// Finalize runs the post-load passes that must happen once every archive in
// a merge set has been scanned: label de-duplication (§4.3) and PMNS
// normalization (§4.6).
func (c *Catalog) Finalize() {
	c.labels.checkDupLabels()
	c.descs.pmns.normalize()
}

// Close releases every entity the catalog holds (§5's resource policy).
// There is no manual free/ownership-transfer bookkeeping to perform here
// the way the C ancestor's all_in_buf flag requires: dropping the stores'
// references makes the whole tree collectable, and the garbage collector
// does the rest. A Catalog must not be used after Close.
func (c *Catalog) Close() {
	c.descs = nil
	c.indoms = nil
	c.labels = nil
	c.texts = nil
}
