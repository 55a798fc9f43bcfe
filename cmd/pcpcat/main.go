// Command pcpcat loads every archive metadata file a locator can see into
// one catalog and reports how many metric descriptors it holds, the way
// the teacher's archive-manager tool walks and validates a job archive
// (tools/archive-manager/main.go).
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/jkter/pcp/internal/config"
	"github.com/jkter/pcp/internal/metastore"
	"github.com/jkter/pcp/pkg/locator"
	"github.com/jkter/pcp/pkg/pcplog"
)

func main() {
	var flagConfigFile string
	var srcPath string
	var version int

	flag.StringVar(&flagConfigFile, "config", "./config.json", "Path to config.json")
	flag.StringVar(&srcPath, "s", "", "Override the configured fs locator's archive root")
	flag.IntVar(&version, "version", 3, "Wire timestamp version to use when catalog state is re-serialized (2 or 3)")
	flag.Parse()

	config.Init(flagConfigFile)
	if srcPath != "" {
		config.Keys.Locator.Kind = "fs"
		config.Keys.Locator.Path = srcPath
	}

	ctx := context.Background()
	backend, err := locator.Open(ctx, config.Keys.Locator)
	if err != nil {
		pcplog.Fatal(err)
	}

	names, err := backend.List(ctx)
	if err != nil {
		pcplog.Fatal(err)
	}
	if len(names) == 0 {
		pcplog.Warn("pcpcat: no archive metadata files found")
		return
	}

	logVersion := metastore.LogVersion3
	if version == 2 {
		logVersion = metastore.LogVersion2
	}
	catalog := metastore.NewCatalog(logVersion)

	for _, name := range names {
		r, err := backend.Open(ctx, name)
		if err != nil {
			pcplog.Errorf("pcpcat: opening %s: %v", name, err)
			continue
		}
		err = catalog.LoadStream(r)
		r.Close()
		if err != nil {
			pcplog.Errorf("pcpcat: loading %s: %v", name, err)
			continue
		}
		fmt.Printf("%s: ok (%d descriptors known so far)\n", name, catalog.DescCount())
	}

	catalog.Finalize()
	fmt.Printf("total: %d descriptors across %d archive(s)\n", catalog.DescCount(), len(names))
}
