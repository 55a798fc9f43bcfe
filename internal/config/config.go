// Package config holds the static configuration for the catalog loader and
// its archive locators, validated against an inline JSON-Schema document
// the same way the teacher validates its program and metric-store config.
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/jkter/pcp/pkg/pcplog"
)

// LocatorConfig selects and configures one archive discovery backend.
type LocatorConfig struct {
	Kind      string `json:"kind"` // "fs", "sqlite" or "s3"
	Path      string `json:"path,omitempty"`
	IndexPath string `json:"index-path,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	Region    string `json:"region,omitempty"`
	AccessKey string `json:"access-key,omitempty"`
	SecretKey string `json:"secret-key,omitempty"`
}

// Config is the top-level configuration of the pcp catalog tooling.
type Config struct {
	NumWorkers int           `json:"num-workers"`
	LogLevel   string        `json:"log-level"`
	Locator    LocatorConfig `json:"locator"`
}

var Keys Config = Config{
	NumWorkers: 0,
	LogLevel:   "info",
	Locator: LocatorConfig{
		Kind: "fs",
		Path: "./var/archives",
	},
}

// Init reads flagConfigFile, validates it against configSchema and decodes
// it into Keys. A missing file is not an error; the defaults above apply.
func Init(flagConfigFile string) {
	raw, err := os.ReadFile(flagConfigFile)
	if err != nil {
		if !os.IsNotExist(err) {
			pcplog.Fatal(err)
		}
		return
	}

	Validate(configSchema, raw)

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&Keys); err != nil {
		pcplog.Fatal(err)
	}

	pcplog.SetLevel(Keys.LogLevel)
}
