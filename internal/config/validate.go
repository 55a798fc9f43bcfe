package config

import (
	"encoding/json"

	"github.com/jkter/pcp/pkg/pcplog"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate compiles schema as a JSON-Schema document and validates instance
// against it, aborting the process on any failure. Schema violations in a
// catalog's own configuration are not recoverable at runtime, the same way
// the teacher treats config schema mismatches.
func Validate(schema string, instance json.RawMessage) {
	sch, err := jsonschema.CompileString("schema.json", schema)
	if err != nil {
		pcplog.Fatalf("%#v", err)
	}

	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		pcplog.Fatal(err)
	}

	if err := sch.Validate(v); err != nil {
		pcplog.Fatalf("%#v", err)
	}
}
