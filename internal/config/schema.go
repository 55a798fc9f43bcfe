package config

// configSchema is the JSON-Schema for Config, validated before decoding.
var configSchema = `
{
  "type": "object",
  "properties": {
    "num-workers": {
      "description": "Number of goroutines for concurrent archive loading. Decoded into Config.NumWorkers; no code in this repository reads it.",
      "type": "integer",
      "minimum": 0
    },
    "log-level": {
      "description": "Minimum level that gets logged: debug, info, notice, warn, err, crit.",
      "type": "string"
    },
    "locator": {
      "description": "Where archive metadata files are discovered.",
      "type": "object",
      "properties": {
        "kind": {
          "type": "string",
          "enum": ["fs", "sqlite", "s3"]
        },
        "path": {
          "type": "string"
        },
        "index-path": {
          "type": "string"
        },
        "bucket": {
          "type": "string"
        },
        "prefix": {
          "type": "string"
        },
        "endpoint": {
          "type": "string"
        },
        "region": {
          "type": "string"
        },
        "access-key": {
          "type": "string"
        },
        "secret-key": {
          "type": "string"
        }
      },
      "required": ["kind"]
    }
  },
  "required": ["locator"]
}
`
