// Package spec embeds the OpenAPI specification for the patient transport API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary keeps the document and the running code in sync.
//
//go:embed openapi.yaml
var OpenAPI []byte
