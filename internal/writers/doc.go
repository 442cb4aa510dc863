// Package writers turns a finished assembly into serialized outputs.
//
// Design:
//   - Renderers live in internal/output; this package owns format dispatch.
//   - Engine stays domain-only; pipeline stays orchestration-only.
//   - JSONL and CBOR go through pkg/api (v1) for a stable wire format.
package writers
