// Package engine contains the assembly core: greedy unitig extension over a
// membership oracle and the driver that scans reads with jump-ahead. It never
// imports app, writers, cli, or pipeline; keep it domain-only.
//
// External outputs must not depend on the internal shape here; use pkg/api
// for stable wire types.
package engine
