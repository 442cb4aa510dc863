// pkg/api/contigs_v1.go
package api

// ContigV1 is the stable JSON/JSONL/CBOR schema for one assembled contig.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ContigV1 struct {
	ID     uint32 `json:"id" cbor:"id"`
	Length int    `json:"length" cbor:"length"`
	Kmers  int    `json:"kmers" cbor:"kmers"`
	Seq    string `json:"seq" cbor:"seq"`
}

// LinkV1 is a k-1 overlap between two oriented contigs. Strands are "+"/"-".
type LinkV1 struct {
	From       uint32 `json:"from" cbor:"from"`
	FromStrand string `json:"from_strand" cbor:"from_strand"`
	To         uint32 `json:"to" cbor:"to"`
	ToStrand   string `json:"to_strand" cbor:"to_strand"`
}

// StatsV1 mirrors the assembler counters.
type StatsV1 struct {
	Reads           int `json:"reads" cbor:"reads"`
	ShortReads      int `json:"short_reads" cbor:"short_reads"`
	SkippedReads    int `json:"skipped_reads" cbor:"skipped_reads"`
	Windows         int `json:"windows" cbor:"windows"`
	OracleMisses    int `json:"oracle_misses" cbor:"oracle_misses"`
	IndexHits       int `json:"index_hits" cbor:"index_hits"`
	ContigsCreated  int `json:"contigs_created" cbor:"contigs_created"`
	DuplicateProbes int `json:"duplicate_probes" cbor:"duplicate_probes"`
}

// RunV1 describes how a contig set was produced.
type RunV1 struct {
	Version      string   `json:"version" cbor:"version"`
	K            int      `json:"k" cbor:"k"`
	Filter       string   `json:"filter,omitempty" cbor:"filter,omitempty"`
	FilterDigest string   `json:"filter_blake3,omitempty" cbor:"filter_blake3,omitempty"`
	FPRate       float64  `json:"fp_rate,omitempty" cbor:"fp_rate,omitempty"`
	Inputs       []string `json:"inputs,omitempty" cbor:"inputs,omitempty"`
	Kmers        int      `json:"kmers" cbor:"kmers"`
	Bases        int      `json:"bases" cbor:"bases"`
	Stats        StatsV1  `json:"stats" cbor:"stats"`
}

// SnapshotV1 is the single-document CBOR output.
type SnapshotV1 struct {
	Run     RunV1      `json:"run" cbor:"run"`
	Contigs []ContigV1 `json:"contigs" cbor:"contigs"`
	Links   []LinkV1   `json:"links,omitempty" cbor:"links,omitempty"`
}
