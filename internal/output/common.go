package output

// Output format names accepted by --format. Keep these stable; they appear
// in config files and scripts.
const (
	FormatFASTA = "fasta"
	FormatJSONL = "jsonl"
	FormatCBOR  = "cbor"
)
