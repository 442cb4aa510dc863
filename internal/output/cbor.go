package output

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

var snapshotMode cbor.EncMode

func init() {
	var err error
	snapshotMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("output: CBOR encoder initialization failed: " + err.Error())
	}
}

// WriteCBOR writes r as one deterministic CBOR api.SnapshotV1 document.
func WriteCBOR(w io.Writer, r *Result) error {
	data, err := snapshotMode.Marshal(ToAPISnapshot(r))
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = w.Write(data)
	return err
}
