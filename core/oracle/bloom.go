package oracle

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/willf/bloom"
	"github.com/zeebo/blake3"

	"bfgraph/core/kmer"
)

// FormatVersion is written into every filter header.
const FormatVersion = 1

// Filter files start with this magic, then a big-endian uint32 header
// length, the CBOR header, and the bloom.BloomFilter payload.
var magic = [4]byte{'B', 'F', 'G', 'F'}

const maxHeaderLen = 1 << 20

var (
	ErrBadFilter  = errors.New("bad filter file")
	ErrKMismatch  = errors.New("filter k-mer size mismatch")
	errNoKmerSize = errors.New("k-mer size missing from header")
)

type header struct {
	Version int     `cbor:"version"`
	K       int     `cbor:"k"`
	Bits    uint64  `cbor:"m"`
	Hashes  uint64  `cbor:"hashes"`
	Count   uint64  `cbor:"n"`
	FPRate  float64 `cbor:"fp_rate"`
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("oracle: CBOR encoder initialization failed: " + err.Error())
	}
}

// Bloom is an Oracle backed by a Bloom filter over canonical k-mers.
type Bloom struct {
	k      int
	count  uint
	fpRate float64
	f      *bloom.BloomFilter
}

func (b *Bloom) Contains(km kmer.Kmer) bool {
	var buf [16]byte
	n := km.PutBytes(buf[:])
	return b.f.Test(buf[:n])
}

// K is the k-mer size the filter was built for.
func (b *Bloom) K() int { return b.k }

// Bits is the filter size m.
func (b *Bloom) Bits() uint { return b.f.Cap() }

// Hashes is the number of hash functions.
func (b *Bloom) Hashes() uint { return b.f.K() }

// Count is the number of distinct k-mers inserted at build time.
func (b *Bloom) Count() uint { return b.count }

// TargetFalsePositiveRate is the rate requested when the filter was built.
func (b *Bloom) TargetFalsePositiveRate() float64 { return b.fpRate }

// FalsePositiveRate is the analytic rate for the filter's actual load.
func (b *Bloom) FalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(b.Bits(), b.Hashes(), b.count)
}

// CheckK returns ErrKMismatch unless the filter was built for k.
func (b *Bloom) CheckK(k int) error {
	if b.k != k {
		return fmt.Errorf("%w: filter has k=%d, run uses k=%d", ErrKMismatch, b.k, k)
	}
	return nil
}

// WriteTo serializes the filter in the bfgraph filter format.
func (b *Bloom) WriteTo(w io.Writer) (int64, error) {
	hdr, err := encMode.Marshal(header{
		Version: FormatVersion,
		K:       b.k,
		Bits:    uint64(b.Bits()),
		Hashes:  uint64(b.Hashes()),
		Count:   uint64(b.count),
		FPRate:  b.fpRate,
	})
	if err != nil {
		return 0, fmt.Errorf("encoding filter header: %w", err)
	}
	var pre [8]byte
	copy(pre[:4], magic[:])
	binary.BigEndian.PutUint32(pre[4:], uint32(len(hdr)))
	var total int64
	n, err := w.Write(pre[:])
	total += int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(hdr)
	total += int64(n)
	if err != nil {
		return total, err
	}
	m, err := b.f.WriteTo(w)
	return total + m, err
}

// Load reads a filter written by WriteTo. Any parse failure is reported
// as ErrBadFilter and no partially read filter is returned.
func Load(r io.Reader) (*Bloom, error) {
	var pre [8]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return nil, fmt.Errorf("%w: reading preamble: %v", ErrBadFilter, err)
	}
	if [4]byte(pre[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadFilter, pre[:4])
	}
	n := binary.BigEndian.Uint32(pre[4:])
	if n == 0 || n > maxHeaderLen {
		return nil, fmt.Errorf("%w: header length %d", ErrBadFilter, n)
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrBadFilter, err)
	}
	var h header
	if err := cbor.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("%w: decoding header: %v", ErrBadFilter, err)
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadFilter, h.Version)
	}
	if h.K == 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadFilter, errNoKmerSize)
	}
	if err := kmer.ValidK(h.K); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFilter, err)
	}

	f := new(bloom.BloomFilter)
	if _, err := f.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: reading bit array: %v", ErrBadFilter, err)
	}
	if uint64(f.Cap()) != h.Bits || uint64(f.K()) != h.Hashes {
		return nil, fmt.Errorf("%w: header says m=%d hashes=%d, payload has m=%d hashes=%d",
			ErrBadFilter, h.Bits, h.Hashes, f.Cap(), f.K())
	}
	return &Bloom{k: h.K, count: uint(h.Count), fpRate: h.FPRate, f: f}, nil
}

// Digest is the BLAKE3 hash of a filter file.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// LoadFile opens and loads the filter at path and returns the digest of
// the file's bytes alongside it.
func LoadFile(path string) (*Bloom, Digest, error) {
	var d Digest
	fh, err := os.Open(path)
	if err != nil {
		return nil, d, fmt.Errorf("opening filter: %w", err)
	}
	defer fh.Close()

	hasher := blake3.New()
	tee := io.TeeReader(bufio.NewReaderSize(fh, 1<<20), hasher)
	b, err := Load(tee)
	if err != nil {
		return nil, d, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := io.Copy(io.Discard, tee); err != nil {
		return nil, d, fmt.Errorf("hashing filter %s: %w", path, err)
	}
	copy(d[:], hasher.Sum(nil))
	return b, d, nil
}

// WriteFile writes b to path.
func WriteFile(path string, b *Bloom) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating filter: %w", err)
	}
	bw := bufio.NewWriterSize(fh, 1<<20)
	if _, err := b.WriteTo(bw); err != nil {
		fh.Close()
		return fmt.Errorf("writing filter %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		fh.Close()
		return fmt.Errorf("writing filter %s: %w", path, err)
	}
	return fh.Close()
}

// EstimateFalsePositiveRate is (1 - e^(-hn/m))^h.
func EstimateFalsePositiveRate(m, hashes, n uint) float64 {
	if m == 0 {
		return 1
	}
	if n == 0 {
		return 0
	}
	return math.Pow(1-math.Exp(-float64(hashes)*float64(n)/float64(m)), float64(hashes))
}
