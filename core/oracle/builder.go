package oracle

import (
	"errors"
	"fmt"

	"github.com/willf/bloom"

	"bfgraph/core/kmer"
)

// Builder accumulates canonical k-mers into a Bloom filter. With
// MinCount 2 a k-mer enters the filter only on its second sighting; a
// second "seen once" filter of the same shape remembers first sightings,
// which discards most single-copy sequencing errors.
type Builder struct {
	k        int
	minCount int
	fpRate   float64
	once     *bloom.BloomFilter
	f        *bloom.BloomFilter
	count    uint
	windows  []kmer.Window
}

// NewBuilder sizes the filter for expected distinct k-mers at fpRate.
func NewBuilder(k int, expected uint, fpRate float64, minCount int) (*Builder, error) {
	if err := kmer.ValidK(k); err != nil {
		return nil, err
	}
	if expected == 0 {
		return nil, errors.New("expected k-mer count must be > 0")
	}
	if fpRate <= 0 || fpRate >= 1 {
		return nil, fmt.Errorf("false-positive rate %g out of range (0,1)", fpRate)
	}
	if minCount != 1 && minCount != 2 {
		return nil, fmt.Errorf("min count %d not supported (1 or 2)", minCount)
	}
	b := &Builder{
		k:        k,
		minCount: minCount,
		fpRate:   fpRate,
		f:        bloom.NewWithEstimates(expected, fpRate),
	}
	if minCount > 1 {
		b.once = bloom.New(b.f.Cap(), b.f.K())
	}
	return b, nil
}

// Add records one sighting of km (canonicalized here).
func (b *Builder) Add(km kmer.Kmer) {
	var buf [16]byte
	n := km.Rep().PutBytes(buf[:])
	b.add(buf[:n])
}

func (b *Builder) add(key []byte) {
	if b.once == nil {
		if !b.f.TestAndAdd(key) {
			b.count++
		}
		return
	}
	if b.f.Test(key) {
		return
	}
	if b.once.TestAndAdd(key) {
		b.f.Add(key)
		b.count++
	}
}

// AddSequence records every valid window of seq and returns how many
// windows were valid.
func (b *Builder) AddSequence(seq []byte) int {
	b.windows = kmer.AppendWindows(b.windows[:0], seq, b.k)
	var buf [16]byte
	n := 0
	for _, w := range b.windows {
		if !w.Valid {
			continue
		}
		l := w.Rep.PutBytes(buf[:])
		b.add(buf[:l])
		n++
	}
	return n
}

// Count is the number of distinct k-mers admitted so far (approximate:
// false positives during insertion are not counted).
func (b *Builder) Count() uint { return b.count }

// Filter returns the finished oracle. The builder must not be used after.
func (b *Builder) Filter() *Bloom {
	return &Bloom{k: b.k, count: b.count, fpRate: b.fpRate, f: b.f}
}
