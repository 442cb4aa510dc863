// core/reads/stream.go
package reads

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

// Record is one read. Seq is upper-cased; Qual holds Phred+33 scores for
// FASTQ input and is nil for FASTA.
type Record struct {
	ID   string
	Seq  []byte
	Qual []byte
}

// Format is the record syntax of a read source.
type Format uint8

const (
	FASTA Format = iota
	FASTQ
)

func (f Format) String() string {
	if f == FASTQ {
		return "fastq"
	}
	return "fasta"
}

var ErrUnknownFormat = errors.New("input is neither FASTA nor FASTQ")

// sniff peeks past leading whitespace to the first record marker. An empty
// source is reported as FASTA with no records.
func sniff(br *bufio.Reader) (Format, error) {
	for n := 1; ; n++ {
		b, err := br.Peek(n)
		if len(b) < n {
			if err == io.EOF {
				return FASTA, nil
			}
			return 0, err
		}
		switch c := b[n-1]; c {
		case ' ', '\t', '\r', '\n':
			continue
		case '>':
			return FASTA, nil
		case '@':
			return FASTQ, nil
		default:
			return 0, fmt.Errorf("%w: starts with %q", ErrUnknownFormat, c)
		}
	}
}

// Stream opens path (see Open) and calls fn for every record in order.
// Returning an error from fn stops the stream and returns that error.
func Stream(ctx context.Context, path string, fn func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := StreamReader(ctx, rc, fn); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// StreamReader parses FASTA or FASTQ from r, detected from the first
// record marker. It is cancelable between records.
func StreamReader(ctx context.Context, r io.Reader, fn func(Record) error) error {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 1<<16)
	}
	format, err := sniff(br)
	if err != nil {
		return err
	}

	var sr seqio.Reader
	switch format {
	case FASTQ:
		sr = fastq.NewReader(br, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger))
	default:
		sr = fasta.NewReader(br, linear.NewSeq("", nil, alphabet.DNA))
	}

	sc := seqio.NewScanner(sr)
	for sc.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		rec, err := toRecord(sc.Seq())
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := sc.Error(); err != nil {
		return fmt.Errorf("parsing %s: %w", format, err)
	}
	return nil
}

func toRecord(s seq.Sequence) (Record, error) {
	switch s := s.(type) {
	case *linear.Seq:
		out := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			out[i] = upper(byte(l))
		}
		return Record{ID: s.ID, Seq: out}, nil
	case *linear.QSeq:
		out := make([]byte, len(s.Seq))
		qual := make([]byte, len(s.Seq))
		for i, ql := range s.Seq {
			out[i] = upper(byte(ql.L))
			qual[i] = byte(ql.Q) + 33
		}
		return Record{ID: s.ID, Seq: out, Qual: qual}, nil
	}
	return Record{}, fmt.Errorf("unexpected sequence type %T", s)
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
