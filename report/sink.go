package report

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/codec"
	"github.com/hupe1980/kmeanspp/internal/compress"
)

// Format selects the report encoding.
type Format int

const (
	// Text is the classic line-oriented format.
	Text Format = iota
	// JSON is the structured format.
	JSON
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// ParseFormat maps "text" or "json" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unknown report format %q", s)
	}
}

// Encode renders rep in format f.
func Encode(rep *Report, f Format, c codec.Codec) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case Text:
		err = WriteText(&buf, rep)
	case JSON:
		err = WriteJSON(&buf, rep, c)
	default:
		err = fmt.Errorf("unknown report format %v", f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Sink receives encoded reports.
type Sink interface {
	Write(ctx context.Context, rep *Report) error
}

// WriterSink writes reports to an io.Writer, usually stdout.
type WriterSink struct {
	W      io.Writer
	Format Format
	Codec  codec.Codec
}

// Write implements Sink.
func (s *WriterSink) Write(_ context.Context, rep *Report) error {
	data, err := Encode(rep, s.Format, s.Codec)
	if err != nil {
		return err
	}
	_, err = s.W.Write(data)
	return err
}

// BlobSink stores reports in a blob store under Name.
// A ".gz", ".zst" or ".lz4" suffix on Name compresses the report.
type BlobSink struct {
	Store  blobstore.BlobStore
	Name   string
	Format Format
	Codec  codec.Codec
}

// Bytes returns the stored representation of rep.
func (s *BlobSink) Bytes(rep *Report) ([]byte, error) {
	data, err := Encode(rep, s.Format, s.Codec)
	if err != nil {
		return nil, err
	}
	return compress.Encode(data, compress.ForName(s.Name))
}

// Write implements Sink.
func (s *BlobSink) Write(ctx context.Context, rep *Report) error {
	data, err := s.Bytes(rep)
	if err != nil {
		return err
	}
	if err := s.Store.Put(ctx, s.Name, data); err != nil {
		return fmt.Errorf("store report %s: %w", s.Name, err)
	}
	return nil
}
