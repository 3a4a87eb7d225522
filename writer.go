package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type outputFormat int

const (
	formatJSON outputFormat = iota
	formatCSV
)

func parseFormat(s string) (outputFormat, error) {
	switch {
	case strings.EqualFold(s, "json"):
		return formatJSON, nil
	case strings.EqualFold(s, "csv"):
		return formatCSV, nil
	}
	return 0, usageError("invalid output format %q", s)
}

// benchmarkResult is one (dataset, codec) measurement. Times are seconds.
type benchmarkResult struct {
	dataset          string
	plugin           string
	codec            string
	uncompressedSize int64
	compressedSize   int64
	compressCPU      float64
	compressWall     float64
	decompressCPU    float64
	decompressWall   float64
}

// resultWriter receives the events of a run in order: one OpenDocument,
// then per dataset an OpenDataset, any number of WriteResult and a
// CloseDataset, and finally one CloseDocument. Output is written as events
// arrive.
type resultWriter interface {
	OpenDocument() error
	OpenDataset(name string, size int64) error
	WriteResult(r *benchmarkResult) error
	CloseDataset() error
	CloseDocument() error
}

func newResultWriter(f outputFormat, w io.Writer) resultWriter {
	if f == formatCSV {
		return newFlatWriter(w)
	}
	return newStructuredWriter(w)
}

// formatFloat renders seconds with six significant digits.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// nestLevel is the separator state of one open object or array.
type nestLevel struct {
	first bool
	lead  string // written before the first element
	sep   string // written before every other element
}

// jsonStream writes nested JSON incrementally. It never looks back at what
// it wrote, so every separator is decided before the element it precedes.
type jsonStream struct {
	w      io.Writer
	levels []nestLevel
	err    error
}

func (s *jsonStream) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (s *jsonStream) begin(open, lead, sep string) {
	s.write(open)
	s.levels = append(s.levels, nestLevel{first: true, lead: lead, sep: sep})
}

func (s *jsonStream) BeginObject(lead, sep string) { s.begin("{", lead, sep) }

func (s *jsonStream) BeginArray(lead, sep string) { s.begin("[", lead, sep) }

func (s *jsonStream) end(close string) {
	if len(s.levels) == 0 {
		if s.err == nil {
			s.err = fmt.Errorf("unbalanced %q", strings.TrimSpace(close))
		}
		return
	}
	s.levels = s.levels[:len(s.levels)-1]
	s.write(close)
}

func (s *jsonStream) EndObject(indent string) { s.end(indent + "}") }

func (s *jsonStream) EndArray(indent string) { s.end(indent + "]") }

// Element writes the separator due before the next element of the
// innermost level.
func (s *jsonStream) Element() {
	if len(s.levels) == 0 {
		return
	}
	l := &s.levels[len(s.levels)-1]
	if l.first {
		l.first = false
		s.write(l.lead)
	} else {
		s.write(l.sep)
	}
}

// Key starts a member of the innermost object.
func (s *jsonStream) Key(k string) {
	s.Element()
	s.write(quote(k))
	s.write(": ")
}

func (s *jsonStream) Field(k, raw string) {
	s.Key(k)
	s.write(raw)
}

func (s *jsonStream) Err() error { return s.err }

func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(b)
}

// structuredWriter emits a single JSON object keyed by dataset name.
type structuredWriter struct {
	s *jsonStream
}

func newStructuredWriter(w io.Writer) *structuredWriter {
	return &structuredWriter{s: &jsonStream{w: w}}
}

func (w *structuredWriter) OpenDocument() error {
	w.s.BeginObject("\n", ",\n")
	return w.s.Err()
}

func (w *structuredWriter) OpenDataset(name string, size int64) error {
	w.s.Element()
	w.s.write("  " + quote(name) + ": ")
	w.s.BeginObject("\n    ", ",\n    ")
	w.s.Field("uncompressed-size", strconv.FormatInt(size, 10))
	w.s.Key("data")
	w.s.BeginArray("", ", ")
	w.s.write("\n      ")
	return w.s.Err()
}

func (w *structuredWriter) WriteResult(r *benchmarkResult) error {
	w.s.Element()
	w.s.BeginObject("\n        ", ",\n        ")
	w.s.Field("plugin", quote(r.plugin))
	w.s.Field("codec", quote(r.codec))
	w.s.Field("size", strconv.FormatInt(r.compressedSize, 10))
	w.s.Field("compress_cpu", formatFloat(r.compressCPU))
	w.s.Field("compress_wall", formatFloat(r.compressWall))
	w.s.Field("decompress_cpu", formatFloat(r.decompressCPU))
	w.s.Field("decompress_wall", formatFloat(r.decompressWall))
	w.s.EndObject("\n      ")
	return w.s.Err()
}

func (w *structuredWriter) CloseDataset() error {
	w.s.EndArray("\n    ")
	w.s.EndObject("\n  ")
	return w.s.Err()
}

func (w *structuredWriter) CloseDocument() error {
	w.s.EndObject("\n")
	w.s.write(";\n")
	return w.s.Err()
}

var csvHeader = []string{
	"Dataset",
	"Plugin",
	"Codec",
	"Uncompressed Size",
	"Compressed Size",
	"Compression CPU Time",
	"Compression Wall Clock Time",
	"Decompression CPU Time",
	"Decompression Wall Clock Time",
}

// flatWriter emits a header and one CSV row per result. Dataset boundaries
// produce no output.
type flatWriter struct {
	w *csv.Writer
}

func newFlatWriter(w io.Writer) *flatWriter {
	return &flatWriter{w: csv.NewWriter(w)}
}

func (w *flatWriter) OpenDocument() error {
	return w.writeRow(csvHeader)
}

func (w *flatWriter) OpenDataset(string, int64) error { return nil }

func (w *flatWriter) WriteResult(r *benchmarkResult) error {
	return w.writeRow([]string{
		r.dataset,
		r.plugin,
		r.codec,
		strconv.FormatInt(r.uncompressedSize, 10),
		strconv.FormatInt(r.compressedSize, 10),
		formatFloat(r.compressCPU),
		formatFloat(r.compressWall),
		formatFloat(r.decompressCPU),
		formatFloat(r.decompressWall),
	})
}

func (w *flatWriter) CloseDataset() error { return nil }

func (w *flatWriter) CloseDocument() error {
	w.w.Flush()
	return w.w.Error()
}

func (w *flatWriter) writeRow(row []string) error {
	if err := w.w.Write(row); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}
