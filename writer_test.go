package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    outputFormat
		wantErr bool
	}{
		{"json", formatJSON, false},
		{"JSON", formatJSON, false},
		{"csv", formatCSV, false},
		{"CsV", formatCSV, false},
		{"xml", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, exitUsage, exitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		0:            "0",
		1:            "1",
		0.5:          "0.5",
		0.001:        "0.001",
		1.5e-05:      "1.5e-05",
		0.0001234567: "0.000123457",
		123456789:    "1.23457e+08",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatFloat(in), "formatFloat(%v)", in)
	}
}

func sampleResult(plugin, codec string) *benchmarkResult {
	return &benchmarkResult{
		dataset:          "a.txt",
		plugin:           plugin,
		codec:            codec,
		uncompressedSize: 100,
		compressedSize:   40,
		compressCPU:      0.5,
		compressWall:     1,
		decompressCPU:    0.25,
		decompressWall:   0.125,
	}
}

func TestStructuredWriter(t *testing.T) {
	var buf bytes.Buffer
	w := newStructuredWriter(&buf)
	require.NoError(t, w.OpenDocument())
	require.NoError(t, w.OpenDataset("a.txt", 100))
	require.NoError(t, w.WriteResult(sampleResult("pA", "cX")))
	require.NoError(t, w.WriteResult(sampleResult("pA", "cY")))
	require.NoError(t, w.CloseDataset())
	require.NoError(t, w.CloseDocument())

	want := `{
  "a.txt": {
    "uncompressed-size": 100,
    "data": [
      {
        "plugin": "pA",
        "codec": "cX",
        "size": 40,
        "compress_cpu": 0.5,
        "compress_wall": 1,
        "decompress_cpu": 0.25,
        "decompress_wall": 0.125
      }, {
        "plugin": "pA",
        "codec": "cY",
        "size": 40,
        "compress_cpu": 0.5,
        "compress_wall": 1,
        "decompress_cpu": 0.25,
        "decompress_wall": 0.125
      }
    ]
  }
};
`
	assert.Equal(t, want, buf.String())
}

func TestStructuredWriterEmptyDatasets(t *testing.T) {
	var buf bytes.Buffer
	w := newStructuredWriter(&buf)
	require.NoError(t, w.OpenDocument())
	for _, name := range []string{"a.txt", "b.txt"} {
		require.NoError(t, w.OpenDataset(name, 7))
		require.NoError(t, w.CloseDataset())
	}
	require.NoError(t, w.CloseDocument())

	want := "{\n" +
		"  \"a.txt\": {\n    \"uncompressed-size\": 7,\n    \"data\": [\n      \n    ]\n  },\n" +
		"  \"b.txt\": {\n    \"uncompressed-size\": 7,\n    \"data\": [\n      \n    ]\n  }\n" +
		"};\n"
	assert.Equal(t, want, buf.String())
}

func TestStructuredWriterNoDatasets(t *testing.T) {
	var buf bytes.Buffer
	w := newStructuredWriter(&buf)
	require.NoError(t, w.OpenDocument())
	require.NoError(t, w.CloseDocument())
	assert.Equal(t, "{\n};\n", buf.String())
}

func TestStructuredWriterIsJSON(t *testing.T) {
	var buf bytes.Buffer
	w := newStructuredWriter(&buf)
	require.NoError(t, w.OpenDocument())
	for _, name := range []string{`we"ird.txt`, "b.txt", "c.txt"} {
		require.NoError(t, w.OpenDataset(name, 100))
		for _, c := range []string{"one", "two", "three"} {
			require.NoError(t, w.WriteResult(sampleResult("p", c)))
		}
		require.NoError(t, w.CloseDataset())
	}
	require.NoError(t, w.CloseDocument())

	var doc map[string]struct {
		Size int64 `json:"uncompressed-size"`
		Data []struct {
			Plugin string  `json:"plugin"`
			Codec  string  `json:"codec"`
			Size   int64   `json:"size"`
			CPU    float64 `json:"compress_cpu"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSuffix(buf.String(), ";\n")), &doc))
	require.Len(t, doc, 3)
	ds := doc[`we"ird.txt`]
	assert.EqualValues(t, 100, ds.Size)
	require.Len(t, ds.Data, 3)
	assert.Equal(t, "two", ds.Data[1].Codec)
	assert.EqualValues(t, 40, ds.Data[2].Size)
}

func TestJSONStreamNesting(t *testing.T) {
	var buf bytes.Buffer
	s := &jsonStream{w: &buf}
	s.BeginArray("", ",")
	for i := 0; i < 2; i++ {
		s.Element()
		s.BeginObject("", ",")
		s.Field("a", "1")
		s.Key("b")
		s.BeginArray("", ",")
		s.EndArray("")
		s.EndObject("")
	}
	s.EndArray("")
	require.NoError(t, s.Err())
	assert.Equal(t, `[{"a": 1,"b": []},{"a": 1,"b": []}]`, buf.String())

	s.EndObject("")
	assert.Error(t, s.Err())
}

func TestFlatWriter(t *testing.T) {
	var buf bytes.Buffer
	w := newFlatWriter(&buf)
	require.NoError(t, w.OpenDocument())
	require.NoError(t, w.OpenDataset("a.txt", 100))
	require.NoError(t, w.WriteResult(sampleResult("pA", "cX")))
	require.NoError(t, w.CloseDataset())
	require.NoError(t, w.CloseDocument())

	want := "Dataset,Plugin,Codec,Uncompressed Size,Compressed Size,Compression CPU Time,Compression Wall Clock Time,Decompression CPU Time,Decompression Wall Clock Time\n" +
		"a.txt,pA,cX,100,40,0.5,1,0.25,0.125\n"
	assert.Equal(t, want, buf.String())
}

func TestFlatWriterStreamsRows(t *testing.T) {
	var buf bytes.Buffer
	w := newFlatWriter(&buf)
	require.NoError(t, w.OpenDocument())
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	require.NoError(t, w.WriteResult(sampleResult("pA", "cX")))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestNewResultWriter(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, &structuredWriter{}, newResultWriter(formatJSON, &buf))
	assert.IsType(t, &flatWriter{}, newResultWriter(formatCSV, &buf))
}
