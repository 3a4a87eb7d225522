package codec

import (
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"compress/zlib"
	"io"
)

func init() {
	Default.Register(NewPlugin("std",
		NewCodec("deflate",
			func(w io.Writer, opts Options) (io.WriteCloser, error) {
				lvl, err := opts.Int("level", flate.DefaultCompression)
				if err != nil {
					return nil, err
				}
				return flate.NewWriter(w, lvl)
			},
			func(r io.Reader, _ Options) (io.ReadCloser, error) {
				return flate.NewReader(r), nil
			}, nil),
		NewCodec("gzip",
			func(w io.Writer, opts Options) (io.WriteCloser, error) {
				lvl, err := opts.Int("level", gzip.DefaultCompression)
				if err != nil {
					return nil, err
				}
				return gzip.NewWriterLevel(w, lvl)
			},
			func(r io.Reader, _ Options) (io.ReadCloser, error) {
				return gzip.NewReader(r)
			}, nil),
		NewCodec("zlib",
			func(w io.Writer, opts Options) (io.WriteCloser, error) {
				lvl, err := opts.Int("level", zlib.DefaultCompression)
				if err != nil {
					return nil, err
				}
				return zlib.NewWriterLevel(w, lvl)
			},
			func(r io.Reader, _ Options) (io.ReadCloser, error) {
				return zlib.NewReader(r)
			}, nil),
		NewCodec("lzw",
			func(w io.Writer, _ Options) (io.WriteCloser, error) {
				return lzw.NewWriter(w, lzw.MSB, 8), nil
			},
			func(r io.Reader, _ Options) (io.ReadCloser, error) {
				return lzw.NewReader(r, lzw.MSB, 8), nil
			}, nil),
	))
}
