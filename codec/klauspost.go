package codec

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

func init() {
	Default.Register(NewPlugin("klauspost",
		NewCodec("zstd", zstdEncoder(zstd.SpeedDefault), zstdDecoder, nil),
		NewCodec("zstd-fastest", zstdEncoder(zstd.SpeedFastest), zstdDecoder, nil),
		NewCodec("zstd-best", zstdEncoder(zstd.SpeedBestCompression), zstdDecoder, nil),
		NewCodec("s2",
			func(w io.Writer, opts Options) (io.WriteCloser, error) {
				lvl, err := opts.Int("level", 1)
				if err != nil {
					return nil, err
				}
				var wopts []s2.WriterOption
				switch {
				case lvl >= 3:
					wopts = append(wopts, s2.WriterBestCompression())
				case lvl == 2:
					wopts = append(wopts, s2.WriterBetterCompression())
				}
				return s2.NewWriter(w, wopts...), nil
			},
			func(r io.Reader, _ Options) (io.ReadCloser, error) {
				return io.NopCloser(s2.NewReader(r)), nil
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
	))
}

// zstdEncoder returns an encoder at speed unless the "level" option selects
// a zstd level explicitly.
func zstdEncoder(speed zstd.EncoderLevel) EncoderFunc {
	return func(w io.Writer, opts Options) (io.WriteCloser, error) {
		level := speed
		if _, ok := opts["level"]; ok {
			lvl, err := opts.Int("level", 3)
			if err != nil {
				return nil, err
			}
			level = zstd.EncoderLevelFromZstd(lvl)
		}
		return zstd.NewWriter(w, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	}
}

func zstdDecoder(r io.Reader, _ Options) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}
