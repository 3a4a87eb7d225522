package codec

import (
	"io"

	"github.com/golang/snappy"
)

func init() {
	Default.Register(NewPlugin("snappy",
		NewCodec("snappy",
			func(w io.Writer, _ Options) (io.WriteCloser, error) {
				return snappy.NewBufferedWriter(w), nil
			},
			func(r io.Reader, _ Options) (io.ReadCloser, error) {
				return io.NopCloser(snappy.NewReader(r)), nil
			}, nil),
	))
}
