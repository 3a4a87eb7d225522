package codec

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

func init() {
	Default.Register(NewPlugin("dsnet",
		NewCodec("bzip2",
			func(w io.Writer, opts Options) (io.WriteCloser, error) {
				lvl, err := opts.Int("level", bzip2.DefaultCompression)
				if err != nil {
					return nil, err
				}
				return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: lvl})
			},
			func(r io.Reader, _ Options) (io.ReadCloser, error) {
				return bzip2.NewReader(r, nil)
			}, nil),
	))
}
