package main

import "io"

// session carries the state of one run. The driver owns it and changes the
// input fields only between datasets; the runner only reads them.
type session struct {
	out      resultWriter
	clock    clock
	progress *reporter
	tempDir  string // "" means os.TempDir

	input     io.ReadSeeker
	inputName string
	inputSize int64
}

func newSession(out resultWriter, c clock, progress *reporter) *session {
	return &session{out: out, clock: c, progress: progress}
}

// useInput switches the session to a new dataset and measures its size.
func (s *session) useInput(name string, r io.ReadSeeker) error {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return environmentError(err, "unable to seek to end of input file")
	}
	s.input = r
	s.inputName = name
	s.inputSize = size
	return nil
}
