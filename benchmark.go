package main

import (
	"io"
	"os"

	"github.com/violenttestpen/shukusho/codec"
)

// benchmarkCodec times one compression and one decompression of the current
// input with c and writes a single result. Codecs that fail Init are skipped
// without output.
func (s *session) benchmarkCodec(c *codec.Codec) error {
	if err := c.Init(); err != nil {
		return nil
	}
	s.progress.codec(c)

	if _, err := s.input.Seek(0, io.SeekStart); err != nil {
		return environmentError(err, "unable to seek to beginning of input file")
	}

	compressed, err := s.scratch()
	if err != nil {
		return err
	}
	defer release(compressed)
	decompressed, err := s.scratch()
	if err != nil {
		return err
	}
	defer release(decompressed)

	result := &benchmarkResult{
		dataset:          s.inputName,
		plugin:           c.Plugin().Name,
		codec:            c.Name(),
		uncompressedSize: s.inputSize,
	}

	s.progress.phase("compressing")
	t := newTimer(s.clock)
	if err := t.Start(); err != nil {
		return err
	}
	if err := c.Compress(compressed, s.input, nil); err != nil {
		return environmentError(err, "compression failed")
	}
	if err := t.Stop(); err != nil {
		return err
	}
	result.compressCPU, result.compressWall = t.ElapsedCPU(), t.ElapsedWall()
	s.progress.done(result.compressWall)

	if result.compressedSize, err = compressed.Seek(0, io.SeekCurrent); err != nil {
		return environmentError(err, "unable to read compressed size")
	}
	if _, err := compressed.Seek(0, io.SeekStart); err != nil {
		return environmentError(err, "unable to seek to beginning of compressed file")
	}

	s.progress.phase("decompressing")
	t = newTimer(s.clock)
	if err := t.Start(); err != nil {
		return err
	}
	if err := c.Decompress(decompressed, compressed, nil); err != nil {
		return environmentError(err, "decompression failed")
	}
	if err := t.Stop(); err != nil {
		return err
	}
	result.decompressCPU, result.decompressWall = t.ElapsedCPU(), t.ElapsedWall()
	s.progress.done(result.decompressWall)

	if err := s.out.WriteResult(result); err != nil {
		return environmentError(err, "unable to write result")
	}
	return nil
}

func (s *session) scratch() (*os.File, error) {
	f, err := os.CreateTemp(s.tempDir, "shukusho-*")
	if err != nil {
		return nil, environmentError(err, "unable to create temporary file")
	}
	return f, nil
}

func release(f *os.File) {
	f.Close()
	os.Remove(f.Name())
}
