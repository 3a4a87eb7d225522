package codec

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"
)

// childCPU is the user plus system time of every command this package has
// waited for, in nanoseconds.
var childCPU atomic.Int64

// ChildCPUTime returns the CPU time consumed by external compressors that
// have exited so far. Platforms without a children CPU clock add it to the
// process CPU time.
func ChildCPUTime() time.Duration {
	return time.Duration(childCPU.Load())
}

// wait reaps cmd and charges its CPU time.
func wait(cmd *exec.Cmd) error {
	err := cmd.Wait()
	if ps := cmd.ProcessState; ps != nil {
		childCPU.Add(int64(ps.UserTime() + ps.SystemTime()))
	}
	return err
}

// External compressors driven through their command line interface. They
// are only available when the binary is on PATH.
var commands = []struct {
	name       string
	compress   string
	decompress string
}{
	{"xz", "xz -c -q", "xz -d -c -q"},
	{"lz4", "lz4 -c -q", "lz4 -d -c -q"},
	{"brotli", "brotli -c", "brotli -d -c"},
	{"zstd-cli", "zstd -c -q", "zstd -d -c -q"},
}

func init() {
	var codecs []*Codec
	for _, c := range commands {
		codecs = append(codecs, NewCommandCodec(c.name, c.compress, c.decompress))
	}
	Default.Register(NewPlugin("exec", codecs...))
}

// NewCommandCodec creates a codec that pipes data through external programs.
// The command lines are split on white space with quoting; the codec is
// unavailable unless both programs are on PATH.
func NewCommandCodec(name, compress, decompress string) *Codec {
	compressArgs := list2Cmdline(compress)
	decompressArgs := list2Cmdline(decompress)
	return NewCodec(name,
		func(w io.Writer, opts Options) (io.WriteCloser, error) {
			cmd := exec.Command(compressArgs[0], withLevel(compressArgs[1:], opts)...)
			cmd.Stdout = w
			stdin, err := cmd.StdinPipe()
			if err != nil {
				return nil, err
			}
			if err := cmd.Start(); err != nil {
				return nil, err
			}
			return &commandWriter{WriteCloser: stdin, cmd: cmd}, nil
		},
		func(r io.Reader, _ Options) (io.ReadCloser, error) {
			cmd := exec.Command(decompressArgs[0], decompressArgs[1:]...)
			cmd.Stdin = r
			stdout, err := cmd.StdoutPipe()
			if err != nil {
				return nil, err
			}
			if err := cmd.Start(); err != nil {
				return nil, err
			}
			return &commandReader{ReadCloser: stdout, cmd: cmd}, nil
		},
		func() error {
			for _, bin := range []string{compressArgs[0], decompressArgs[0]} {
				if _, err := exec.LookPath(bin); err != nil {
					return err
				}
			}
			return nil
		})
}

func withLevel(args []string, opts Options) []string {
	if lvl, ok := opts["level"]; ok {
		return append(append([]string(nil), args...), "-"+lvl)
	}
	return args
}

type commandWriter struct {
	io.WriteCloser
	cmd *exec.Cmd
}

func (w *commandWriter) Close() error {
	err := w.WriteCloser.Close()
	if werr := wait(w.cmd); werr != nil {
		return fmt.Errorf("%s: %w", w.cmd.Path, werr)
	}
	return err
}

type commandReader struct {
	io.ReadCloser
	cmd    *exec.Cmd
	closed bool
}

func (r *commandReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	// Drain so the child is not blocked on a full pipe when Wait is called.
	_, _ = io.Copy(io.Discard, r.ReadCloser)
	if err := wait(r.cmd); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s: %s", r.cmd.Path, strings.TrimSpace(exitErr.String()))
		}
		return err
	}
	return nil
}

// list2Cmdline splits a command string into arguments:
// 1) Arguments are delimited by white space, which is either a space or a tab.
// 2) A string surrounded by double or single quotation marks is interpreted as
// a single argument, regardless of white space contained within.
// 3) A quotation mark preceded by a backslash is interpreted literally.
func list2Cmdline(cmd string) []string {
	var cmdParts []string
	var inQuote rune

	var b strings.Builder
	for i, ch := range cmd {
		if (ch == '"' || ch == '\'') && (i == 0 || cmd[i-1] != '\\') {
			switch inQuote {
			case rune(0):
				inQuote = ch
			case ch:
				inQuote = rune(0)
			default:
				b.WriteRune(ch)
			}
		} else if (ch == ' ' || ch == '\t') && inQuote == 0 {
			if b.Len() > 0 {
				cmdParts = append(cmdParts, b.String())
			}
			b.Reset()
		} else if ch == '\\' && i+1 < len(cmd) && (cmd[i+1] == '"' || cmd[i+1] == '\'') {
			continue
		} else {
			b.WriteRune(ch)
		}
	}
	if b.Len() > 0 {
		cmdParts = append(cmdParts, b.String())
	}
	return cmdParts
}
