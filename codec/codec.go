// Package codec is the registry of compression plugins benchmarked by
// shukusho.
//
// A Plugin groups one or more Codecs that share an implementation. Plugins
// register themselves with the Default registry from init functions, so the
// set of codecs depends on which files are compiled in. A Codec may be
// registered and still be unusable in the current environment (an external
// binary that is not installed, for instance); Init reports that.
package codec

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrNotFound is returned by Lookup when no codec matches a name.
var ErrNotFound = errors.New("codec not found")

// Options holds codec specific settings such as "level".
type Options map[string]string

// Int returns the integer value of key, or def if the key is unset.
func (o Options) Int(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return n, nil
}

// EncoderFunc wraps dst in a compressing writer.
type EncoderFunc func(dst io.Writer, opts Options) (io.WriteCloser, error)

// DecoderFunc wraps src in a decompressing reader.
type DecoderFunc func(src io.Reader, opts Options) (io.ReadCloser, error)

// Codec is a single compression configuration exposed by a Plugin.
type Codec struct {
	name   string
	plugin *Plugin

	encode EncoderFunc
	decode DecoderFunc
	check  func() error

	initOnce sync.Once
	initErr  error
}

// NewCodec creates a codec. check may be nil for codecs that are always
// available.
func NewCodec(name string, encode EncoderFunc, decode DecoderFunc, check func() error) *Codec {
	return &Codec{name: name, encode: encode, decode: decode, check: check}
}

func (c *Codec) Name() string { return c.name }

func (c *Codec) Plugin() *Plugin { return c.plugin }

// String returns the qualified "plugin:codec" name.
func (c *Codec) String() string {
	if c.plugin == nil {
		return c.name
	}
	return c.plugin.Name + ":" + c.name
}

// Init reports whether the codec can be used. The check runs once and its
// result is remembered.
func (c *Codec) Init() error {
	c.initOnce.Do(func() {
		if c.encode == nil || c.decode == nil {
			c.initErr = fmt.Errorf("%s: incomplete codec", c)
			return
		}
		if c.check != nil {
			c.initErr = c.check()
		}
	})
	return c.initErr
}

// Compress reads src to EOF and writes its compressed form to dst.
func (c *Codec) Compress(dst io.Writer, src io.Reader, opts Options) error {
	if err := c.Init(); err != nil {
		return err
	}
	w, err := c.encode(dst, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return fmt.Errorf("%s: compress: %w", c, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: compress: %w", c, err)
	}
	return nil
}

// Decompress reads compressed data from src to EOF and writes the original
// bytes to dst.
func (c *Codec) Decompress(dst io.Writer, src io.Reader, opts Options) error {
	if err := c.Init(); err != nil {
		return err
	}
	r, err := c.decode(src, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		r.Close()
		return fmt.Errorf("%s: decompress: %w", c, err)
	}
	return r.Close()
}

// Plugin is a named group of codecs.
type Plugin struct {
	Name   string
	codecs []*Codec
}

// NewPlugin creates a plugin owning codecs.
func NewPlugin(name string, codecs ...*Codec) *Plugin {
	p := &Plugin{Name: name}
	for _, c := range codecs {
		c.plugin = p
		p.codecs = append(p.codecs, c)
	}
	return p
}

// Codecs returns the plugin's codecs in registration order.
func (p *Plugin) Codecs() []*Codec {
	return p.codecs
}

// Registry enumerates plugins and their codecs.
type Registry struct {
	mu      sync.RWMutex
	plugins []*Plugin
}

// Default is the registry filled by the plugins compiled into the binary.
var Default = new(Registry)

// Register adds p to the registry. Registering a second plugin with the same
// name panics.
func (r *Registry) Register(p *Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.plugins {
		if q.Name == p.Name {
			panic("codec: plugin registered twice: " + p.Name)
		}
	}
	r.plugins = append(r.plugins, p)
}

// Plugins returns the registered plugins. The order is the order in which
// plugins registered themselves and callers must not rely on it.
func (r *Registry) Plugins() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Plugin(nil), r.plugins...)
}

// Codecs returns every codec of every plugin, plugin by plugin.
func (r *Registry) Codecs() []*Codec {
	var all []*Codec
	for _, p := range r.Plugins() {
		all = append(all, p.Codecs()...)
	}
	return all
}

// Lookup finds a codec by "codec" or "plugin:codec". An unqualified name
// resolves to the first plugin exposing it.
func (r *Registry) Lookup(name string) (*Codec, error) {
	pluginName, codecName, qualified := strings.Cut(name, ":")
	if !qualified {
		pluginName, codecName = "", name
	}
	for _, p := range r.Plugins() {
		if qualified && p.Name != pluginName {
			continue
		}
		for _, c := range p.Codecs() {
			if c.name == codecName {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
