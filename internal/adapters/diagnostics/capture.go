// Package diagnostics redirects the process-wide stderr into memory so a
// failing test can print what the code under test complained about.
package diagnostics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/vanshika-srivastava/coretest/internal/logging"
	"github.com/vanshika-srivastava/coretest/internal/ports"
)

// Buffer is an in-memory sink safe for concurrent writes
type Buffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write implements io.Writer
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// flushMarker is written through the pipe to find out when everything
// written before it has reached the buffer. It never lands in the buffer.
var flushMarker = []byte("\x00coretest-diagnostics-flush\x00")

const flushTimeout = 2 * time.Second

// StderrCapture swaps os.Stderr (and the standard log output) for a pipe
// whose read end drains into a Buffer. The pipe lives from the first Install
// until Restore, so writers holding the old os.Stderr never see it closed.
type StderrCapture struct {
	acks     chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	original *os.File
	out      io.Writer
	sink     *Buffer
	sinkMu   sync.Mutex
	writer   *os.File
}

// Compile-time interface verification
var _ ports.DiagnosticCapture = (*StderrCapture)(nil)

// NewStderrCapture creates a capture that dumps to out.
// The current os.Stderr is remembered for Restore.
func NewStderrCapture(out io.Writer) *StderrCapture {
	return &StderrCapture{
		original: os.Stderr,
		out:      out,
	}
}

// Install points stderr at a fresh, empty buffer.
// A buffer installed by a previous call is discarded, not appended to.
func (c *StderrCapture) Install() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writer == nil {
		if err := c.open(); err != nil {
			return err
		}
	} else if err := c.flush(); err != nil {
		logging.Logger.Warn("Failed to flush diagnostic buffer", "error", err)
	}

	c.setSink(&Buffer{})
	logging.Logger.Debug("Installed fresh diagnostic buffer")
	return nil
}

// Contents returns everything written to stderr since the last Install
func (c *StderrCapture) Contents() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	sink := c.currentSink()
	if sink == nil {
		return ""
	}
	if c.writer != nil {
		if err := c.flush(); err != nil {
			logging.Logger.Warn("Failed to flush diagnostic buffer", "error", err)
		}
	}
	return sink.String()
}

// Dump writes the captured content to the operator channel. It never panics.
func (c *StderrCapture) Dump() {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("Recovered while dumping diagnostics", "panic", r)
		}
	}()

	content := c.Contents()
	if content == "" {
		return
	}
	if _, err := io.WriteString(c.out, content); err != nil {
		logging.Logger.Warn("Failed to write diagnostics", "error", err)
	}
}

// Restore puts the original stderr back and closes the pipe once it has
// drained. The last buffer stays readable.
func (c *StderrCapture) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()

	os.Stderr = c.original
	log.SetOutput(c.original)

	if c.writer == nil {
		return
	}
	c.writer.Close()
	<-c.done
	c.writer = nil
	c.done = nil
	c.acks = nil
}

// open creates the pipe, starts draining it and points stderr at it
func (c *StderrCapture) open() error {
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	c.acks = make(chan struct{}, 1)
	c.done = make(chan struct{})
	c.writer = w
	go c.drain(r, c.acks, c.done)

	os.Stderr = w
	log.SetOutput(w)
	return nil
}

// flush returns once every byte written before the call is in the buffer
func (c *StderrCapture) flush() error {
	select {
	case <-c.acks:
	default:
	}

	if _, err := c.writer.Write(flushMarker); err != nil {
		return fmt.Errorf("failed to write flush marker: %w", err)
	}

	timer := time.NewTimer(flushTimeout)
	defer timer.Stop()
	select {
	case <-c.acks:
		return nil
	case <-timer.C:
		return errors.New("timed out waiting for stderr pipe to drain")
	}
}

// drain copies the pipe into the current sink, acknowledging flush markers
func (c *StderrCapture) drain(r *os.File, acks chan<- struct{}, done chan<- struct{}) {
	defer close(done)
	defer r.Close()

	chunk := make([]byte, 32*1024)
	var pending []byte
	for {
		n, err := r.Read(chunk)
		pending = append(pending, chunk[:n]...)
		pending = c.consume(pending, acks)
		if err != nil {
			if len(pending) > 0 {
				c.write(pending)
			}
			return
		}
	}
}

// consume writes p up to each flush marker and acknowledges it. A trailing
// prefix of the marker is held back and returned.
func (c *StderrCapture) consume(p []byte, acks chan<- struct{}) []byte {
	for {
		i := bytes.Index(p, flushMarker)
		if i < 0 {
			break
		}
		c.write(p[:i])
		p = p[i+len(flushMarker):]
		select {
		case acks <- struct{}{}:
		default:
		}
	}

	keep := partialMarker(p)
	c.write(p[:len(p)-keep])
	return append([]byte(nil), p[len(p)-keep:]...)
}

// partialMarker is the length of the longest suffix of p that starts the marker
func partialMarker(p []byte) int {
	for k := min(len(p), len(flushMarker)-1); k > 0; k-- {
		if bytes.HasPrefix(flushMarker, p[len(p)-k:]) {
			return k
		}
	}
	return 0
}

func (c *StderrCapture) write(p []byte) {
	if len(p) == 0 {
		return
	}
	if sink := c.currentSink(); sink != nil {
		_, _ = sink.Write(p)
	}
}

func (c *StderrCapture) currentSink() *Buffer {
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()
	return c.sink
}

func (c *StderrCapture) setSink(b *Buffer) {
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()
	c.sink = b
}
