// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
)

// inputRelay hands one input stream to successive children. A single
// goroutine owns every read from the source; a child receives chunks only
// while it is being forwarded to, so input that arrives after one child
// exits is kept for the next.
type inputRelay struct {
	src    io.Reader
	chunks chan []byte
	done   chan struct{}
	once   sync.Once

	// cancel and release are set when src is a cancelable terminal or pipe.
	cancel  func() bool
	release func() error

	mu      sync.Mutex
	pending [][]byte
}

func newInputRelay(src io.Reader) *inputRelay {
	r := &inputRelay{
		src:    src,
		chunks: make(chan []byte),
		done:   make(chan struct{}),
	}
	// Regular files cannot be polled; cancelreader refuses them and the
	// relay reads them directly until EOF.
	if f, ok := src.(*os.File); ok {
		if cr, err := cancelreader.NewReader(f); err == nil {
			r.src = cr
			r.cancel = cr.Cancel
			r.release = cr.Close
		}
	}
	go r.pump()
	return r
}

func (r *inputRelay) pump() {
	defer close(r.chunks)
	if r.release != nil {
		defer func() { _ = r.release() }()
	}

	buf := make([]byte, 32*1024)
	for {
		n, err := r.src.Read(buf)
		if n > 0 {
			select {
			case r.chunks <- bytes.Clone(buf[:n]):
			case <-r.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// forward writes relayed input to w until stop is closed, the source ends,
// or w fails. A chunk that could not be delivered goes back to the front of
// the queue.
func (r *inputRelay) forward(w io.Writer, stop <-chan struct{}) {
	for {
		chunk, ok := r.takePending()
		if !ok {
			select {
			case chunk, ok = <-r.chunks:
				if !ok {
					return
				}
			case <-stop:
				return
			}
		}

		select {
		case <-stop:
			r.requeue(chunk)
			return
		default:
		}

		if _, err := w.Write(chunk); err != nil {
			r.requeue(chunk)
			return
		}
	}
}

func (r *inputRelay) takePending() ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return nil, false
	}
	chunk := r.pending[0]
	r.pending = r.pending[1:]
	return chunk, true
}

func (r *inputRelay) requeue(chunk []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append([][]byte{chunk}, r.pending...)
}

// Close stops the relay. A pending read on a cancelable source is
// interrupted; other sources keep their reader until the next read returns.
func (r *inputRelay) Close() {
	r.once.Do(func() {
		close(r.done)
		if r.cancel != nil {
			r.cancel()
		}
	})
}
