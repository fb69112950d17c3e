package driver

import (
	"context"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// headerRecorder tracks the request headers of the page's main document.
// Chrome reports them in two stages: RequestWillBeSent carries the headers
// the renderer intends to send, and RequestWillBeSentExtraInfo carries the
// headers that actually hit the wire (cookies included). Both are merged,
// keyed by the document's request id so subresource traffic is ignored.
type headerRecorder struct {
	mu      sync.RWMutex
	docReq  proto.NetworkRequestID
	headers map[string]string
}

func newHeaderRecorder() *headerRecorder {
	return &headerRecorder{headers: map[string]string{}}
}

// listen subscribes to network events on the page. The returned stop function
// detaches the listener; it is safe to call more than once.
func (r *headerRecorder) listen(page *rod.Page) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	p := page.Context(ctx)

	go p.EachEvent(
		func(e *proto.NetworkRequestWillBeSent) {
			if e.Type != proto.NetworkResourceTypeDocument {
				return
			}
			r.beginDocument(e.RequestID, headerMap(e.Request.Headers))
		},
		func(e *proto.NetworkRequestWillBeSentExtraInfo) {
			r.mergeExtra(e.RequestID, headerMap(e.Headers))
		},
	)()

	return cancel
}

// beginDocument resets the recorder for a new top-level navigation.
func (r *headerRecorder) beginDocument(id proto.NetworkRequestID, h map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docReq = id
	r.headers = h
}

// mergeExtra folds wire-level headers into the current document's set.
// Events for other request ids are dropped.
func (r *headerRecorder) mergeExtra(id proto.NetworkRequestID, h map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != r.docReq {
		return
	}
	for k, v := range h {
		r.headers[k] = v
	}
}

// snapshot returns a copy of the last-seen document headers.
func (r *headerRecorder) snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.headers))
	for k, v := range r.headers {
		out[k] = v
	}
	return out
}

// headerMap lowercases header names so lookups do not depend on the casing
// Chrome happened to report. Pseudo-headers (":authority" etc.) are skipped.
func headerMap(h proto.NetworkHeaders) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if strings.HasPrefix(k, ":") {
			continue
		}
		out[strings.ToLower(k)] = v.Str()
	}
	return out
}

// Headers returns the request headers last observed on the main document,
// header names lowercased. The map is a copy; mutating it has no effect on
// the driver.
func (d *Driver) Headers() map[string]string {
	if d.headers == nil {
		return map[string]string{}
	}
	return d.headers.snapshot()
}
