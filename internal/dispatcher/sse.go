package dispatcher

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// writer is the single goroutine with access to the ResponseWriter
// (SPEC_FULL.md §9, "a single-writer goroutine consuming a bounded
// channel of frames is the cleanest shape"). Every other goroutine in a
// request (heartbeat ticker, the main handler body) only ever sends
// strings into frames; it never touches w directly.
type writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
	frames  chan string
	done    chan struct{}
}

func newWriter(w http.ResponseWriter, flusher http.Flusher) *writer {
	wr := &writer{w: w, flusher: flusher, frames: make(chan string, 32), done: make(chan struct{})}
	go wr.run()
	return wr
}

func (wr *writer) run() {
	defer close(wr.done)
	for frame := range wr.frames {
		// Writes after the client has gone are silently dropped; Write on a
		// hijacked/closed connection returns an error we ignore here (spec.md
		// §4.12: "Writes after the stream is closed are silently dropped").
		_, _ = wr.w.Write([]byte(frame))
		wr.flusher.Flush()
	}
}

// send enqueues a frame. It never blocks the caller on a full channel in
// steady operation because the writer drains continuously; send is safe
// to call from multiple goroutines (the heartbeat ticker and the handler
// body).
func (wr *writer) send(frame string) {
	select {
	case wr.frames <- frame:
	case <-wr.done:
	}
}

// close stops accepting further frames and waits for the writer goroutine
// to drain what remains.
func (wr *writer) close() {
	close(wr.frames)
	<-wr.done
}

func dataFrame(v any) string {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("data: {\"type\":\"error\",\"error\":%q}\n\n", err.Error())
	}
	return fmt.Sprintf("data: %s\n\n", body)
}

func commentFrame(key string, value int64) string {
	return fmt.Sprintf(": %s=%d\n", key, value)
}

const (
	framePrelude = ":ok\n\n"
	frameDone    = "data: [DONE]\n\n"
)

type startFrame struct {
	Type string `json:"type"`
}

type heartbeatFrame struct {
	Type string `json:"type"`
}

type streamStartFrame struct {
	Type string `json:"type"`
}

type textFrame struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	SessionID string `json:"session_id,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func newStartFrame() string     { return dataFrame(startFrame{Type: "start"}) }
func newHeartbeatFrame() string { return dataFrame(heartbeatFrame{Type: "heartbeat"}) }
func newStreamStartFrame() string { return dataFrame(streamStartFrame{Type: "stream_start"}) }
func newTextFrame(content, sessionID string) string {
	return dataFrame(textFrame{Type: "text", Content: content, SessionID: sessionID})
}
func newErrorFrame(message string) string {
	return dataFrame(errorFrame{Type: "error", Error: message})
}
