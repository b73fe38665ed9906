// Package fixtures provides an integration-test harness that serves a real
// net/http response over a real TCP connection and captures the exact bytes
// that went out on the wire — the raw HTTP/1.1 response line, headers, and
// body a byte machine would consume, rather than a reconstruction via
// httptest.ResponseRecorder (which only exposes the parsed result, not the
// serialized form). CaptureHTTP2Response offers the same capture over
// cleartext HTTP/2 for tests that need to see a different wire framing.
package fixtures

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"sync"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// syncBuffer is a concurrency-safe byte accumulator.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())
	return out
}

// teeConn mirrors every byte a connection writes into a shared buffer before
// passing it on to the real socket.
type teeConn struct {
	net.Conn
	buf *syncBuffer
}

func (c *teeConn) Write(p []byte) (int, error) {
	c.buf.Write(p)
	return c.Conn.Write(p)
}

// teeListener wraps a net.Listener so every accepted connection is a teeConn.
type teeListener struct {
	net.Listener
	buf *syncBuffer
}

func (l *teeListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &teeConn{Conn: conn, buf: l.buf}, nil
}

// CaptureHTTPResponse serves a single request through handler over a real
// loopback TCP connection and returns the exact bytes the server wrote back
// to the client.
//
// req's URL scheme and host are overwritten to target the ephemeral listener;
// callers only need to set the method, path, and any headers/body under
// test.
func CaptureHTTPResponse(handler http.Handler, req *http.Request) ([]byte, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	buf := &syncBuffer{}
	tln := &teeListener{Listener: ln, buf: buf}

	srv := &http.Server{Handler: handler}
	go srv.Serve(tln) //nolint:errcheck // ErrServerClosed once Close runs below
	defer srv.Close()  //nolint:errcheck // best-effort shutdown once the capture completes

	req.URL.Scheme = "http"
	req.URL.Host = ln.Addr().String()
	req.RequestURI = ""

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // response body, nothing to recover

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// CaptureHTTP2Response is CaptureHTTPResponse over cleartext HTTP/2 (h2c)
// instead of HTTP/1.1, so byte-machine tests can be exercised against the
// different wire framing a SETTINGS/HEADERS/DATA-frame transport produces
// rather than only CRLF-delimited HTTP/1.1 text.
func CaptureHTTP2Response(handler http.Handler, req *http.Request) ([]byte, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	buf := &syncBuffer{}
	tln := &teeListener{Listener: ln, buf: buf}

	h2s := &http2.Server{}
	srv := &http.Server{Handler: h2c.NewHandler(handler, h2s)}
	go srv.Serve(tln) //nolint:errcheck // ErrServerClosed once Close runs below
	defer srv.Close()  //nolint:errcheck // best-effort shutdown once the capture completes

	client := &http.Client{
		Transport: &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(_ context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return net.Dial(network, addr)
			},
		},
	}

	req.URL.Scheme = "http"
	req.URL.Host = ln.Addr().String()
	req.RequestURI = ""

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // response body, nothing to recover

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
