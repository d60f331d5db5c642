package server

import (
	"context"
	"net"
	"net/http"
	"time"
)

const (
	readTimeout       = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	// writeTimeout must cover clustering a maximum-size POST /dedupe body.
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout is a var so tests can shorten it.
var shutdownTimeout = 10 * time.Second

// httpServer is the slice of *http.Server the server lifecycle needs.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

type netHTTPServer struct {
	srv *http.Server
	// listener, when set, is served instead of binding srv.Addr.
	listener net.Listener
}

func newNetHTTPServer(addr string, handler http.Handler) netHTTPServer {
	return netHTTPServer{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

func (s netHTTPServer) ListenAndServe() error {
	if s.listener != nil {
		return s.srv.Serve(s.listener)
	}
	return s.srv.ListenAndServe()
}

func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s netHTTPServer) Addr() string                       { return s.srv.Addr }
func (s netHTTPServer) Handler() http.Handler              { return s.srv.Handler }
