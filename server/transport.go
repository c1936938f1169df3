package server

import (
	contextpkg "context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// dispatcher runs notifications and the lifecycle requests in arrival order
// on the read loop. Every other request runs on its own goroutine, so that
// it may wait on a call back to the client while the read loop delivers the
// answer.
type dispatcher struct {
	reply jsonrpc2.Handler
}

func (d dispatcher) Handle(ctx contextpkg.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch {
	case req.Notif,
		req.Method == string(protocol.MethodInitialize),
		req.Method == string(protocol.MethodShutdown):
		d.reply.Handle(ctx, conn, req)
	default:
		go d.reply.Handle(ctx, conn, req)
	}
}

// rpcLogger sends the jsonrpc2 message trace to commonlog.
type rpcLogger struct {
	log commonlog.Logger
}

func (l rpcLogger) Printf(format string, v ...any) {
	l.log.Debugf(strings.TrimSuffix(format, "\n"), v...)
}

// Serve answers a single client over stream until it disconnects or ctx is
// done.
func (s *Server) Serve(ctx contextpkg.Context, stream io.ReadWriteCloser) {
	var options []jsonrpc2.ConnOpt
	if s.config.LogVerbosity > 2 {
		options = append(options, jsonrpc2.LogMessages(rpcLogger{commonlog.GetLogger(NAME + ".rpc")}))
	}

	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(stream, jsonrpc2.VSCodeObjectCodec{}),
		dispatcher{reply: jsonrpc2.HandlerWithError(s.handle)},
		options...)

	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		conn.Close()
	}
}

// handle routes a request to the protocol handler table.
func (s *Server) handle(ctx contextpkg.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	context := &glsp.Context{
		Method: req.Method,
		Notify: func(method string, params any) {
			if err := conn.Notify(ctx, method, params); err != nil {
				log.Errorf("notify %v: %v", method, err)
			}
		},
		Call: func(method string, params any, result any) {
			s.calls.Add(1)
			defer s.calls.Add(-1)

			callCtx := ctx
			if timeout := s.config.ConfigurationTimeout(); timeout > 0 {
				var cancel contextpkg.CancelFunc
				callCtx, cancel = contextpkg.WithTimeout(ctx, timeout)
				defer cancel()
			}
			if err := conn.Call(callCtx, method, params, result); err != nil {
				log.Errorf("call %v: %v", method, err)
			}
		},
	}
	if req.Params != nil {
		context.Params = *req.Params
	}

	r, validMethod, validParams, err := s.handler.Handle(context)

	if req.Method == string(protocol.MethodExit) {
		return nil, conn.Close()
	}

	switch {
	case !validMethod:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", req.Method),
		}
	case !validParams:
		rpcErr := &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams}
		if err != nil {
			rpcErr.Message = err.Error()
		}
		return nil, rpcErr
	case err != nil:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidRequest,
			Message: err.Error(),
		}
	}

	return r, nil
}

// stdio is the process standard input and output as a stream.
type stdio struct{}

func (stdio) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdio) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// Run serves clients over TCP, one connection at a time, when a listen
// address is configured; otherwise a single client over stdio.
func (s *Server) Run() (err error) {
	ctx := contextpkg.Background()

	if len(s.config.Listen) == 0 {
		log.Info("reading from stdin, writing to stdout")
		s.Serve(ctx, stdio{})
		return
	}

	listener, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return
	}
	defer listener.Close()

	log.Infof("listening on %v", s.config.Listen)
	for {
		var conn net.Conn
		conn, err = listener.Accept()
		if err != nil {
			return
		}
		log.Infof("connection from %v", conn.RemoteAddr())
		s.Serve(ctx, conn)
	}
}
