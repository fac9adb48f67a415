package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"snail/interpreter-go/pkg/driver"
	"snail/interpreter-go/pkg/interpreter"
)

const defaultServeAddr = "127.0.0.1:8080"

// Message types exchanged with a connected editor.
const (
	msgSession = "session"
	msgRun     = "run"
	msgInput   = "input"
	msgPrint   = "print"
	msgDone    = "done"
	msgError   = "error"
)

type wireMessage struct {
	Type      string            `json:"type"`
	ID        string            `json:"id,omitempty"`
	Source    string            `json:"source,omitempty"`
	Text      string            `json:"text,omitempty"`
	Prompt    string            `json:"prompt,omitempty"`
	Success   *bool             `json:"success,omitempty"`
	Error     string            `json:"error,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
}

func runServe(args []string, opts cliOptions) int {
	flags, err := parseCommandFlags("serve", args, []string{"addr"}, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(flags.args) > 0 {
		fmt.Fprintf(os.Stderr, "snail serve does not take arguments (received %v)\n", flags.args)
		return 1
	}
	addr := flags.values["addr"]
	if addr == "" {
		addr = defaultServeAddr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           newServeHandler(opts.division),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := make(chan error, 1)
	go func() {
		hostLog.Printf("listening on ws://%s/ws", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err, ok := <-failed:
		if ok {
			fmt.Fprintf(os.Stderr, "snail serve: %v\n", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}
	hostLog.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "snail serve: %v\n", err)
		return 1
	}
	return 0
}

func newServeHandler(division interpreter.DivisionMode) http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hostLog.Printf("upgrade: %v", err)
			return
		}
		newSession(conn, division).serve()
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "%s: connect a websocket to /ws\n", cliToolVersion)
	})
	return mux
}

// session is one editor connection. It runs at most one program at a time
// and routes the editor's input replies to the waiting GIVE statement.
type session struct {
	id     string
	conn   *websocket.Conn
	runner *driver.Runner

	writeMu   sync.Mutex
	running   atomic.Bool
	awaiting  atomic.Bool
	inputs    chan string
	closed    chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, division interpreter.DivisionMode) *session {
	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		inputs: make(chan string, 1),
		closed: make(chan struct{}),
	}
	s.runner = driver.NewRunner(interpreter.FuncIO{
		PrintFunc: s.print,
		InputFunc: s.input,
	}, interpreter.WithDivisionMode(division))
	return s
}

func (s *session) serve() {
	defer s.close()
	hostLog.Printf("session %s connected", s.id)
	s.send(wireMessage{Type: msgSession, ID: s.id})
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				hostLog.Printf("session %s: read: %v", s.id, err)
			}
			hostLog.Printf("session %s closed", s.id)
			return
		}
		var msg wireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(wireMessage{Type: msgError, Error: fmt.Sprintf("malformed message: %v", err)})
			continue
		}
		switch msg.Type {
		case msgRun:
			if !s.running.CompareAndSwap(false, true) {
				s.send(wireMessage{Type: msgError, Error: "a program is already running"})
				continue
			}
			go s.run(msg.Source)
		case msgInput:
			if !s.awaiting.CompareAndSwap(true, false) {
				s.send(wireMessage{Type: msgError, Error: "no input was requested"})
				continue
			}
			s.inputs <- msg.Text
		default:
			s.send(wireMessage{Type: msgError, Error: fmt.Sprintf("unknown message type %q", msg.Type)})
		}
	}
}

func (s *session) run(source string) {
	ok := s.runner.Run(source)
	done := wireMessage{Type: msgDone, Success: &ok, Variables: s.runner.Variables()}
	if !ok {
		done.Error = driver.Describe(s.runner.Err())
	}
	// done goes out before the session accepts another run, and the write
	// lock keeps the next run's frames behind it.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.running.Store(false)
	s.writeLocked(done)
}

func (s *session) print(text string) {
	s.send(wireMessage{Type: msgPrint, Text: text})
}

func (s *session) input(prompt string) (string, error) {
	s.awaiting.Store(true)
	s.send(wireMessage{Type: msgInput, Prompt: prompt})
	select {
	case text := <-s.inputs:
		return text, nil
	case <-s.closed:
		return "", interpreter.ErrNoInput
	}
}

func (s *session) send(msg wireMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.writeLocked(msg)
}

func (s *session) writeLocked(msg wireMessage) {
	if err := s.conn.WriteJSON(msg); err != nil {
		select {
		case <-s.closed:
		default:
			hostLog.Printf("session %s: write: %v", s.id, err)
		}
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.conn.Close()
	})
}
