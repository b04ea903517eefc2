package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/command"

	"github.com/lesspass-go/lesspass"
	"github.com/lesspass-go/lesspass/config"
)

// runServe implements the "serve" subcommand: it runs a local HTTP
// generator service bound to addr, watching the configuration file for
// changes so a running server picks up new or edited presets without a
// restart. The master secret is never held by the server process across
// requests; it is required on every call and the entropy scratch buffer it
// produces is zeroed as soon as the response is rendered.
func runServe(env *command.Env, addr string) error {
	path := settingsOf(env).ConfigPath
	if path == "" {
		path = config.FilePath()
	}

	w, err := config.NewWatcher(path)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: addr, Handler: &server{watch: w}}

	ctx, cancel := signal.NotifyContext(env.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Printf("watching configuration at %q", path)
		w.Run(ctx)
	}()
	go func() {
		log.Printf("serving at %q", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WARNING: server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("signal received, stopping server")
	return srv.Shutdown(context.Background())
}

// server answers POST /generate requests by running the full derivation
// pipeline for a JSON-encoded request body. It holds no state of its own
// beyond a pointer to a config.Watcher, matching the core's synchronous,
// no-shared-state design: concurrent requests never contend on anything but
// the watcher's own internal mutex, held for the duration of each
// Watcher.Config call (including any pending reload).
type server struct {
	watch *config.Watcher
}

// generateRequest is the wire shape POSTed to /generate. Site and Master are
// required; every other field falls back to the matching config preset (if
// any), then to the library defaults.
type generateRequest struct {
	Site       string `json:"site"`
	Login      string `json:"login"`
	Master     string `json:"master"`
	Counter    uint32 `json:"counter,omitempty"`
	Length     int    `json:"length,omitempty"`
	Algorithm  string `json:"algorithm,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
}

type generateResponse struct {
	Password string `json:"password"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/generate" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Site == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing required field \"site\""))
		return
	}
	if req.Master == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing required field \"master\""))
		return
	}

	cfg := s.watch.Config()
	site, _ := cfg.Site(req.Site)
	if req.Login != "" {
		site.Login = req.Login
	}
	if req.Counter != 0 {
		site.Counter = req.Counter
	}
	if req.Length != 0 {
		site.Length = req.Length
	}
	if req.Algorithm != "" {
		site.Algorithm = req.Algorithm
	}
	if req.Iterations != 0 {
		site.Iterations = req.Iterations
	}

	lpReq, err := site.Request(req.Master)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pw, err := lesspass.Generate(lpReq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(generateResponse{Password: pw})
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
