package cmd

import (
	"expvar"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
)

// monitor exposes a chain's progress over expvar/HTTP: iteration count,
// total sample count, and the mean acceptance ratio across sampled nodes.
type monitor struct {
	info    *expvar.Map
	stopped chan struct{}
	server  *http.Server

	Iterations      *expvar.Int
	TotalSamples    *expvar.Int
	MeanAcceptRatio *expvar.Float
}

// Start begins the monitor's HTTP server on a background goroutine.
func (m *monitor) Start(addr string) error {
	if m.info != nil {
		return errors.Errorf("BUG: You may only start the process monitor once")
	}

	m.info = expvar.NewMap("mcmcbugs-progress")
	m.stopped = make(chan struct{})
	m.server = &http.Server{Addr: addr}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/debug/vars", http.StatusTemporaryRedirect)
	})

	m.Iterations = expvar.NewInt("Iterations")
	m.TotalSamples = expvar.NewInt("Total-Samples")
	m.MeanAcceptRatio = expvar.NewFloat("Mean-Accept-Ratio")

	started := make(chan struct{})
	go func() {
		defer close(m.stopped)
		fmt.Fprintf(os.Stderr, "HTTP now available at %v (see debug/vars/)\n", m.server.Addr)
		close(started)
		m.server.ListenAndServe()
	}()

	<-started
	return nil
}

// Stop shuts down the monitor's HTTP server, waiting up to two seconds.
func (m *monitor) Stop() {
	if m.info == nil {
		return
	}

	m.server.Close()

	select {
	case <-m.stopped:
		fmt.Fprintf(os.Stderr, "HTTP Info Stopped\n")
	case <-time.After(2 * time.Second):
		fmt.Fprintf(os.Stderr, "HTTP would NOT stop: just continuing on\n")
	}
}
