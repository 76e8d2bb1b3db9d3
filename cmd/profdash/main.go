// profdash renders pre-computed profiling and benchmark results from a
// results service as text panels and SVG bar charts.
//
// Usage:
//
//	profdash -variant api -backend http://localhost:3000/api -addr :8080
//	profdash -cmd render -variant flask -out dashboard.html
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
)

func main() {
	var (
		cmd        = flag.String("cmd", "serve", "Command: serve, render")
		addr       = flag.String("addr", ":8080", "Listen address (serve)")
		backend    = flag.String("backend", "", "Results service base URL (overrides the layout)")
		variant    = flag.String("variant", VariantAPI, "Built-in layout: flask, api")
		layoutPath = flag.String("layout", "", "YAML layout file (replaces the built-in layout)")
		timeout    = flag.Duration("timeout", 0, "Backend request timeout, 0 for none")
		out        = flag.String("out", "-", "Output file (render), - for stdout")
	)
	flag.Parse()

	layout, err := loadLayout(*layoutPath, *variant)
	if err != nil {
		log.Fatalf("Failed to load layout: %v", err)
	}
	if *backend != "" {
		layout.Backend = *backend
	}

	reg, m := newRegistry()
	client, err := NewClient(layout.Backend, *timeout, m)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *cmd {
	case "serve":
		srv := &http.Server{
			Addr:              *addr,
			Handler:           newServer(client, layout, m).handler(reg),
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := serve(ctx, srv); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case "render":
		if err := runRender(ctx, client, layout, *out); err != nil {
			log.Printf("Render failed: %v", err)
			os.Exit(1)
		}
	default:
		log.Fatalf("Unknown command: %s", *cmd)
	}
}

func loadLayout(path, variant string) (Layout, error) {
	if path != "" {
		return LoadLayout(path)
	}
	return DefaultLayout(variant)
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting web server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// runRender builds the dashboard once and writes the page to out. The page is
// written even when a phase fails, so partial output can be inspected.
func runRender(ctx context.Context, client Fetcher, layout Layout, out string) error {
	page := NewPage(layout)
	initErr := NewDashboard(client, layout).Initialize(ctx, page)

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrapf(err, "create %s", out)
		}
		defer f.Close()
		w = f
	}
	if err := page.Render(w); err != nil {
		return errors.Wrap(err, "write page")
	}
	if initErr != nil {
		return initErr
	}
	log.Printf("[%s] OK: %d panels, %d charts", layout.Backend, len(layout.Panels), len(layout.Charts))
	return nil
}
