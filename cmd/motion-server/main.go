package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tiltsnake/motion"
)

func main() {
	addr := flag.String("addr", "", "Listen address (or set MOTION_ADDR env var, default :8080)")
	webDir := flag.String("web", "web", "Directory with index.html, wasm_exec.js and tiltsnake.wasm")
	flag.Parse()

	listen := *addr
	if listen == "" {
		listen = os.Getenv("MOTION_ADDR")
	}
	if listen == "" {
		listen = ":8080"
	}

	logger := log.New(os.Stderr, "motion: ", log.LstdFlags)
	hub := motion.NewHub(logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/", http.FileServer(http.Dir(*webDir)))

	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Serving %s and /ws on %s", *webDir, listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// hijacked websocket connections are not tracked by Shutdown
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
