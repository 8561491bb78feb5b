package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/raster"
	"github.com/tomz197/polyfill/internal/scene"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	scale := config.GetEnvInt("SNAPSHOT_SCALE", config.DefaultSnapshotScale)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "web",
	})
	if lvl, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	if scale < 1 || scale > raster.MaxScale {
		logger.Warn("SNAPSHOT_SCALE out of range, using default", "scale", scale, "max", raster.MaxScale)
		scale = config.DefaultSnapshotScale
	}

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(sshHost, scale, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
	}
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newMux serves the landing page and snapshots magnified by defaultScale
// unless the request asks for another scale.
func newMux(sshHost string, defaultScale int, logger *log.Logger) *http.ServeMux {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("GET /fill.png", func(w http.ResponseWriter, r *http.Request) {
		serveSnapshot(w, r, defaultScale, logger)
	})
	return mux
}

// snapshotRequest is a parsed /fill.png query.
type snapshotRequest struct {
	alg   fill.Algorithm
	scene scene.Scene
	scale int
}

func parseSnapshotRequest(r *http.Request, defaultScale int) (snapshotRequest, error) {
	q := r.URL.Query()
	req := snapshotRequest{scale: defaultScale}

	var err error
	if name := q.Get("alg"); name != "" {
		if req.alg, err = fill.ParseAlgorithm(name); err != nil {
			return req, err
		}
	}

	name := q.Get("scene")
	if name == "" {
		name = scene.Names()[0]
	}
	if req.scene, err = scene.ByName(name); err != nil {
		return req, err
	}

	if s := q.Get("scale"); s != "" {
		if req.scale, err = strconv.Atoi(s); err != nil || req.scale < 1 || req.scale > raster.MaxScale {
			return req, fmt.Errorf("scale must be an integer in [1, %d]", raster.MaxScale)
		}
	}

	if s := q.Get("seed"); s != "" {
		seed, err := scene.ParseSeed(s)
		if err != nil {
			return req, err
		}
		req.scene = req.scene.WithSeed(seed)
	}
	return req, nil
}

func serveSnapshot(w http.ResponseWriter, r *http.Request, defaultScale int, logger *log.Logger) {
	req, err := parseSnapshotRequest(r, defaultScale)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, last, err := scene.Render(r.Context(), req.scene, req.alg, config.CanvasWidth, config.CanvasHeight, nil)
	if err != nil {
		logger.Error("render", "scene", req.scene.Name, "alg", req.alg, "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	if last.Err != nil {
		http.Error(w, last.Err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img, req.scale); err != nil {
		logger.Error("encode", "err", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	logger.Debug("snapshot", "scene", req.scene.Name, "alg", req.alg, "pixels", last.Filled, "bytes", buf.Len())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Filled-Pixels", strconv.Itoa(last.Filled))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = buf.WriteTo(w)
}
