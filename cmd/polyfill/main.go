package main

import (
	"bufio"
	"context"
	"flag"
	"image"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/loop"
	"github.com/tomz197/polyfill/internal/raster"
	"github.com/tomz197/polyfill/internal/scene"
)

func main() {
	var (
		algName  = flag.String("alg", fill.ScanlineETAEL.String(), "fill algorithm: "+strings.Join(algorithmNames(), ", "))
		sceneArg = flag.String("scene", scene.Names()[0], "scene: "+strings.Join(scene.Names(), ", "))
		seedArg  = flag.String("seed", "", "seed pixel as x,y (defaults to the scene's seed)")
		pngPath  = flag.String("png", "", "write the finished fill to this PNG file instead of opening the viewer")
		scale    = flag.Int("scale", config.DefaultSnapshotScale, "PNG magnification")
		level    = flag.String("log-level", config.GetEnv("LOG_LEVEL", "info"), "log level")
	)
	flag.Parse()

	logger := newLogger(*level)

	alg, err := fill.ParseAlgorithm(*algName)
	if err != nil {
		logger.Fatal("bad -alg", "err", err)
	}
	sc, err := scene.ByName(*sceneArg)
	if err != nil {
		logger.Fatal("bad -scene", "err", err)
	}
	var seed *image.Point
	if *seedArg != "" {
		p, err := scene.ParseSeed(*seedArg)
		if err != nil {
			logger.Fatal("bad -seed", "err", err)
		}
		seed = &p
		sc = sc.WithSeed(p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *pngPath != "" {
		if err := writePNG(ctx, logger, *pngPath, sc, alg, *scale); err != nil {
			logger.Fatal("snapshot failed", "err", err)
		}
		return
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c, err := loop.NewClient(bufio.NewReader(os.Stdin), os.Stdout, loop.ClientOptions{
		Logger:    logger,
		Algorithm: alg,
		Scene:     sc.Name,
		Seed:      seed,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		logger.Fatal("viewer", "err", err)
	}
	if err := c.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Fatal("viewer error", "err", err)
	}
}

// newLogger logs to stderr so it never mixes with the viewer on stdout.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "polyfill",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func writePNG(ctx context.Context, logger *log.Logger, path string, sc scene.Scene, alg fill.Algorithm, scale int) error {
	img, last, err := scene.Render(ctx, sc, alg, config.CanvasWidth, config.CanvasHeight, func(st fill.Step) {
		logger.Debug("fill step", "status", st.Status, "filled", st.Filled)
	})
	if err != nil {
		return err
	}
	if last.Err != nil {
		return last.Err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.EncodePNG(f, img, scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("wrote snapshot", "path", path, "scene", sc.Name, "alg", alg, "pixels", last.Filled)
	return nil
}

func algorithmNames() []string {
	names := make([]string, len(fill.Algorithms))
	for i, a := range fill.Algorithms {
		names[i] = a.String()
	}
	return names
}
