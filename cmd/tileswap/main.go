// Command tileswap plays a catalog of image tile-swap puzzles.
//
// With no flags it plays the embedded catalog. Point -catalog at a YAML file
// and -assets at the directory its image paths are relative to in order to
// play your own images.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/tileswap"
)

const windowTitle = "Tile Swap"

func main() {
	catalogPath := flag.String("catalog", "", "level catalog YAML (default: embedded catalog)")
	assets := flag.String("assets", "", "image directory (default: the catalog's directory)")
	seed := flag.Uint64("seed", 0, "shuffle seed (0 = time based)")
	maxSize := flag.Float64("max", 0, "override the catalog's maxBoardSize")
	level := flag.Int("level", 0, "index of the first level to play")
	allowSolved := flag.Bool("allow-solved", false, "accept shuffles that come out solved")
	watch := flag.Bool("watch", false, "reload the catalog when the file changes")
	script := flag.String("script", "", "JSON play script to run, exiting when done")
	shots := flag.String("screenshots", "screenshots", "screenshot output directory")
	debug := flag.Bool("debug", false, "debug overlay and diagnostics")
	showFPS := flag.Bool("fps", false, "show FPS counter")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	cfg := tileswap.Config{
		MaxBoardSize:       *maxSize,
		StartLevel:         *level,
		Seed:               *seed,
		Logger:             logger,
		Debug:              *debug,
		ScreenshotDir:      *shots,
		ExitWhenScriptDone: *script != "",
	}
	if *allowSolved {
		cfg.ShufflePolicy = tileswap.ShuffleAllowSolved
	}

	root := *assets
	if *catalogPath != "" {
		c, err := tileswap.LoadCatalog(*catalogPath)
		if err != nil {
			logger.Error("load catalog", "err", err)
			os.Exit(1)
		}
		cfg.Catalog = c
		if root == "" {
			root = filepath.Dir(*catalogPath)
		}
		if *watch {
			w, err := tileswap.WatchCatalog(*catalogPath)
			if err != nil {
				logger.Error("watch catalog", "path", *catalogPath, "err", err)
				os.Exit(1)
			}
			defer w.Close()
			cfg.Watcher = w
			logger.Info("watching catalog", "path", w.Path())
		}
	} else if *watch {
		logger.Warn("-watch needs -catalog; ignoring")
	}
	if root != "" {
		cfg.Loader = tileswap.FSLoader{FS: os.DirFS(root)}
	}

	g, err := tileswap.NewGame(cfg)
	if err != nil {
		logger.Error("start game", "err", err)
		os.Exit(1)
	}

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			logger.Error("read script", "path", *script, "err", err)
			os.Exit(1)
		}
		runner, err := tileswap.LoadTestScript(data)
		if err != nil {
			logger.Error("load script", "path", *script, "err", err)
			os.Exit(1)
		}
		g.SetTestRunner(runner)
	}

	if err := tileswap.Run(g, tileswap.RunConfig{
		Title:   windowTitle,
		ShowFPS: *showFPS,
	}); err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
