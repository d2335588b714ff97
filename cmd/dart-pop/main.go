package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/dart-pop/asset"
	"github.com/lixenwraith/dart-pop/audio"
	"github.com/lixenwraith/dart-pop/config"
	"github.com/lixenwraith/dart-pop/core"
	"github.com/lixenwraith/dart-pop/engine"
	"github.com/lixenwraith/dart-pop/network"
	"github.com/lixenwraith/dart-pop/render"
	"github.com/lixenwraith/dart-pop/sensor"
	"github.com/lixenwraith/dart-pop/status"
)

var (
	configFlag    = flag.String("config", "", "TOML config file")
	envFlag       = flag.String("env", ".env", "dotenv file with DARTPOP_* overrides")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	assetsFlag    = flag.String("assets", "", "Directory holding balloon.txt and dart.txt, overrides the config")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/dart-pop.log")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	err := run()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dart-pop: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag, *envFlag)
	if err != nil {
		return err
	}

	// Shapes are validated before the terminal is taken over or any tick runs
	assetDir := cfg.Assets.Dir
	if *assetsFlag != "" {
		assetDir = *assetsFlag
	}
	shapes, err := asset.Load(assetDir)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.EnableFocus()

	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)

	sound := audio.NewSoundManager(cfg.AudioConfig())
	if err := sound.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()

	reg := status.NewRegistry()
	cell := sensor.NewCell()
	keys := sensor.NewKeyboardSource(cell, cfg.Sensor.KeyMagnitude, cfg.Sensor.KeyHold)
	defer keys.Stop()

	seed := cfg.Spawner.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world := engine.NewWorld(
		cfg.Tuning(),
		cfg.Viewport(),
		shapes.Balloon.Geometry(cfg.Targets.Height, cfg.Camera.CellAspect),
		shapes.Dart.Geometry(cfg.Physics.ProjectileHeight, cfg.Camera.CellAspect),
		rand.New(rand.NewSource(seed)),
	)

	renderer := render.NewTerminalRenderer(screen, shapes, render.ParseColorMode(*colorModeFlag))
	sched := engine.NewFrameScheduler(world, cell, engine.NewTimeProvider(), cfg.Loop.Interval, renderer, reg)
	sched.AddPopListener(sound)
	w, h := screen.Size()
	sched.SetDrawable(render.PlayArea(w, h))

	ingest := network.NewIngestServer(cfg.IngestConfig(), cell, reg)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	a := newApp(screen, sched, renderer, cell, keys)
	log.Printf("dart-pop: seed %d, interval %v, ingest enabled=%v", seed, cfg.Loop.Interval, cfg.Ingest.Enabled)
	sched.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return a.run(gctx)
	})
	g.Go(func() error {
		return ingest.Run(gctx)
	})
	err = g.Wait()

	// The loop draws to the screen, it must stop before Fini
	sched.Stop()
	log.Printf("dart-pop: exit %s", reg.Summary())
	return err
}
