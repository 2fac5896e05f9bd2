// tank drives the articulated tank around the playground and scores shots on
// the target. Settings come from howitzer.json in the config directory and
// HOWITZER_* environment variables.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/phanxgames/howitzer"
	"github.com/phanxgames/howitzer/ecs"
	"github.com/phanxgames/howitzer/internal/config"
	"github.com/phanxgames/howitzer/store"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		boot := bootLogger()
		boot.Fatal().Err(err).Msg("load config")
	}
	lvl, _ := cfg.Level()
	zerolog.SetGlobalLevel(lvl)
	log := bootLogger()

	g, err := loadGraph(cfg.SceneFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.SceneFile).Msg("load scene")
	}

	scene := howitzer.NewScene(g)
	scene.SetLogger(log)
	scene.ScreenshotDir = cfg.ScreenshotDir
	scene.Camera().TransitionSeconds = cfg.Camera.TransitionSeconds
	if cfg.Seed != 0 {
		scene.SetSeed(cfg.Seed)
	}
	scene.SetDebugMode(cfg.Debug)

	kv, closeStore := openStore(cfg.Storage.Path, log)
	defer closeStore()
	scene.SetStore(kv)

	world := donburi.NewWorld()
	scene.SetEventSink(ecs.NewDonburiSink(world))
	ecs.GameEventType.Subscribe(world, func(w donburi.World, e howitzer.GameEvent) {
		switch e.Type {
		case howitzer.EventHit:
			log.Info().Int("points", e.Points).Int("score", e.Score).Int("streak", e.Streak).Msg("hit")
		case howitzer.EventNewBest:
			log.Info().Int("best", e.Best).Msg("new best score")
		case howitzer.EventMiss:
			log.Debug().Msg("miss")
		}
	})
	scene.SetUpdateFunc(func() { events.ProcessAllEvents(world) })

	runCfg := howitzer.RunConfig{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		ShowFPS: cfg.Window.ShowFPS,
		HideHUD: cfg.Window.HideHUD,
	}
	if cfg.ScriptFile != "" {
		data, err := os.ReadFile(cfg.ScriptFile)
		if err != nil {
			log.Fatal().Err(err).Msg("read script")
		}
		runner, err := howitzer.LoadTestScript(data)
		if err != nil {
			log.Fatal().Err(err).Msg("load script")
		}
		scene.SetTestRunner(runner)
		runCfg.ExitWhenScriptDone = true
	}

	if err := howitzer.Run(scene, runCfg); err != nil {
		log.Error().Err(err).Msg("run")
	}
}

func bootLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// loadGraph reads a custom scene description, or returns nil for the bundled
// tank.
func loadGraph(path string) (*howitzer.Graph, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return howitzer.LoadDescription(data)
}

// openStore opens the SQLite store, falling back to memory when path is
// empty or the database cannot be opened.
func openStore(path string, log zerolog.Logger) (howitzer.KeyValueStore, func()) {
	if path == "" {
		return store.NewMemory(), func() {}
	}
	db, err := store.OpenSQLite(path, log)
	if err != nil {
		log.Error().Err(err).Msg("open best-score store, scores will not persist")
		return store.NewMemory(), func() {}
	}
	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close best-score store")
		}
	}
}
