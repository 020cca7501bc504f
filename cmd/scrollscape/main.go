// Scrollscape renders an animated infrastructure town whose featured landmark
// follows the scroll position. Scroll with the mouse wheel or arrow keys;
// PageUp/PageDown step between landmarks; Home/End glide to either end.
//
// With -script it runs headless instead: the scroll script drives the scene at
// a fixed tick rate and focus changes and snapshots are logged.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/scrollscape"
	"github.com/phanxgames/scrollscape/internal/config"
	"github.com/phanxgames/scrollscape/internal/logging"
)

//go:embed town.yaml
var defaultTown []byte

const defaultMaxFrames = 60 * 60 * 10

func main() {
	configPath := flag.String("config", "", "scene config file (JSON, YAML or TOML); default is the built-in town")
	scriptPath := flag.String("script", "", "run headless, driven by this scroll script")
	maxFrames := flag.Int("frames", defaultMaxFrames, "headless frame limit")
	pretty := flag.Bool("pretty", true, "human-readable log output")
	flag.Parse()

	if err := run(*configPath, *scriptPath, *maxFrames, *pretty); err != nil {
		fmt.Fprintln(os.Stderr, "scrollscape:", err)
		os.Exit(1)
	}
}

func run(configPath, scriptPath string, maxFrames int, pretty bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, pretty)
	t, err := buildTown(cfg, scrollscape.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := t.scene.Close(); err != nil {
			logger.Warn().Err(err).Msg("close scene")
		}
	}()

	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := scrollscape.LoadScript(data)
		if err != nil {
			return err
		}
		frames := runHeadless(t.scene, runner, cfg.Window.TPS, maxFrames)
		logger.Info().Int("frames", frames).Bool("complete", runner.Done()).Msg("script finished")
		return nil
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(cfg.Window.TPS)
	if err := ebiten.RunGame(newGame(t, cfg.Window.Width, cfg.Window.Height)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Parse(defaultTown, "yaml")
	}
	return config.Load(path)
}

// runHeadless ticks the scene at a fixed rate until the runner finishes or
// maxFrames is reached. Returns the number of ticks delivered.
func runHeadless(scene *scrollscape.Scene, runner *scrollscape.ScriptRunner, tps, maxFrames int) int {
	scene.SetScriptRunner(runner)
	dt := 1.0 / float64(tps)
	frames := 0
	for frames < maxFrames && !runner.Done() {
		scene.Advance(dt)
		frames++
	}
	return frames
}
