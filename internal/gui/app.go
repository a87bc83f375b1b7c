// Package gui renders the composition in a raylib window and feeds user
// input into the scene's entry points.
package gui

import (
	"errors"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ncruces/zenity"

	"github.com/kyra-dean/rosette/internal/audio"
	"github.com/kyra-dean/rosette/internal/config"
	"github.com/kyra-dean/rosette/internal/geom"
	"github.com/kyra-dean/rosette/internal/scene"
)

type App struct {
	scene    *scene.Scene
	src      audio.Source
	synth    *audio.Synthetic  // non-nil when the synthetic source is active
	playback *audio.FileSource // non-nil when playing a file
	status   string
}

// Run opens the window and blocks in the frame loop until it is closed.
func Run(cfg *config.Config) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "rosette")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.src.Close()

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}
	return nil
}

func newApp(cfg *config.Config) (*App, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	app := &App{
		scene: scene.New(float64(cfg.Width), float64(cfg.Height), cfg.LayoutOptions(), seed),
	}
	if report := app.scene.Report(); report.Exhausted() {
		app.status = statusShortfall(report.Placed, report.Requested)
	}

	switch cfg.Audio.Source {
	case "file":
		path := cfg.Audio.Path
		if path == "" {
			var err error
			path, err = zenity.SelectFile(
				zenity.Title("Open Audio File"),
				zenity.FileFilters{{
					Name:     "Audio",
					Patterns: []string{"*.wav", "*.mp3", "*.flac"},
				}},
			)
			if err != nil {
				if !errors.Is(err, zenity.ErrCanceled) {
					return nil, err
				}
				path = ""
			}
		}
		if path != "" {
			playback, err := audio.OpenFile(path)
			if err != nil {
				return nil, err
			}
			app.playback = playback
			app.src = playback
			return app, nil
		}
		// Dialog canceled: fall through to the synthetic source.

	case "mic":
		mic, err := audio.OpenMic()
		if err != nil {
			return nil, err
		}
		app.src = mic
		return app, nil
	}

	app.synth = audio.NewSynthetic(seed)
	app.src = app.synth
	return app, nil
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.resize()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.resize() // regenerate in place
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		p := rl.GetMousePosition()
		a.scene.Trigger(geom.V(float64(p.X), float64(p.Y)))
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.scene.Restore()
	}
	if a.playback != nil && rl.IsKeyPressed(rl.KeyP) {
		if a.playback.TogglePause() {
			a.status = "playback paused"
		} else {
			a.status = ""
		}
	}

	if a.synth != nil {
		a.synth.Step(1.0 / 60)
	}
	a.scene.Tick(a.src.Spectrum())
}

func (a *App) resize() {
	a.scene.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	if report := a.scene.Report(); report.Exhausted() {
		a.status = statusShortfall(report.Placed, report.Requested)
	} else {
		a.status = ""
	}
}
