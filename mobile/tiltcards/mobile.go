// Package tiltcards is the gomobile entry point, built with
//
//	ebitenmobile bind -target android -javapkg com.chosenoffset.tiltcards ./mobile/tiltcards
//
// Photos are not bundled, so every tile shows a generated portrait.
package tiltcards

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"chosenoffset.com/tiltcards/internal/app"
	"chosenoffset.com/tiltcards/internal/assets"
	"chosenoffset.com/tiltcards/internal/config"
	ebitenrender "chosenoffset.com/tiltcards/internal/render/ebiten"
)

func init() {
	cfg := config.DefaultConfig()
	photos := assets.NewLoader(nil, int(cfg.Layout.TileSize), nil).Load(cfg.Assets.Tiles)

	screen := app.NewScreen(cfg, ebitenrender.NewRenderer(), ebitenrender.NewInputManager(), photos, nil)
	mobile.SetGame(ebitenrender.NewGameAdapter(screen))
}

// Dummy is exported so gomobile generates a binding for this package
func Dummy() {}
