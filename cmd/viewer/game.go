package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tileview/ecs"
	"github.com/plus3/tileview/ecs/debugui"
	debugui_ebiten "github.com/plus3/tileview/ecs/debugui/ebiten"
	"github.com/plus3/tileview/ecs/gamemap"
	"github.com/plus3/tileview/ecs/gameview"
	"github.com/plus3/tileview/ecs/snapshot"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	gameMap   *gamemap.MapSystem
	viewport  *gameview.ViewportSystem
	sprites   *SpriteSystem
	imgui     *debugui.ImguiSystem
	backend   *debugui_ebiten.ImguiBackend
	log       *zap.Logger

	tickDelta    float64
	panSeconds   float32
	snapshotPath string

	dragging     bool
	lastX, lastY int
	focusIndex   int
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.backend.BeginFrame()
	defer g.backend.EndFrame()

	if err := g.handleInput(); err != nil {
		return err
	}
	return g.scheduler.Once(g.tickDelta)
}

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.focusNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.panToCenter()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveSnapshot()
	}

	if g.imgui.InputState.WantCaptureMouse {
		g.dragging = false
		return nil
	}

	mx, my := ebiten.CursorPosition()
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
		return nil
	}
	if !g.dragging {
		g.dragging = true
		g.lastX, g.lastY = mx, my
		if g.viewport.DoScroll {
			g.viewport.ClearFocus()
		}
		return nil
	}

	ev := gameview.DragEvent{DX: float64(mx - g.lastX), DY: float64(my - g.lastY)}
	if ev.DX == 0 && ev.DY == 0 {
		return nil
	}
	g.lastX, g.lastY = mx, my
	return g.viewport.OnDrag(ev)
}

func (g *Game) focusNext() {
	ids := g.sprites.EntityIds()
	if len(ids) == 0 {
		return
	}
	g.focusIndex = (g.focusIndex + 1) % len(ids)
	g.viewport.SetEntityToFocus(ids[g.focusIndex])
	g.log.Info("following entity", zap.Uint32("entity", uint32(ids[g.focusIndex])))
}

func (g *Game) panToCenter() {
	g.viewport.ClearFocus()
	center := g.gameMap.MapSize().Scale(0.5)
	target := g.viewport.Size().Scale(0.5).Sub(center)
	g.viewport.ScrollTo(target, g.panSeconds, ease.OutQuad)
}

func (g *Game) saveSnapshot() {
	data, err := snapshot.Save(g.world, g.sprites.EntityIds())
	if err != nil {
		g.log.Error("snapshot failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(g.snapshotPath, data, 0o644); err != nil {
		g.log.Error("snapshot write failed", zap.String("path", g.snapshotPath), zap.Error(err))
		return
	}
	g.log.Info("snapshot saved", zap.String("path", g.snapshotPath), zap.Int("entities", len(g.sprites.EntityIds())))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{245, 245, 240, 255})

	g.drawGrid(screen)

	for _, item := range g.sprites.drawList {
		vector.DrawFilledCircle(screen, float32(item.screen.X), float32(item.screen.Y), item.radius, item.color, true)
		if item.focus {
			vector.StrokeCircle(screen, float32(item.screen.X), float32(item.screen.Y), item.radius+4, 2, color.RGBA{40, 40, 40, 255}, true)
		}
	}

	cam := g.viewport.CameraPos()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("camera (%.0f, %.0f)  cascade %s  [F] follow  [C] center  [S] save  drag to scroll",
		cam.X, cam.Y, g.viewport.Cascade()))

	g.backend.Draw(screen)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	tile := g.gameMap.TileSize()
	if tile.X <= 0 || tile.Y <= 0 {
		return
	}
	size := g.gameMap.MapSize()
	visible := g.viewport.VisibleRect()
	gridColor := color.RGBA{220, 220, 215, 255}

	firstCol := int(max(visible.Pos.X, 0) / tile.X)
	lastCol := int(min(visible.Pos.X+visible.Size.X, size.X) / tile.X)
	for col := firstCol; col <= lastCol; col++ {
		top := g.viewport.ToScreen(ecs.Vec2{X: float64(col) * tile.X, Y: 0})
		bottom := g.viewport.ToScreen(ecs.Vec2{X: float64(col) * tile.X, Y: size.Y})
		vector.StrokeLine(screen, float32(top.X), float32(top.Y), float32(bottom.X), float32(bottom.Y), 1, gridColor, false)
	}

	firstRow := int(max(visible.Pos.Y, 0) / tile.Y)
	lastRow := int(min(visible.Pos.Y+visible.Size.Y, size.Y) / tile.Y)
	for row := firstRow; row <= lastRow; row++ {
		left := g.viewport.ToScreen(ecs.Vec2{X: 0, Y: float64(row) * tile.Y})
		right := g.viewport.ToScreen(ecs.Vec2{X: size.X, Y: float64(row) * tile.Y})
		vector.StrokeLine(screen, float32(left.X), float32(left.Y), float32(right.X), float32(right.Y), 1, gridColor, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	size := ecs.Vec2{X: float64(outsideWidth), Y: float64(outsideHeight)}
	if err := g.viewport.SetSize(size); err != nil {
		g.log.Error("viewport resize failed", zap.Error(err))
	}
	return outsideWidth, outsideHeight
}
