package main

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tweenseq/config"
	"github.com/zucenko/tweenseq/effect"
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

const (
	screenWidth  = 480
	screenHeight = 440
)

type DemoState int

const (
	RUNNING DemoState = iota + 1
	PAUSED
)

func (s DemoState) Name() string {
	switch s {
	case RUNNING:
		return "RUNNING"
	case PAUSED:
		return "PAUSED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

var stepKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type Game struct {
	State   DemoState
	Engine  *tween.Engine
	Scene   *config.Scene
	Objects []*effect.Object
	Sprites []*Sprite
	Panel   *Nine
	Bar     *Nine
	Events  *EventLog

	mover *effect.Move
	hop   *tween.Sequencer
	tint  *tween.Sequencer
}

var theGame *Game

var Font font.Face

func init() {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}

	const dpi = 72
	Font = truetype.NewFace(tt, &truetype.Options{
		Size:       32,
		DPI:        dpi,
		SubPixelsX: 100,
		Hinting:    font.HintingFull,
	})

	scene, err := Load("scene.yaml")
	if err != nil {
		log.Fatal(err)
	}
	theGame, err = NewGame(scene)
	if err != nil {
		log.Fatal(err)
	}
}

func NewGame(scene *config.Scene) (*Game, error) {
	dot, err := ebiten.NewImageFromImage(circleImage(113), ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	small, err := ebiten.NewImageFromImage(circleImage(32), ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	engine := tween.NewEngine()
	g := &Game{
		State:  RUNNING,
		Engine: engine,
		Scene:  scene,
		Panel:  NewNine(dot, .15),
		Bar:    NewNine(dot, .15),
		Events: &EventLog{engine: engine},
	}
	g.Panel.SetPosition(20, 20)
	g.Panel.SetSize(440, 80)
	g.Panel.R, g.Panel.G, g.Panel.B = .2, .2, .3
	g.Bar.SetPosition(20, 110)
	g.Bar.SetSize(440, 17)
	g.Bar.R, g.Bar.G, g.Bar.B = .04, .74, .22

	targets := map[string]interface{}{
		"panel":   g.Panel,
		"bar":     g.Bar,
		"title":   g.addSprite(NewSprite("title", prepareTextImage("tweenseq"), 240, 60)),
		"blink":   g.addSprite(NewSprite("blink", small, 440, 180)),
		"spinner": g.addSprite(NewSprite("spinner", squareImage(40), 80, 180)),
		"pulse":   g.addSprite(NewSprite("pulse", small, 160, 180)),
	}
	mover := g.addSprite(NewSprite("mover", squareImage(24), 60, 380))
	targets["mover"] = mover

	for _, ec := range scene.Effects {
		target, ok := targets[ec.Name]
		if !ok {
			target = g.addSprite(NewSprite(ec.Name, squareImage(16), 240, 300))
		}
		fx, err := scene.BuildEffect(ec, engine, target, g.Events.Resolver)
		if err != nil {
			return nil, err
		}
		if m, ok := fx.(*effect.Move); ok {
			g.mover = m
		}
		g.Objects = append(g.Objects, effect.NewObject(ec.Name, fx))
	}

	ball := g.addSprite(NewSprite("ball", small, 240, 200))
	if g.hop, err = g.sequencer("hop", ball.SetPosition); err != nil {
		return nil, err
	}
	if g.tint, err = g.sequencer("tint", mover.SetTint); err != nil {
		return nil, err
	}

	for _, o := range g.Objects {
		if err := o.SetActive(true); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) addSprite(s *Sprite) *Sprite {
	g.Sprites = append(g.Sprites, s)
	return s
}

func (g *Game) sequencer(name string, apply func(v model.Value)) (*tween.Sequencer, error) {
	sc, err := g.Scene.FindSequence(name)
	if err != nil {
		return nil, err
	}
	built, err := sc.Build(g.Events.Resolver)
	if err != nil {
		return nil, err
	}
	return tween.NewSequencer(g.Engine, built.Sequence, built.Start, apply,
		tween.WithEasing(built.Easing),
		tween.WithLogger(log.WithField("sequence", name)))
}

func prepareTextImage(s string) *ebiten.Image {
	image, _ := ebiten.NewImage(160, 40, ebiten.FilterLinear)
	text.Draw(image, s, Font, 5, 32, color.White)
	return image
}

func (g *Game) toggleActive() {
	active := g.State != RUNNING
	for _, o := range g.Objects {
		if err := o.SetActive(active); err != nil {
			log.Warnf("object %s: %v", o.Name, err)
		}
	}
	if active {
		g.State = RUNNING
	} else {
		g.State = PAUSED
	}
	g.Events.add("objects %s", g.State.Name())
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggleActive()
	}
	if g.mover != nil && g.mover.Sequencer() != nil {
		for i, k := range stepKeys {
			if inpututil.IsKeyJustPressed(k) {
				if pb := g.mover.MoveObject(i, g.Events.Settled); pb.Done() {
					g.Events.add("no step %d", i)
				}
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.mover.Stop()
			g.Events.add("mover stopped")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hop.Play(-1, nil)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if g.tint.Playing() {
			g.tint.Stop()
		} else {
			g.tint.Play(-1, nil)
		}
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.Engine.Update(frameDt)
	g.handleKeys()

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	e := screen.Fill(color.RGBA{70, 70, 70, 255})
	if e != nil {
		log.Printf("%v", e)
	}

	g.Panel.Draw(screen)
	g.Bar.Draw(screen)
	for _, s := range g.Sprites {
		s.Draw(screen)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  active:%d", g.State.Name(), g.Engine.Active()), 300, 0)
	ebitenutil.DebugPrintAt(screen, "space:toggle 1-9:step esc:stop h:hop t:tint", 10, 140)
	for i, line := range g.Events.lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 220+i*16)
	}
	return nil
}

func main() {
	if err := ebiten.Run(theGame.update, screenWidth, screenHeight, 1, "tweenseq"); err != nil {
		log.Fatal(err)
	}
}
