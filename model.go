package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten"
	"github.com/zucenko/tweenseq/model"
)

// Sprite is a drawable that every effect can drive.
type Sprite struct {
	Name     string
	image    *ebiten.Image
	x, y     float64
	alpha    float32
	rotation float32
	scale    model.Value
	tint     model.Value
}

func NewSprite(name string, img *ebiten.Image, x, y float64) *Sprite {
	return &Sprite{
		Name:  name,
		image: img,
		x:     x,
		y:     y,
		alpha: 1,
		scale: model.Vec3(1, 1, 1),
		tint:  model.RGBA(1, 1, 1, 1),
	}
}

func (s *Sprite) Alpha() float32          { return s.alpha }
func (s *Sprite) SetAlpha(a float32)      { s.alpha = a }
func (s *Sprite) Rotation() float32       { return s.rotation }
func (s *Sprite) SetRotation(deg float32) { s.rotation = deg }
func (s *Sprite) Scale() model.Value      { return s.scale }
func (s *Sprite) SetScale(v model.Value)  { s.scale = v }
func (s *Sprite) SetTint(v model.Value)   { s.tint = v }

func (s *Sprite) SetPosition(p model.Value) {
	s.x = float64(p.V[0])
	s.y = float64(p.V[1])
}

// Draw draws the sprite centered on its position.
func (s *Sprite) Draw(screen *ebiten.Image) {
	w, h := s.image.Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(float64(s.scale.V[0]), float64(s.scale.V[1]))
	op.GeoM.Rotate(float64(s.rotation) * math.Pi / 180)
	op.GeoM.Translate(s.x, s.y)
	t := s.tint.V
	op.ColorM.Scale(float64(t[0]), float64(t[1]), float64(t[2]), float64(t[3]*s.alpha))
	screen.DrawImage(s.image, op)
}

func circleImage(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+.5-r, float64(y)+.5-r
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func squareImage(size int) *ebiten.Image {
	img, _ := ebiten.NewImage(size, size, ebiten.FilterDefault)
	_ = img.Fill(color.White)
	return img
}
