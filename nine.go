package main

import (
	"image"

	"github.com/hajimehoshi/ebiten"
)

// Nine is a nine-slice panel. Its visible width follows the fill amount, so
// the same type serves the fading panel and the fill bar.
type Nine struct {
	images              *ebiten.Image
	alpha               float32
	fill                float32
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	scaleCenterWidth    float64
	scaleCenterHeight   float64
	targetPositions     [4][2]float64
}

func NewNine(img *ebiten.Image, scale float64) *Nine {
	w, h := img.Size()
	return &Nine{
		images: img,
		alpha:  1,
		fill:   1,
		R:      1, G: 1, B: 1, Scale: scale,
		positions: [4][2]int{{0, 0}, {w / 2, h / 2}, {w/2 + 1, h/2 + 1}, {w, h}},
	}
}

func (n *Nine) Alpha() float32     { return n.alpha }
func (n *Nine) SetAlpha(a float32) { n.alpha = a }
func (n *Nine) Fill() float32      { return n.fill }

func (n *Nine) SetFill(f float32) {
	n.fill = f
	n.layout()
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.layout()
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.layout()
}

func (n *Nine) layout() {
	width := float64(n.width) * float64(n.fill)
	left := n.Scale * float64(n.positions[1][0])
	right := n.Scale * float64(n.positions[3][0]-n.positions[2][0])
	if least := left + right; width < least {
		width = least
	}
	n.targetPositions[0][0] = float64(n.x)
	n.targetPositions[0][1] = float64(n.y)

	n.targetPositions[1][0] = float64(n.x) + left
	n.targetPositions[1][1] = float64(n.y) + n.Scale*float64(n.positions[1][1])

	n.targetPositions[2][0] = float64(n.x) + width - right
	n.targetPositions[2][1] = float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1])

	innerWidth := n.targetPositions[2][0] - n.targetPositions[1][0]
	innerHigh := n.targetPositions[2][1] - n.targetPositions[1][1]

	n.scaleCenterWidth = innerWidth / float64(n.positions[2][0]-n.positions[1][0])
	n.scaleCenterHeight = innerHigh / float64(n.positions[2][1]-n.positions[1][1])
}

func (n *Nine) Draw(screen *ebiten.Image) {
	if n.alpha <= 0 {
		return
	}
	scaleX := [3]float64{n.Scale, n.scaleCenterWidth, n.Scale}
	scaleY := [3]float64{n.Scale, n.scaleCenterHeight, n.Scale}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scaleX[col], scaleY[row])
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, float64(n.alpha))
			src := image.Rect(n.positions[col][0], n.positions[row][1], n.positions[col+1][0], n.positions[row+1][1])
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
