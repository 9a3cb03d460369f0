package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// ScaleData is the cosmetic sprite scale (radius / base sprite radius). The
// tween only animates what is drawn; physics always reads OrbData.Radius.
type ScaleData struct {
	Current float32
	Target  float32
	Tween   *gween.Tween
}

var Scale = donburi.NewComponentType[ScaleData]()
