package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const zoomMax = 4.0

// camera maps world px to viewport px with a pan centre and a zoom factor.
// The viewport is fixed at the world size times the fit zoom, so zooming
// never reveals anything beyond the map edge.
type camera struct {
	worldW, worldH float64
	vpW, vpH       float64
	minZoom        float64
	x, y           float64 // world-space centre
	zoom           float64
}

func newCamera(worldW, worldH, fit float64) camera {
	c := camera{
		worldW:  worldW,
		worldH:  worldH,
		vpW:     worldW * fit,
		vpH:     worldH * fit,
		minZoom: fit,
		x:       worldW / 2,
		y:       worldH / 2,
		zoom:    fit,
	}
	return c
}

func (c *camera) geoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-c.x, -c.y)
	m.Scale(c.zoom, c.zoom)
	m.Translate(c.vpW/2, c.vpH/2)
	return m
}

// toWorld converts viewport px to world px.
func (c *camera) toWorld(vx, vy float64) (float64, float64) {
	return (vx-c.vpW/2)/c.zoom + c.x, (vy-c.vpH/2)/c.zoom + c.y
}

// inViewport reports whether a viewport point lies on the battlefield.
func (c *camera) inViewport(vx, vy float64) bool {
	return vx >= 0 && vy >= 0 && vx < c.vpW && vy < c.vpH
}

func (c *camera) pan(dx, dy float64) {
	c.x += dx / c.zoom
	c.y += dy / c.zoom
	c.clamp()
}

func (c *camera) zoomBy(f float64) {
	c.zoom = math.Min(math.Max(c.zoom*f, c.minZoom), zoomMax)
	c.clamp()
}

// clamp keeps the visible rectangle inside the map.
func (c *camera) clamp() {
	halfW := c.vpW / 2 / c.zoom
	halfH := c.vpH / 2 / c.zoom
	c.x = math.Min(math.Max(c.x, halfW), c.worldW-halfW)
	c.y = math.Min(math.Max(c.y, halfH), c.worldH-halfH)
}
