// Package console is the debug text overlay drawn at the end of each frame.
//
// Info lines are one-shot: they are drawn by the next Render and then
// dropped. Debug lines stay until ClearDebug. While the console is
// disabled both are ignored and nothing is drawn.
package console

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// TextDrawer draws lines of text in screen space.
type TextDrawer interface {
	LineHeight() float32
	DrawText(text string, x, y float32, color mgl32.Vec4)
	Flush(projection mgl32.Mat4)
}

var (
	InfoColor  = mgl32.Vec4{1, 1, 1, 1}
	DebugColor = mgl32.Vec4{0.6, 1, 0.6, 1}
)

// Margin is the left and top padding in pixels.
const Margin = 10

type Console struct {
	enabled bool
	infos   []string
	debugs  []string
	drawer  TextDrawer
}

// New returns a console drawing through drawer. drawer may be nil, in
// which case lines are collected but never drawn.
func New(drawer TextDrawer, enabled bool) *Console {
	return &Console{drawer: drawer, enabled: enabled}
}

// SetDrawer replaces the text drawer.
func (c *Console) SetDrawer(d TextDrawer) { c.drawer = d }

func (c *Console) Info(text string) {
	if c.enabled {
		c.infos = append(c.infos, text)
	}
}

func (c *Console) Infof(format string, args ...any) {
	if c.enabled {
		c.infos = append(c.infos, fmt.Sprintf(format, args...))
	}
}

func (c *Console) Debug(text string) {
	if c.enabled {
		c.debugs = append(c.debugs, text)
	}
}

func (c *Console) Debugf(format string, args ...any) {
	if c.enabled {
		c.debugs = append(c.debugs, fmt.Sprintf(format, args...))
	}
}

func (c *Console) Toggle()            { c.enabled = !c.enabled }
func (c *Console) SetEnabled(on bool) { c.enabled = on }
func (c *Console) Enabled() bool      { return c.enabled }

// Clear drops pending info lines.
func (c *Console) Clear() { c.infos = c.infos[:0] }

// ClearDebug drops debug lines.
func (c *Console) ClearDebug() { c.debugs = c.debugs[:0] }

// Lines returns debug lines followed by info lines, with embedded
// newlines split out.
func (c *Console) Lines() []string {
	var lines []string
	for _, group := range [][]string{c.debugs, c.infos} {
		for _, text := range group {
			lines = append(lines, strings.Split(text, "\n")...)
		}
	}
	return lines
}

// Render draws all lines top-down from the top-left corner of a viewport
// of the given height and then clears the info lines.
func (c *Console) Render(ortho mgl32.Mat4, height float32) {
	if !c.enabled {
		return
	}
	defer c.Clear()
	if c.drawer == nil || (len(c.infos) == 0 && len(c.debugs) == 0) {
		return
	}

	lh := c.drawer.LineHeight()
	y := height - Margin - lh
	for _, group := range []struct {
		lines []string
		color mgl32.Vec4
	}{{c.debugs, DebugColor}, {c.infos, InfoColor}} {
		for _, text := range group.lines {
			for _, line := range strings.Split(text, "\n") {
				c.drawer.DrawText(line, Margin, y, group.color)
				y -= lh
			}
		}
	}
	c.drawer.Flush(ortho)
}
