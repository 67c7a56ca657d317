package tokens

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tokengrid/internal/core"
	"github.com/vovakirdan/tokengrid/internal/world"
)

const (
	cellWidth = 4 // marker column + three value columns
	hudHeight = 2
)

// boardLayout holds the screen geometry of the grid for the current size.
type boardLayout struct {
	n      int // cells per side
	board  core.Rect
	innerX int
	innerY int
	minW   int
	minH   int
}

// layout computes where the grid sits on screen. It depends only on the
// screen size and window radius, so clicks map the same way Render draws.
func (g *Game) layout() boardLayout {
	n := 2*g.cfg.WindowRadius + 1
	boardW := n*cellWidth + 2
	boardH := n + 2
	boardX := max((g.screenW-boardW)/2, 0)

	return boardLayout{
		n:      n,
		board:  core.NewRect(boardX, hudHeight, boardW, boardH),
		innerX: boardX + 1,
		innerY: hudHeight + 1,
		minW:   boardW,
		minH:   hudHeight + boardH + 1, // status line
	}
}

// coordAtCell maps a grid row/column to a world coordinate.
// Row 0 is the northern edge, column 0 the western edge.
func (g *Game) coordAtCell(row, col int) world.Coord {
	r := g.cfg.WindowRadius
	return world.C(g.position.I+r-row, g.position.J-r+col)
}

// CoordAt maps a screen position to the grid coordinate drawn there.
func (g *Game) CoordAt(p core.Point) (world.Coord, bool) {
	if g.tooSmall {
		return world.Coord{}, false
	}
	l := g.layout()
	dx := p.X - l.innerX
	dy := p.Y - l.innerY
	if dx < 0 || dy < 0 || dx >= l.n*cellWidth || dy >= l.n {
		return world.Coord{}, false
	}
	return g.coordAtCell(dy, dx/cellWidth), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderBoard(dst, l)
	g.renderStatus(dst, l)
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	l := g.layout()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, please resize terminal", l.minW, l.minH), core.ColorGray)
}

// renderHUD draws the title, position and held token.
func (g *Game) renderHUD(dst *core.Screen, l boardLayout) {
	x := l.board.X
	right := l.board.Right()

	dst.DrawTextColor(x, 0, g.Title(), core.ColorBrightWhite)
	goal := fmt.Sprintf("Goal: %d", g.cfg.GoalValue)
	dst.DrawTextColor(right-len(goal), 0, goal, core.ColorMagenta)

	pos := fmt.Sprintf("Pos %s", g.position)
	if g.tileDegrees > 0 {
		pos += fmt.Sprintf(" (%.4f, %.4f)",
			float64(g.position.I)*g.tileDegrees, float64(g.position.J)*g.tileDegrees)
	}
	dst.DrawText(x, 1, pos)

	score := fmt.Sprintf("Score: %d", g.session.Score())
	dst.DrawText(right-len(score), 1, score)

	heldLabel := "Held: "
	heldX := x + len(pos) + 3
	if heldX+len(heldLabel)+4 < right-len(score) {
		dst.DrawText(heldX, 1, heldLabel)
		if g.held == world.NoToken {
			dst.DrawTextColor(heldX+len(heldLabel), 1, "-", core.ColorGray)
		} else {
			dst.DrawTextColor(heldX+len(heldLabel), 1, strconv.Itoa(g.held), core.TokenColor(g.held))
		}
	}
}

// renderBoard draws the window of cells around the player.
func (g *Game) renderBoard(dst *core.Screen, l boardLayout) {
	dst.DrawBox(l.board, core.ColorGray)

	cursor := g.Cursor()
	for row := 0; row < l.n; row++ {
		for col := 0; col < l.n; col++ {
			c := g.coordAtCell(row, col)
			x := l.innerX + col*cellWidth
			y := l.innerY + row
			inRange := g.session.InRange(c)

			g.drawCell(dst, x, y, g.tiles[c], inRange)

			isPlayer := c == g.position
			isCursor := c == cursor
			switch {
			case isPlayer && isCursor:
				dst.SetColor(x, y, '@', core.ColorBrightGreen)
			case isPlayer:
				dst.SetColor(x, y, '@', core.ColorGreen)
			case isCursor:
				dst.SetColor(x, y, '>', core.ColorBrightWhite)
			}
		}
	}
}

// drawCell draws one cell's value right-aligned after its marker column.
func (g *Game) drawCell(dst *core.Screen, x, y, value int, inRange bool) {
	if value == 0 {
		color := core.ColorGray
		if inRange {
			color = core.ColorWhite
		}
		dst.SetColor(x+cellWidth-2, y, '·', color)
		return
	}

	color := core.ColorGray
	if inRange {
		color = core.TokenColor(value)
	}
	text := strconv.Itoa(value)
	dst.DrawTextColor(x+cellWidth-len(text), y, text, color)
}

// renderStatus draws the status line below the board.
func (g *Game) renderStatus(dst *core.Screen, l boardLayout) {
	if status := g.Status(); status != "" {
		dst.DrawTextColor(l.board.X, l.board.Bottom(), status, g.statusColor)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, l boardLayout) {
	centerX := l.board.X + l.board.W/2
	centerY := l.board.Y + l.board.H/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.session.GoalReached() {
		snap := g.session.Snapshot()
		g.drawOverlay(dst, centerX, centerY,
			"GOAL REACHED!",
			fmt.Sprintf("Crafted %d in %d moves", snap.BestCrafted, snap.Moves),
			fmt.Sprintf("Score: %d", snap.Score),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawTextColor(x, boxY+1+i, line, core.ColorBrightWhite)
	}
}
