package cmd

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/core/domain"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Interactive risk matrix (asset type × risk level)",
	Long: `Open a full-screen risk matrix counting assets per type and risk level.

Navigation:
- ←↓↑→ / hjkl : Move between cells
- Enter       : Drill into a cell to list its assets
- Backspace   : Back to the matrix
- q / Esc     : Quit`,
	RunE: runMatrix,
}

func runMatrix(cmd *cobra.Command, args []string) error {
	gen, err := loadGeneration(getContext())
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}

	view, err := NewMatrixView(screen, buildRiskMatrix(gen.Fleet.Assets()), generationLine(gen))
	if err != nil {
		return err
	}
	return view.Run()
}

// riskMatrix buckets assets by type (rows) and risk level (columns).
// Each cell keeps fleet order.
type riskMatrix struct {
	rows  []string
	cols  []domain.RiskLevel
	cells [][][]domain.AssetRecord
}

func buildRiskMatrix(assets []domain.AssetRecord) *riskMatrix {
	m := &riskMatrix{
		rows: append([]string(nil), domain.AssetTypes...),
		cols: domain.AllRiskLevels(),
	}

	rowIndex := make(map[string]int, len(m.rows))
	for i, t := range m.rows {
		rowIndex[t] = i
	}

	m.cells = make([][][]domain.AssetRecord, len(m.rows))
	for i := range m.cells {
		m.cells[i] = make([][]domain.AssetRecord, len(m.cols))
	}

	for _, a := range assets {
		r, ok := rowIndex[a.Type]
		if !ok {
			m.rows = append(m.rows, a.Type)
			m.cells = append(m.cells, make([][]domain.AssetRecord, len(m.cols)))
			r = len(m.rows) - 1
			rowIndex[a.Type] = r
		}
		c := a.RiskLevel.Severity()
		// Severity runs 3..1 for CRITICAL..MEDIUM, matching column order
		col := len(m.cols) - c
		if col < 0 || col >= len(m.cols) {
			continue
		}
		m.cells[r][col] = append(m.cells[r][col], a)
	}

	return m
}

// Count returns the number of assets in a cell
func (m *riskMatrix) Count(r, c int) int {
	return len(m.cells[r][c])
}

// Max returns the largest cell count
func (m *riskMatrix) Max() int {
	maxCount := 0
	for r := range m.cells {
		for c := range m.cells[r] {
			if n := len(m.cells[r][c]); n > maxCount {
				maxCount = n
			}
		}
	}
	return maxCount
}

// MatrixView provides a terminal-based interactive risk matrix
type MatrixView struct {
	matrix        *riskMatrix
	caption       string
	screen        tcell.Screen
	width         int
	height        int
	row           int
	col           int
	drilled       bool
	selectedIndex int
	scrollOffset  int
}

// NewMatrixView initializes screen and returns a viewer over matrix
func NewMatrixView(screen tcell.Screen, matrix *riskMatrix, caption string) (*MatrixView, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}

	width, height := screen.Size()

	return &MatrixView{
		matrix:  matrix,
		caption: caption,
		screen:  screen,
		width:   width,
		height:  height,
	}, nil
}

// Run starts the interactive viewer
func (v *MatrixView) Run() error {
	defer v.screen.Fini()

	v.screen.Clear()
	v.render()

	for {
		ev := v.screen.PollEvent()

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.width, v.height = ev.Size()
			v.screen.Sync()
			v.render()

		case *tcell.EventKey:
			if v.handleKeyPress(ev) {
				return nil
			}
			v.render()
		}
	}
}

// handleKeyPress processes keyboard input and reports whether to quit
func (v *MatrixView) handleKeyPress(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
		return true
	}

	if v.drilled {
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyBackspace, ev.Key() == tcell.KeyBackspace2, ev.Rune() == 'h':
			v.drilled = false
		case ev.Key() == tcell.KeyUp, ev.Rune() == 'k':
			v.moveSelection(-1)
		case ev.Key() == tcell.KeyDown, ev.Rune() == 'j':
			v.moveSelection(1)
		}
		return false
	}

	switch {
	case ev.Key() == tcell.KeyEscape:
		return true
	case ev.Key() == tcell.KeyUp, ev.Rune() == 'k':
		v.moveCell(-1, 0)
	case ev.Key() == tcell.KeyDown, ev.Rune() == 'j':
		v.moveCell(1, 0)
	case ev.Key() == tcell.KeyLeft, ev.Rune() == 'h':
		v.moveCell(0, -1)
	case ev.Key() == tcell.KeyRight, ev.Rune() == 'l':
		v.moveCell(0, 1)
	case ev.Key() == tcell.KeyEnter:
		if v.matrix.Count(v.row, v.col) > 0 {
			v.drilled = true
			v.selectedIndex = 0
			v.scrollOffset = 0
		}
	}
	return false
}

// moveCell moves the cell cursor, clamped to the grid
func (v *MatrixView) moveCell(dr, dc int) {
	v.row = clamp(v.row+dr, 0, len(v.matrix.rows)-1)
	v.col = clamp(v.col+dc, 0, len(v.matrix.cols)-1)
}

// moveSelection moves the cursor inside a drilled cell
func (v *MatrixView) moveSelection(delta int) {
	n := v.matrix.Count(v.row, v.col)
	if n == 0 {
		return
	}
	v.selectedIndex = clamp(v.selectedIndex+delta, 0, n-1)

	visibleLines := v.height - 6 // Reserve space for header/footer
	if visibleLines < 1 {
		visibleLines = 1
	}
	if v.selectedIndex < v.scrollOffset {
		v.scrollOffset = v.selectedIndex
	}
	if v.selectedIndex >= v.scrollOffset+visibleLines {
		v.scrollOffset = v.selectedIndex - visibleLines + 1
	}
}

// render draws the interface
func (v *MatrixView) render() {
	v.screen.Clear()

	if v.drilled {
		v.renderCell()
	} else {
		v.renderGrid()
	}

	v.screen.Show()
}

func riskColor(level domain.RiskLevel) tcell.Color {
	return tcell.GetColor(level.Color())
}

func (v *MatrixView) renderGrid() {
	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorPurple)
	mutedStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	v.drawText(0, 0, "┌─ Risk Matrix", titleStyle)
	v.drawText(0, 1, "│  "+v.caption, mutedStyle)
	v.drawText(0, 2, "└─────────────────────────────────────────────────────────────", mutedStyle)

	const labelWidth = 18
	const cellWidth = 12

	y := 4
	for c, level := range v.matrix.cols {
		v.drawText(labelWidth+c*cellWidth, y, fmt.Sprintf("%-*s", cellWidth, level), tcell.StyleDefault.Bold(true).Foreground(riskColor(level)))
	}
	y++

	maxCount := v.matrix.Max()
	for r, name := range v.matrix.rows {
		v.drawText(0, y, truncate(name, labelWidth-2), tcell.StyleDefault)
		for c, level := range v.matrix.cols {
			n := v.matrix.Count(r, c)
			style := tcell.StyleDefault.Foreground(riskColor(level))
			if maxCount > 0 && n*2 >= maxCount {
				style = style.Bold(true)
			}
			text := fmt.Sprintf(" %4d ", n)
			if r == v.row && c == v.col {
				style = style.Reverse(true)
				text = fmt.Sprintf("▶%4d ", n)
			}
			v.drawText(labelWidth+c*cellWidth, y, text, style)
		}
		y++
	}

	v.drawFooter("←↓↑→/hjkl: Move │ Enter: Drill down │ q/Esc: Quit")
}

func (v *MatrixView) renderCell() {
	level := v.matrix.cols[v.col]
	assets := v.matrix.cells[v.row][v.col]

	header := fmt.Sprintf("┌─ %s × %s (%d)", v.matrix.rows[v.row], level, len(assets))
	v.drawText(0, 0, header, tcell.StyleDefault.Bold(true).Foreground(riskColor(level)))
	v.drawText(0, 1, "└─────────────────────────────────────────────────────────────", tcell.StyleDefault.Foreground(tcell.ColorGray))

	y := 3
	visibleLines := v.height - 6
	for i := v.scrollOffset; i < len(assets) && i < v.scrollOffset+visibleLines; i++ {
		a := assets[i]
		style := tcell.StyleDefault
		prefix := "  "
		if i == v.selectedIndex {
			style = style.Reverse(true)
			prefix = "▶ "
		}
		line := fmt.Sprintf("%s%s  %6s  %4dd  %-8s %s", prefix, a.ID, a.FailurePercent(), a.DaysToFailure, a.VoltageLevel, a.Location)
		v.drawText(0, y, line, style)
		y++
	}

	v.drawFooter("↑↓/jk: Navigate │ Backspace/h: Back │ q: Quit")
}

func (v *MatrixView) drawFooter(help string) {
	footerY := v.height - 2
	v.drawText(0, footerY, strings.Repeat("─", v.width), tcell.StyleDefault.Foreground(tcell.ColorGray))
	v.drawText(0, footerY+1, help, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

// drawText draws text at the specified position
func (v *MatrixView) drawText(x, y int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		if x+i >= v.width {
			break
		}
		v.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
