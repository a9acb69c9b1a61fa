package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"git.lost.host/meutraa/eotm/internal/game"
	"git.lost.host/meutraa/eotm/internal/preview"
	"git.lost.host/meutraa/eotm/internal/score"
	"git.lost.host/meutraa/eotm/internal/session"
	"git.lost.host/meutraa/eotm/internal/theme"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

const (
	laneWidth  = 4
	fieldTop   = 2
	flashFrame = 120
)

type DefaultRenderer struct {
	mu           sync.Mutex
	out          io.Writer
	theme        theme.Theme
	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration

	next  session.Handle
	notes map[session.Handle]*note

	columns, rows int
	lanes         int
	laneHeight    float64
	fieldRows     int
	laneCols      []int
	sideCol       int
	previewCol    int
}

type note struct {
	lane int
	kind session.Kind
	row  int
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

func NewRenderer(out io.Writer, th theme.Theme) *DefaultRenderer {
	return &DefaultRenderer{
		out:   out,
		theme: th,
		notes: map[session.Handle]*note{},
	}
}

// Size is the terminal size of out, or 80x24 when out is not a terminal
func (r *DefaultRenderer) Size() (int, int) {
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if columns, rows, err := term.GetSize(int(f.Fd())); nil == err {
			return columns, rows
		}
	}
	return 80, 24
}

func (r *DefaultRenderer) Init() error {
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if nil != err {
			return err
		}
		r.restoreState = state
	}

	fmt.Fprintf(r.out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if f, ok := r.out.(*os.File); ok && nil != r.restoreState {
		return term.Restore(int(f.Fd()), r.restoreState)
	}
	return nil
}

// Layout centres the lanes in a terminal of the given size. The judgement
// line sits two rows above the bottom.
func (r *DefaultRenderer) Layout(columns, rows, lanes int, laneHeight float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.columns, r.rows = columns, rows
	r.lanes = lanes
	r.laneHeight = laneHeight
	r.fieldRows = rows - fieldTop - 2
	if r.fieldRows < 1 {
		r.fieldRows = 1
	}

	left := columns/2 - lanes*laneWidth/2
	if left < 1 {
		left = 1
	}
	r.laneCols = make([]int, lanes)
	for i := range r.laneCols {
		r.laneCols[i] = left + i*laneWidth
	}
	r.sideCol = left - 30
	if r.sideCol < 2 {
		r.sideCol = 2
	}
	r.previewCol = left + lanes*laneWidth + 4
}

// row maps a lane offset to a terminal row, the lane top being fieldTop
func (r *DefaultRenderer) row(offset float64) int {
	return fieldTop + int(math.Round(offset/r.laneHeight*float64(r.fieldRows)))
}

func (r *DefaultRenderer) inField(row int) bool {
	return row >= fieldTop && row < fieldTop+r.fieldRows
}

func (r *DefaultRenderer) Spawn(lane int, kind session.Kind) session.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.notes[r.next] = &note{lane: lane, kind: kind, row: -1}
	return r.next
}

func (r *DefaultRenderer) Reposition(h session.Handle, offset float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.notes[h]; ok {
		n.row = r.row(offset)
	}
}

func (r *DefaultRenderer) Destroy(h session.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, h)
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", len([]rune(stripEscapes(d.Content)))))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func stripEscapes(s string) string {
	var b strings.Builder
	escape := false
	for _, c := range s {
		switch {
		case c == '\033':
			escape = true
		case escape && c == 'm':
			escape = false
		case !escape:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// RenderLoop calls render once per frame period until it returns false
func (r *DefaultRenderer) RenderLoop(framePeriod time.Duration, render func(now time.Time) bool) {
	cont := true
	for cont {
		now := time.Now()
		deadline := now.Add(framePeriod)

		cont = render(now)

		r.tickDecorations()
		r.flush()

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column int, c color.RGBA, message string) {
	r.Fill(row, column, colored(c, message))
}

func colored(c color.RGBA, message string) string {
	return "\033[38;2;" +
		strconv.Itoa(int(c.R)) + ";" +
		strconv.Itoa(int(c.G)) + ";" +
		strconv.Itoa(int(c.B)) + "m" +
		message + "\033[0m"
}

// DrawField clears the lanes and draws every live note and the hit bar
func (r *DefaultRenderer) DrawField(pressed []bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blank := strings.Repeat(" ", laneWidth)
	for row := fieldTop; row < fieldTop+r.fieldRows+1; row++ {
		for _, col := range r.laneCols {
			r.Fill(row, col, blank)
		}
	}

	for _, n := range r.notes {
		if n.lane < 0 || n.lane >= r.lanes || !r.inField(n.row) {
			continue
		}
		sym, c := r.theme.Note(n.lane, r.lanes, n.kind)
		r.FillColor(n.row, r.laneCols[n.lane], c, sym)
	}

	hit := r.row(r.laneHeight)
	for i, col := range r.laneCols {
		down := i < len(pressed) && pressed[i]
		r.Fill(hit+1, col, r.theme.HitField(i, r.lanes, down))
	}
}

func accuracy(a float64) string {
	if math.IsNaN(a) {
		return "  --"
	}
	return fmt.Sprintf("%6.2f%%", a)
}

func (r *DefaultRenderer) DrawHUD(chart *game.Chart, s score.Summary, countdown int) {
	col := r.sideCol
	r.Fill(fieldTop, col, fmt.Sprintf("%-28s", chart.Metadata.Title))
	r.Fill(fieldTop+1, col, fmt.Sprintf("%-28s", chart.Metadata.Artist+" ["+chart.Metadata.Difficulty+"]"))
	r.Fill(fieldTop+3, col, fmt.Sprintf("      Score:  %12s", humanize.Comma(int64(s.Score))))
	r.Fill(fieldTop+4, col, fmt.Sprintf("   Accuracy:  %12s", accuracy(s.Accuracy)))
	r.Fill(fieldTop+5, col, fmt.Sprintf("      Combo:  %12s", humanize.Comma(int64(s.Combo))))
	r.Fill(fieldTop+6, col, fmt.Sprintf("  Max Combo:  %12s", humanize.Comma(int64(s.HighestCombo))))
	r.Fill(fieldTop+7, col, fmt.Sprintf("      Early:  %9.2f ms", s.EarlyError))
	r.Fill(fieldTop+8, col, fmt.Sprintf("       Late:  %9.2f ms", s.LateError))
	for j := game.Marvelous; j <= game.Miss; j++ {
		name, c := r.theme.Judgement(j)
		r.FillColor(fieldTop+10+int(j), col, c, fmt.Sprintf("%s:  %12s", name, humanize.Comma(int64(s.Counts[j]))))
	}

	middle := r.columns / 2
	if countdown > 0 {
		r.Fill(r.rows/2, middle, strconv.Itoa(countdown))
	} else {
		r.Fill(r.rows/2, middle, " ")
	}
}

// DrawPreview draws a remote session as a narrow copy of the lanes
func (r *DefaultRenderer) DrawPreview(v *preview.Viewer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blank := strings.Repeat(" ", r.lanes)
	for row := fieldTop; row < fieldTop+r.fieldRows; row++ {
		r.Fill(row, r.previewCol, blank)
	}
	for _, n := range v.Notes {
		row := r.row(float64(n.PerMille) / 1000 * r.laneHeight)
		if !r.inField(row) || n.Lane >= r.lanes {
			continue
		}
		sym := "•"
		if n.Kind != preview.KindTap {
			sym = "│"
		}
		r.Fill(row, r.previewCol+n.Lane, sym)
	}
	r.Fill(fieldTop+r.fieldRows, r.previewCol, fmt.Sprintf("%s %s x%d",
		humanize.Comma(int64(v.Score)), accuracy(v.Accuracy), v.Combo))
}

// Flash shows a judgement under the lanes for a moment
func (r *DefaultRenderer) Flash(j game.Judgement) {
	name, c := r.theme.Judgement(j)
	r.AddDecoration(r.columns/2-len(name)/2, r.rows/2+2, colored(c, name), flashFrame)
}

func (r *DefaultRenderer) flush() {
	r.out.Write([]byte(r.buffer.String()))
	r.buffer.Reset()
}

var _ Renderer = (*DefaultRenderer)(nil)
