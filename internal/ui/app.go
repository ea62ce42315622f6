// Package ui is a terminal browser for the routing model: operations grouped
// by path, with their controller action, flattened parameters, responses and
// JSON examples.
package ui

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jroimartin/gocui"

	"railsgen/internal/httpclient"
	"railsgen/internal/model"
)

type screen int

const (
	screenOperations screen = iota
	screenDetail
)

// App holds the browser state.
type App struct {
	g *gocui.Gui

	scr screen

	title string
	ops   []*model.Operation

	filter   string
	filtered []int
	selected int

	active   *model.Operation
	errorMsg string
}

// NewApp builds a browser over the operations of groups, in group order.
func NewApp(title string, groups []*model.PathGroup) *App {
	a := &App{title: title, scr: screenOperations}
	for _, g := range groups {
		a.ops = append(a.ops, g.Operations...)
	}
	a.recomputeFilter()
	return a
}

// Run starts the main loop until the user quits.
func (a *App) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()
	a.g = g

	g.BgColor = gocui.ColorBlack
	g.FgColor = gocui.ColorWhite
	g.InputEsc = true
	g.SetManagerFunc(a.layout)

	if err := a.bindKeys(); err != nil {
		return err
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("header", 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		fmt.Fprintln(v, colorGreen+"railsgen"+colorReset+"  -  "+a.title)
	}

	if v, err := g.SetView("footer", 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
	}
	a.renderFooter()

	switch a.scr {
	case screenOperations:
		return a.layoutOperations(maxX, maxY)
	case screenDetail:
		return a.layoutDetail(maxX, maxY)
	default:
		return nil
	}
}

func (a *App) layoutOperations(maxX, maxY int) error {
	a.clearMainViews([]string{"filter", "operations"})

	if v, err := a.g.SetView("filter", 0, 2, maxX-1, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Filter"
	}
	if v, err := a.g.SetView("operations", 0, 4, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Operations"
		v.Highlight = true
		v.SelFgColor = gocui.ColorBlack
		v.SelBgColor = gocui.ColorGreen
	}
	a.renderFilter()
	a.renderOperations()
	_, err := a.g.SetCurrentView("operations")
	return err
}

func (a *App) layoutDetail(maxX, maxY int) error {
	a.clearMainViews([]string{"detail"})

	if v, err := a.g.SetView("detail", 0, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Operation"
	}
	a.renderDetail()
	_, err := a.g.SetCurrentView("detail")
	return err
}

func (a *App) clearMainViews(keep []string) {
	keepSet := map[string]bool{"header": true, "footer": true}
	for _, k := range keep {
		keepSet[k] = true
	}
	for _, n := range []string{"filter", "operations", "detail"} {
		if keepSet[n] {
			continue
		}
		if _, err := a.g.View(n); err == nil {
			_ = a.g.DeleteView(n)
		}
	}
}

func (a *App) bindKeys() error {
	g := a.g
	bindings := []struct {
		view string
		key  any
		fn   func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, a.quit},
		{"", gocui.KeyEsc, a.back},
		{"operations", gocui.KeyArrowDown, a.moveSel(1)},
		{"operations", gocui.KeyArrowUp, a.moveSel(-1)},
		{"operations", gocui.KeyEnter, a.openDetail},
		{"operations", gocui.KeyBackspace, a.filterBackspace},
		{"operations", gocui.KeyBackspace2, a.filterBackspace},
		{"detail", gocui.KeyArrowDown, a.scrollDetail(1)},
		{"detail", gocui.KeyArrowUp, a.scrollDetail(-1)},
		{"detail", gocui.KeyEnter, a.back},
		{"detail", 'q', a.quit},
	}
	for _, b := range bindings {
		if err := g.SetKeybinding(b.view, b.key, gocui.ModNone, b.fn); err != nil {
			return err
		}
	}

	// number shortcuts 1-5 for quick selection
	for i := 1; i <= 5; i++ {
		if err := g.SetKeybinding("operations", rune('0'+i), gocui.ModNone, a.selectByNumber(i)); err != nil {
			return err
		}
	}
	// printable ASCII goes to the filter
	for r := rune(32); r <= rune(126); r++ {
		if r >= '1' && r <= '5' {
			continue
		}
		if err := g.SetKeybinding("operations", r, gocui.ModNone, a.appendFilterRune(r)); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) quit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

func (a *App) back(*gocui.Gui, *gocui.View) error {
	switch a.scr {
	case screenDetail:
		a.scr = screenOperations
		a.active = nil
	case screenOperations:
		if a.filter == "" {
			return gocui.ErrQuit
		}
		a.filter = ""
		a.recomputeFilter()
	}
	a.errorMsg = ""
	return nil
}

func (a *App) appendFilterRune(r rune) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		if a.scr != screenOperations {
			return nil
		}
		a.filter += string(r)
		a.recomputeFilter()
		a.renderFilter()
		a.renderOperations()
		return nil
	}
}

func (a *App) filterBackspace(*gocui.Gui, *gocui.View) error {
	if a.scr != screenOperations || len(a.filter) == 0 {
		return nil
	}
	a.filter = a.filter[:len(a.filter)-1]
	a.recomputeFilter()
	a.renderFilter()
	a.renderOperations()
	return nil
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(_ *gocui.Gui, v *gocui.View) error {
		if a.scr != screenOperations || len(a.filtered) == 0 {
			return nil
		}
		a.selected += delta
		if a.selected < 0 {
			a.selected = 0
		}
		if a.selected >= len(a.filtered) {
			a.selected = len(a.filtered) - 1
		}
		if v != nil {
			_ = v.SetCursor(0, a.selected)
		}
		return nil
	}
}

func (a *App) openDetail(*gocui.Gui, *gocui.View) error {
	if a.scr != screenOperations || len(a.filtered) == 0 {
		return nil
	}
	a.active = a.ops[a.filtered[a.selected]]
	a.scr = screenDetail
	a.errorMsg = ""
	return nil
}

func (a *App) selectByNumber(num int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.scr != screenOperations {
			return nil
		}
		idx := num - 1
		if idx >= len(a.filtered) {
			return nil
		}
		a.selected = idx
		return a.openDetail(g, v)
	}
}

func (a *App) scrollDetail(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(_ *gocui.Gui, v *gocui.View) error {
		if a.scr != screenDetail || v == nil {
			return nil
		}
		ox, oy := v.Origin()
		if delta > 0 {
			return v.SetOrigin(ox, oy+1)
		}
		if oy > 0 {
			return v.SetOrigin(ox, oy-1)
		}
		return nil
	}
}

func (a *App) renderFooter() {
	v, err := a.g.View("footer")
	if err != nil {
		return
	}
	v.Clear()
	msg := a.errorMsg
	if msg == "" {
		switch a.scr {
		case screenOperations:
			msg = "type: filter   1-5: quick select   enter: details   esc: clear/quit   ctrl+c: quit"
		case screenDetail:
			msg = "up/down: scroll   enter/esc: back   q: quit"
		}
	}
	fmt.Fprint(v, msg)
}

func (a *App) renderFilter() {
	v, err := a.g.View("filter")
	if err != nil {
		return
	}
	v.Clear()
	fmt.Fprint(v, a.filter)
}

func (a *App) renderOperations() {
	v, err := a.g.View("operations")
	if err != nil {
		return
	}
	v.Clear()
	for i, idx := range a.filtered {
		fmt.Fprintln(v, operationLine(i, a.ops[idx]))
	}
	_ = v.SetCursor(0, a.selected)
}

func (a *App) renderDetail() {
	v, err := a.g.View("detail")
	if err != nil || a.active == nil {
		return
	}
	v.Clear()
	fmt.Fprint(v, detailText(a.active))
}

func (a *App) recomputeFilter() {
	a.filtered = filterOperations(a.ops, a.filter)
	if a.selected >= len(a.filtered) {
		a.selected = 0
	}
}

// filterOperations returns the indexes of ops matching needle, best match
// first. An empty needle keeps every operation in order.
func filterOperations(ops []*model.Operation, needle string) []int {
	needle = strings.TrimSpace(needle)
	out := make([]int, 0, len(ops))
	if needle == "" {
		for i := range ops {
			out = append(out, i)
		}
		return out
	}

	var scored []scoredIdx
	for i, op := range ops {
		cand := op.Method + " " + op.Path + " " + op.Controller + "#" + op.OperationID
		if s, ok := fuzzyMatchScore(needle, cand); ok {
			scored = append(scored, scoredIdx{idx: i, score: s})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score == scored[j].score {
			return scored[i].idx < scored[j].idx
		}
		return scored[i].score < scored[j].score
	})
	for _, s := range scored {
		out = append(out, s.idx)
	}
	return out
}

func operationLine(i int, op *model.Operation) string {
	prefix := "  "
	if i < 5 {
		prefix = fmt.Sprintf("%d ", i+1)
	}
	label := strings.ToLower(op.Controller) + "#" + op.OperationID
	if op.Summary != "" {
		label += " - " + op.Summary
	}
	return fmt.Sprintf("%s%s  %s  %s", prefix, colorizeMethod(op.Method), highlightPathParams(op.Path), label)
}

// detailText describes one operation the way the controller action sees it.
func detailText(op *model.Operation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", colorizeMethod(strings.ToUpper(op.Method)), highlightPathParams(op.Path))
	fmt.Fprintf(&sb, "action: %s#%s\n", op.Controller, op.OperationID)
	if op.Summary != "" {
		fmt.Fprintf(&sb, "summary: %s\n", op.Summary)
	}
	if op.Notes != "" {
		fmt.Fprintf(&sb, "notes: %s\n", op.Notes)
	}

	sb.WriteString("\nparameters:\n")
	if !op.HasParams() {
		sb.WriteString(colorDim + "  (none)" + colorReset + "\n")
	}
	for _, prm := range op.AllParams {
		req := ""
		if prm.Required {
			req = "*"
		}
		fmt.Fprintf(&sb, "  %s%s (%s, %s) <- %s\n", req, prm.Name, prm.DataType, prm.In, prm.BaseName)
	}

	if len(op.Responses) > 0 {
		sb.WriteString("\nresponses:\n")
		for _, r := range op.Responses {
			line := r.Code
			if r.Message != "" {
				line += " " + r.Message
			}
			if r.DataType != "" {
				line += " [" + r.DataType + "]"
			}
			fmt.Fprintf(&sb, "  %s\n", colorizeStatus(line))
		}
	}

	for _, ex := range op.Examples {
		fmt.Fprintf(&sb, "\nexample (%s):\n", ex.ContentType)
		sb.WriteString(httpclient.FormatBody(ex.ContentType, []byte(ex.Example)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ansi colors
const (
	colorDim     = "\033[90m"
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func colorizeMethod(method string) string {
	var color string
	switch strings.ToUpper(method) {
	case "GET":
		color = colorBlue
	case "POST":
		color = colorGreen
	case "PUT":
		color = colorYellow
	case "DELETE":
		color = colorRed
	case "PATCH":
		color = colorCyan
	case "HEAD":
		color = colorMagenta
	default:
		color = colorReset
	}
	return color + padRight(strings.ToUpper(method), 6) + colorReset
}

func colorizeStatus(status string) string {
	code := strings.Fields(status)
	if len(code) == 0 {
		return status
	}
	var color string
	switch {
	case code[0] == "default":
		color = colorDim
	case strings.HasPrefix(code[0], "2"):
		color = colorGreen
	case strings.HasPrefix(code[0], "4"):
		color = colorYellow
	case strings.HasPrefix(code[0], "5"):
		color = colorRed
	default:
		color = colorReset
	}
	return color + status + colorReset
}

var pathParam = regexp.MustCompile(`\{([^}]+)\}`)

func highlightPathParams(path string) string {
	return pathParam.ReplaceAllString(path, colorCyan+"{$1}"+colorReset)
}
