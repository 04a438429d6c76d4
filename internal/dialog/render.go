package dialog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ngenohkevin/smdialog/internal/command"
	"github.com/ngenohkevin/smdialog/internal/process"
	"github.com/ngenohkevin/smdialog/internal/terminal"
)

const (
	tableWidth     = 72
	nameWidth      = 25
	pidWidth       = 10
	timestampWidth = 18
	timeLayout     = "02-01-2006 15:04:05"
)

// menuLayout groups the actions into the lines of the menu
var menuLayout = [][]command.Action{
	{command.ActionRestart, command.ActionStart, command.ActionStop},
	{command.ActionStopAbnormal, command.ActionStopShutdown},
	{command.ActionModifyCommand, command.ActionModifyPath},
	{command.ActionAutostartOn, command.ActionAutostartOff},
	{command.ActionQuit, command.ActionRefresh},
}

// Header is the connection summary printed above the table
type Header struct {
	Host    string
	Phrase  string
	Version string
}

type styles struct {
	running lipgloss.Style
	stopped lipgloss.Style
	title   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		running: r.NewStyle().Foreground(lipgloss.Color("10")),
		stopped: r.NewStyle().Foreground(lipgloss.Color("9")),
		title:   r.NewStyle().Bold(true),
	}
}

func (s styles) status(rec process.Record) string {
	code := rec.Status
	if code == "" {
		code = " "
	}
	if rec.Running() {
		return s.running.Render(code)
	}
	return s.stopped.Render(code)
}

// renderTable clears the screen and draws the header and process table
func renderTable(w io.Writer, st styles, h Header, now time.Time, table *process.Table) {
	terminal.ClearScreen(w)
	rule := strings.Repeat("-", tableWidth)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\t\t       %s  %s\n", st.title.Render("Host:"), h.Host, st.title.Render("Phrase:"), h.Phrase)
	if h.Version != "" {
		fmt.Fprintf(w, "Client version: %s\n", h.Version)
	}
	fmt.Fprintf(w, "%55s\n", "Current time: "+now.Format(timeLayout))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "| %2s | %s | %1s | %s | %s | \n",
		"#",
		runewidth.FillLeft("Process Name", nameWidth),
		"",
		runewidth.FillLeft("PID", pidWidth),
		runewidth.FillLeft("Timestamp", timestampWidth),
	)
	fmt.Fprintln(w, rule)

	for i, rec := range table.Records() {
		fmt.Fprintf(w, "| %2d | %s | %s | %s | %s | \n",
			i+1,
			cell(rec.Name, nameWidth),
			st.status(rec),
			runewidth.FillLeft(rec.PID, pidWidth),
			runewidth.FillLeft(rec.Timestamp, timestampWidth),
		)
	}

	fmt.Fprintln(w, rule)
}

// cell pads s to width display columns; longer values are printed in full
func cell(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func renderMenu(w io.Writer) {
	fmt.Fprintln(w)
	for i, row := range menuLayout {
		items := make([]string, len(row))
		for j, a := range row {
			items[j] = fmt.Sprintf("%s - %s", a, a.Label())
		}
		prefix := "         "
		if i == 0 {
			prefix = "Actions: "
		}
		fmt.Fprintln(w, prefix+strings.Join(items, ", "))
	}
}
