package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"goocsv/pkg/config"
	"goocsv/pkg/csvio"
	"goocsv/pkg/nav"
	"goocsv/pkg/search"
	"goocsv/pkg/table"
)

const (
	pageMain   = "main"
	pageModal  = "modal"
	pagePrompt = "prompt"
	pageSearch = "search"
)

type ui struct {
	app    *tview.Application
	pages  *tview.Pages
	cfg    config.Config
	theme  config.Theme
	logger *log.Logger

	nav      *nav.Controller
	search   *search.Session
	filename string

	rowLabel  *tview.TextView
	columnBar *tview.Flex
	fieldArea *tview.Flex
	status    *tview.TextView
	log       *tview.TextView

	fields      []*tview.TextArea
	fieldCols   []int
	activeField int
	// loading suppresses change callbacks while the UI itself sets field text.
	loading bool

	logLines  []string
	lastLog   string
	lastCount int
}

func newUI(app *tview.Application, cfg config.Config, theme config.Theme, logger *log.Logger) *ui {
	u := &ui{
		app:         app,
		cfg:         cfg,
		theme:       theme,
		logger:      logger,
		nav:         nav.New(table.New()),
		search:      search.NewSession(),
		activeField: -1,
	}

	u.rowLabel = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	u.rowLabel.SetBackgroundColor(theme.HeaderBg)
	u.rowLabel.SetTextColor(theme.Accent)

	u.columnBar = tview.NewFlex().SetDirection(tview.FlexColumn)
	u.columnBar.SetBorder(true).SetTitle(" Column Visibility ")
	u.applyBoxTheme(u.columnBar.Box)

	u.fieldArea = tview.NewFlex().SetDirection(tview.FlexColumn)
	u.fieldArea.SetBackgroundColor(theme.Surface)

	u.log = tview.NewTextView().
		SetScrollable(true).
		SetWrap(true)
	u.log.SetBorder(true).SetTitle(" Log (c=clear) ")
	u.applyBoxTheme(u.log.Box)
	u.log.SetTextColor(theme.Text)
	u.log.SetDynamicColors(true)
	u.log.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'c', 'C':
			u.clearLog()
			return nil
		}
		return event
	})

	u.status = tview.NewTextView().
		SetScrollable(false).
		SetWrap(false)
	u.status.SetBackgroundColor(theme.HeaderBg)
	u.status.SetTextColor(theme.Accent)

	u.pages = tview.NewPages().AddPage(pageMain, u.layout(), true, true)
	u.app.SetInputCapture(u.globalKeys)

	u.showWelcome()
	u.updateStatus("Ready")
	return u
}

func (u *ui) applyBoxTheme(b *tview.Box) {
	b.SetBackgroundColor(u.theme.Surface)
	b.SetBorderColor(u.theme.Accent)
	b.SetTitleColor(u.theme.Accent)
}

func (u *ui) applyFormTheme(f *tview.Form) {
	u.applyBoxTheme(f.Box)
	f.SetFieldBackgroundColor(u.theme.InputBg)
	f.SetFieldTextColor(u.theme.Text)
	f.SetLabelColor(u.theme.SubtleText)
	f.SetButtonBackgroundColor(u.theme.Accent)
	f.SetButtonTextColor(u.theme.Background)
}

func (u *ui) button(label string, selected func()) *tview.Button {
	b := tview.NewButton(label).SetSelectedFunc(selected)
	b.SetLabelColor(u.theme.Background)
	b.SetBackgroundColor(u.theme.Accent)
	return b
}

func (u *ui) layout() tview.Primitive {
	controls := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(u.button("◀", func() { u.changeRow(-1) }), 3, 0, false).
		AddItem(u.rowLabel, 0, 1, false).
		AddItem(u.button("▶", func() { u.changeRow(1) }), 3, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(u.button("Add Row", u.promptAddRow), 9, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(u.button("Save", u.save), 6, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(u.button("Open", u.promptOpen), 6, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(u.button("?", u.about), 3, 0, false)

	bottom := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.log, 6, 0, false).
		AddItem(u.status, 1, 0, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(controls, 1, 0, false).
		AddItem(u.columnBar, 3, 0, false).
		AddItem(u.fieldArea, 0, 1, true).
		AddItem(bottom, 7, 0, false)
}

func (u *ui) globalKeys(event *tcell.EventKey) *tcell.EventKey {
	if front, _ := u.pages.GetFrontPage(); front != pageMain {
		// tview stops the application on an unhandled Ctrl-C.
		if event.Key() == tcell.KeyCtrlC {
			return nil
		}
		return event
	}
	switch event.Key() {
	case tcell.KeyPgUp, tcell.KeyCtrlP:
		u.changeRow(-1)
		return nil
	case tcell.KeyPgDn, tcell.KeyCtrlN:
		u.changeRow(1)
		return nil
	case tcell.KeyCtrlS:
		u.save()
		return nil
	case tcell.KeyCtrlO:
		u.promptOpen()
		return nil
	case tcell.KeyCtrlR:
		u.promptAddRow()
		return nil
	case tcell.KeyCtrlC, tcell.KeyF10:
		u.quit()
		return nil
	case tcell.KeyF1:
		u.about()
		return nil
	}
	return event
}

func (u *ui) loadDocument(filename string, doc csvio.Document) {
	u.closeSearch()
	u.filename = filename
	u.nav.Load(doc.Headers, doc.Rows)
	if doc.Created {
		u.nav.Table().MarkModified()
	}
	u.activeField = -1
	u.renderColumns()
	u.renderRow()
}

func (u *ui) renderColumns() {
	u.columnBar.Clear()
	tbl := u.nav.Table()
	for col, h := range tbl.Headers() {
		label := runewidth.Truncate(h, u.cfg.Editor.LabelWidth, "…")
		cb := tview.NewCheckbox().
			SetLabel(label + " ").
			SetChecked(tbl.Visible(col))
		cb.SetBackgroundColor(u.theme.Surface)
		cb.SetLabelColor(u.theme.Text)
		cb.SetFieldBackgroundColor(u.theme.InputBg)
		cb.SetFieldTextColor(u.theme.Warm)
		cb.SetChangedFunc(func(bool) {
			u.toggleColumn(col)
		})
		u.columnBar.AddItem(cb, runewidth.StringWidth(label)+4, 0, false)
	}
}

func (u *ui) toggleColumn(col int) {
	if err := u.nav.Table().Toggle(col); err != nil {
		u.reportError("toggle column", err)
		return
	}
	h, _ := u.nav.Table().Header(col)
	u.logger.Debug("column visibility", "column", h, "visible", u.nav.Table().Visible(col))
	u.renderRow()
}

// renderRow rebuilds one text area per visible column for the current row.
func (u *ui) renderRow() {
	u.closeSearch()
	u.fieldArea.Clear()
	u.fields = u.fields[:0]
	u.fieldCols = u.fieldCols[:0]

	tbl := u.nav.Table()
	cur, ok := u.nav.Current()
	if !ok {
		u.fieldArea.AddItem(u.placeholder("No rows. Press Ctrl-R to add one."), 0, 1, false)
		u.updateRowLabel()
		return
	}
	cols := tbl.VisibleColumns()
	if len(cols) == 0 {
		u.fieldArea.AddItem(u.placeholder("All columns are hidden."), 0, 1, false)
		u.updateRowLabel()
		return
	}

	for i, col := range cols {
		text, _ := tbl.Field(cur, col)
		header, _ := tbl.Header(col)
		ta := u.newField(i, col, header, text)
		u.fields = append(u.fields, ta)
		u.fieldCols = append(u.fieldCols, col)
		u.fieldArea.AddItem(ta, 0, 1, i == 0)
	}

	focus := u.activeField
	if focus < 0 || focus >= len(u.fields) {
		focus = 0
	}
	u.activeField = focus
	u.app.SetFocus(u.fields[focus])
	u.updateRowLabel()
}

func (u *ui) placeholder(text string) *tview.TextView {
	tv := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText(text)
	tv.SetBackgroundColor(u.theme.Surface)
	tv.SetTextColor(u.theme.SubtleText)
	return tv
}

func (u *ui) newField(visible, col int, header, text string) *tview.TextArea {
	ta := tview.NewTextArea().
		SetWrap(true).
		SetWordWrap(u.cfg.Editor.WordWrap)
	ta.SetBorder(true).SetTitle(" " + header + " ")
	u.applyBoxTheme(ta.Box)
	ta.SetTextStyle(tcell.StyleDefault.Background(u.theme.Surface).Foreground(u.theme.Text))
	ta.SetSelectedStyle(tcell.StyleDefault.Background(u.theme.Current).Foreground(u.theme.Background))

	u.loading = true
	ta.SetText(text, false)
	u.loading = false

	ta.SetClipboard(u.copyToClipboard, u.pasteFromClipboard)
	ta.SetFocusFunc(func() {
		u.activeField = visible
		ta.SetBorderColor(u.theme.Warm)
	})
	ta.SetBlurFunc(func() {
		ta.SetBorderColor(u.theme.Accent)
	})
	ta.SetChangedFunc(func() {
		if u.loading {
			return
		}
		if err := u.nav.EditField(col, ta.GetText()); err != nil {
			u.reportError("edit", err)
			return
		}
		u.updateRowLabel()
	})
	ta.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlZ:
			u.revertField(visible)
			return nil
		case tcell.KeyCtrlF:
			u.openSearch()
			return nil
		}
		return event
	})
	return ta
}

func (u *ui) copyToClipboard(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		u.logger.Warn("clipboard write", "err", err)
	}
}

func (u *ui) pasteFromClipboard() string {
	text, err := clipboard.ReadAll()
	if err != nil {
		u.logger.Warn("clipboard read", "err", err)
		return ""
	}
	return text
}

func (u *ui) updateRowLabel() {
	tbl := u.nav.Table()
	cur, ok := u.nav.Current()
	text := fmt.Sprintf("Row - of %d", tbl.Len())
	if ok {
		text = fmt.Sprintf("Row %d of %d", cur+1, tbl.Len())
	}
	if u.nav.Dirty() {
		text += " [edited]"
	}
	name := u.filename
	if name == "" {
		name = "Untitled.csv"
	}
	if tbl.Modified() {
		name += " *"
	}
	u.rowLabel.SetText(text + "  ·  " + name)
}

func (u *ui) modal(name string, p tview.Primitive, width, height int) {
	box := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexColumn).
			AddItem(nil, 0, 1, false).
			AddItem(p, width, 0, true).
			AddItem(nil, 0, 1, false), height, 0, true).
		AddItem(nil, 0, 1, false)
	u.pages.AddPage(name, box, true, true)
	u.app.SetFocus(p)
}

func (u *ui) closePage(name string) {
	u.pages.RemovePage(name)
	if front, p := u.pages.GetFrontPage(); front != pageMain && p != nil {
		u.app.SetFocus(p)
		return
	}
	u.focusField()
}

func (u *ui) focusField() {
	if u.activeField >= 0 && u.activeField < len(u.fields) {
		u.app.SetFocus(u.fields[u.activeField])
	}
}

// ask shows a message with buttons and calls done with the chosen label.
// Escape selects the last button.
func (u *ui) ask(text string, buttons []string, done func(label string)) {
	m := tview.NewModal().
		SetText(text).
		AddButtons(buttons).
		SetDoneFunc(func(idx int, label string) {
			u.closePage(pageModal)
			if idx < 0 && len(buttons) > 0 {
				label = buttons[len(buttons)-1]
			}
			if done != nil {
				done(label)
			}
		})
	m.SetBackgroundColor(u.theme.Surface)
	m.SetTextColor(u.theme.Text)
	m.SetButtonBackgroundColor(u.theme.Accent)
	m.SetButtonTextColor(u.theme.Background)
	u.pages.AddPage(pageModal, m, true, true)
	u.app.SetFocus(m)
}

func (u *ui) info(text string) {
	u.ask(text, []string{"OK"}, nil)
}

const maxLogLines = 200

func (u *ui) logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	u.logger.Info(msg)
	if msg == u.lastLog {
		u.lastCount++
		if len(u.logLines) > 0 {
			u.logLines[len(u.logLines)-1] = collapseMsg(u.lastLog, u.lastCount)
		}
	} else {
		u.lastLog = msg
		u.lastCount = 1
		u.logLines = append(u.logLines, msg)
		if len(u.logLines) > maxLogLines {
			u.logLines = u.logLines[len(u.logLines)-maxLogLines:]
		}
	}

	u.log.SetText(strings.Join(u.logLines, "\n"))
	u.log.ScrollToEnd()
}

func (u *ui) clearLog() {
	u.logLines = nil
	u.lastLog = ""
	u.lastCount = 0
	u.log.SetText("")
}

func (u *ui) showWelcome() {
	help := []string{
		"[lightgreen]Welcome to goocsv!",
		"[lightcyan]PgUp/PgDn move between rows, Ctrl-R adds a row, Ctrl-S saves, Ctrl-O opens.",
		"[lightcyan]Ctrl-F searches the focused field, Ctrl-Z restores it, Ctrl-C quits.",
	}
	u.logLines = append(help, u.logLines...)
	u.log.SetText(strings.Join(u.logLines, "\n"))
}

func collapseMsg(msg string, count int) string {
	if count <= 1 {
		return msg
	}
	return fmt.Sprintf("%s (x%d)", msg, count)
}

func (u *ui) updateStatus(text string) {
	u.status.SetTextColor(u.theme.Accent)
	u.status.SetText(text)
}

func (u *ui) warn(text string) {
	u.status.SetTextColor(u.theme.Danger)
	u.status.SetText(text)
	u.logf("%s", tview.Escape(text))
}

func (u *ui) reportError(action string, err error) {
	u.logger.Error(action, "err", err)
	u.warn(fmt.Sprintf("%s: %v", action, err))
}
