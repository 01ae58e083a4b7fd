package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goocsv/pkg/search"
)

type searchView struct {
	field   *tview.TextArea
	status  *tview.TextView
	preview *tview.TextView
}

// openSearch searches the focused field. The session is bound to that one
// field until the popup closes.
func (u *ui) openSearch() {
	if u.activeField < 0 || u.activeField >= len(u.fields) || u.pages.HasPage(pageSearch) {
		return
	}
	sv := &searchView{field: u.fields[u.activeField]}

	sv.status = tview.NewTextView().SetText(u.search.Status())
	sv.status.SetBackgroundColor(u.theme.Surface)
	sv.status.SetTextColor(u.theme.SubtleText)

	sv.preview = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWrap(true).
		SetScrollable(true)
	sv.preview.SetBackgroundColor(u.theme.Background)
	sv.preview.SetTextColor(u.theme.Text)
	sv.preview.SetText(tview.Escape(sv.field.GetText()))

	form := tview.NewForm()
	form.AddInputField("Find ", "", 30, nil, func(term string) {
		u.updateSearch(sv, term)
	})
	input := form.GetFormItem(0).(*tview.InputField)
	input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyDown:
			u.stepSearch(sv, 1)
			return nil
		case tcell.KeyUp:
			u.stepSearch(sv, -1)
			return nil
		}
		return event
	})
	form.AddButton("Previous", func() { u.stepSearch(sv, -1) })
	form.AddButton("Next", func() { u.stepSearch(sv, 1) })
	form.AddButton("Close", u.closeSearch)
	form.SetCancelFunc(u.closeSearch)
	u.applyFormTheme(form)

	body := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 5, 0, true).
		AddItem(sv.status, 1, 0, false).
		AddItem(sv.preview, 0, 1, false)
	header, _ := u.nav.Table().Header(u.fieldCols[u.activeField])
	body.SetBorder(true).SetTitle(" Search " + header + " ")
	u.applyBoxTheme(body.Box)

	u.modal(pageSearch, body, 60, 16)
	u.logger.Debug("search opened", "column", u.fieldCols[u.activeField])
}

func (u *ui) closeSearch() {
	if !u.pages.HasPage(pageSearch) {
		return
	}
	u.search.Close()
	u.closePage(pageSearch)
}

func (u *ui) updateSearch(sv *searchView, term string) {
	text := sv.field.GetText()
	sp, ok := u.search.SetTerm(text, term)
	if ok {
		u.selectMatch(sv, text, sp)
	} else {
		sv.field.Select(0, 0)
	}
	u.refreshSearch(sv, text)
}

func (u *ui) stepSearch(sv *searchView, delta int) {
	text := sv.field.GetText()
	var (
		sp search.Span
		ok bool
	)
	if delta < 0 {
		sp, ok = u.search.Previous()
	} else {
		sp, ok = u.search.Next()
	}
	if !ok {
		return
	}
	u.selectMatch(sv, text, sp)
	u.refreshSearch(sv, text)
}

func (u *ui) selectMatch(sv *searchView, text string, sp search.Span) {
	start, end := search.ByteSpan(text, sp)
	sv.field.Select(start, end)
}

func (u *ui) refreshSearch(sv *searchView, text string) {
	_, cur, ok := u.search.Current()
	sv.status.SetText(u.search.Status())
	if ok {
		sv.status.SetTextColor(u.theme.Accent)
	} else {
		sv.status.SetTextColor(u.theme.SubtleText)
	}
	sv.preview.SetText(markMatches(text, u.search.Matches(), cur, u.cfg.Colors.Match, u.cfg.Colors.Current))
	if ok {
		sv.preview.Highlight(matchRegion(cur))
		sv.preview.ScrollToHighlight()
	} else {
		sv.preview.Highlight()
	}
}

func matchRegion(i int) string {
	return fmt.Sprintf("m%d", i)
}

// markMatches renders text with color tags around each span. Spans are rune
// offsets, sorted and non-overlapping.
func markMatches(text string, spans []search.Span, current int, matchColor, currentColor string) string {
	if len(spans) == 0 {
		return tview.Escape(text)
	}
	runes := []rune(text)
	var b strings.Builder
	pos := 0
	for i, sp := range spans {
		if sp.Start < pos || sp.End > len(runes) {
			continue
		}
		b.WriteString(tview.Escape(string(runes[pos:sp.Start])))
		color := matchColor
		if i == current {
			color = currentColor
		}
		fmt.Fprintf(&b, `["%s"][black:%s]%s[-:-][""]`, matchRegion(i), color, tview.Escape(string(runes[sp.Start:sp.End])))
		pos = sp.End
	}
	b.WriteString(tview.Escape(string(runes[pos:])))
	return b.String()
}
