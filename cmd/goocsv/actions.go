package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rivo/tview"

	"goocsv/pkg/csvio"
	"goocsv/pkg/nav"
	"goocsv/pkg/table"
)

func (u *ui) changeRow(delta int) {
	var conflict *nav.DirtyRow
	out, err := u.nav.RequestNavigate(delta, func(d nav.DirtyRow) nav.Decision {
		conflict = &d
		return nav.Cancel
	})
	if err != nil {
		u.reportNavError(err)
		return
	}
	if conflict != nil {
		u.confirmLeave(delta, *conflict)
		return
	}
	u.afterNavigate(out)
}

// confirmLeave asks what to do with the edits on a dirty row, then repeats
// the navigation with that decision.
func (u *ui) confirmLeave(delta int, d nav.DirtyRow) {
	tbl := u.nav.Table()
	names := make([]string, 0, len(d.Changed))
	for _, col := range d.Changed {
		h, _ := tbl.Header(col)
		names = append(names, h)
	}
	text := fmt.Sprintf("Row %d has unsaved changes in %s.\n\nKeep them and move on?",
		d.Row+1, strings.Join(names, ", "))

	u.ask(text, []string{"Keep", "Discard", "Stay"}, func(label string) {
		decision := nav.Cancel
		switch label {
		case "Keep":
			decision = nav.Commit
		case "Discard":
			decision = nav.Discard
		}
		out, err := u.nav.RequestNavigate(delta, func(nav.DirtyRow) nav.Decision { return decision })
		if err != nil {
			u.reportNavError(err)
			return
		}
		u.logger.Debug("dirty row resolved", "row", d.Row+1, "decision", decision)
		if decision == nav.Discard {
			u.logf("discarded edits on row %d", d.Row+1)
		}
		u.afterNavigate(out)
	})
}

func (u *ui) afterNavigate(out nav.Outcome) {
	if out == nav.Moved {
		u.renderRow()
		cur, _ := u.nav.Current()
		u.updateStatus(fmt.Sprintf("Row %d", cur+1))
		return
	}
	u.updateRowLabel()
}

func (u *ui) reportNavError(err error) {
	var be *nav.BoundsError
	if errors.As(err, &be) {
		switch be.Edge {
		case nav.EdgeFirst:
			u.warn("Already at the first row")
		case nav.EdgeLast:
			u.warn("Already at the last row")
		default:
			u.warn(capitalize(be.Error()))
		}
		return
	}
	u.reportError("navigate", err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (u *ui) revertField(visible int) {
	if visible < 0 || visible >= len(u.fields) {
		return
	}
	col := u.fieldCols[visible]
	v, err := u.nav.RevertField(col)
	if err != nil {
		u.reportError("undo", err)
		return
	}
	u.loading = true
	u.fields[visible].SetText(v, true)
	u.loading = false
	u.updateRowLabel()
}

// prompt shows a one-field form. ok receives the entered text; returning
// false keeps the form open.
func (u *ui) prompt(title, label, value string, accept func(string, rune) bool, ok func(string) bool) {
	form := tview.NewForm()
	form.AddInputField(label, value, 30, accept, nil)
	input := form.GetFormItem(0).(*tview.InputField)
	form.AddButton("OK", func() {
		if ok(input.GetText()) {
			u.closePage(pagePrompt)
		}
	})
	form.AddButton("Cancel", func() { u.closePage(pagePrompt) })
	form.SetCancelFunc(func() { u.closePage(pagePrompt) })
	form.SetButtonsAlign(tview.AlignCenter)
	form.SetBorder(true).SetTitle(" " + title + " ")
	u.applyFormTheme(form)
	u.modal(pagePrompt, form, 50, 9)
}

func (u *ui) promptAddRow() {
	n := u.nav.Table().Len()
	label := fmt.Sprintf("Position (0 - %d) ", n)
	u.prompt("Add Row", label, strconv.Itoa(n), tview.InputFieldInteger, func(text string) bool {
		pos, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			u.warn("Please enter a valid number")
			return false
		}
		if err := u.nav.InsertRow(pos); err != nil {
			if errors.Is(err, table.ErrInvalidPosition) {
				u.warn("Please enter a valid number")
				return false
			}
			u.reportError("add row", err)
			return true
		}
		u.renderRow()
		u.logf("You have added row %d", pos+1)
		u.updateStatus(fmt.Sprintf("Added row %d", pos+1))
		return true
	})
}

func (u *ui) save() {
	if u.filename == "" {
		u.promptSaveAs(nil)
		return
	}
	u.saveTo(u.filename)
}

func (u *ui) promptSaveAs(then func()) {
	u.prompt("Save As", "File ", "Untitled.csv", nil, func(path string) bool {
		path = strings.TrimSpace(path)
		if path == "" {
			return false
		}
		u.filename = path
		if u.saveTo(path) && then != nil {
			u.pages.RemovePage(pagePrompt)
			then()
			return false
		}
		return true
	})
}

func (u *ui) saveTo(path string) bool {
	headers, rows, err := u.nav.Flush()
	if err != nil {
		u.reportError("save", err)
		return false
	}
	if err := csvio.Save(path, headers, rows); err != nil {
		u.logger.Error("save", "path", path, "err", err)
		u.ask(fmt.Sprintf("Save Error\n\n%v", err), []string{"OK"}, nil)
		return false
	}
	u.nav.Table().MarkSaved()
	u.logger.Info("saved", "path", path, "rows", len(rows))
	u.updateRowLabel()
	u.updateStatus("File saved successfully at " + time.Now().Format("2006-01-02 15:04:05"))
	return true
}

// withSavePrompt runs next, first offering to save unsaved changes.
func (u *ui) withSavePrompt(next func()) {
	if !u.nav.Table().Modified() {
		next()
		return
	}
	u.ask("Do you want to save changes to the current file?", []string{"Yes", "No", "Cancel"}, func(label string) {
		switch label {
		case "Yes":
			if u.filename == "" {
				u.promptSaveAs(next)
				return
			}
			if u.saveTo(u.filename) {
				next()
			}
		case "No":
			next()
		}
	})
}

func (u *ui) promptOpen() {
	u.withSavePrompt(func() {
		u.prompt("Open", "File ", u.filename, nil, func(path string) bool {
			path = strings.TrimSpace(path)
			if path == "" {
				return false
			}
			doc, err := csvio.Load(path)
			if err != nil {
				u.reportError("open", err)
				return false
			}
			u.pages.RemovePage(pagePrompt)
			u.loadDocument(path, doc)
			u.logger.Info("opened", "path", path, "rows", len(doc.Rows), "created", doc.Created)
			if doc.Created {
				u.logf("%s does not exist yet; it will be created on save", path)
			}
			u.updateStatus("Opened " + path)
			return false
		})
	})
}

func (u *ui) quit() {
	u.withSavePrompt(func() {
		u.logger.Info("quit")
		u.app.Stop()
	})
}

func (u *ui) about() {
	u.info("goocsv\n\nA record-at-a-time CSV editor with row and column management.\n\n" +
		"PgUp/PgDn rows · Ctrl-R add row · Ctrl-S save · Ctrl-O open\n" +
		"Ctrl-F search field · Ctrl-Z restore field · Ctrl-C quit")
}
