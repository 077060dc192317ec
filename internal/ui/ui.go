package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rdo34/notebook/internal/app"
	"github.com/rdo34/notebook/internal/model"
)

const (
	DefaultControls = "[1] Add  [2] Day  [3] Delete  [4] Sort  [5] Save  [6] Load  [7] Exit  [j/k] Move  [?] Help"
	confirmControls = "[enter] Confirm  [esc] Cancel"
)

type UI struct {
	app        *tview.Application
	grid       *tview.Grid
	list       *tview.List
	state      *app.App
	emptyState bool
	pages      *tview.Pages
	titleLeft  *tview.TextView
	titleRight *tview.TextView
	controls   *tview.TextView

	// dayFilter limits the list to one date; empty shows every record.
	dayFilter   string
	defaultFile string
	lastFile    string
	status      string

	// Inline input area (bottom, above controls)
	inputActive    bool
	inputPrimitive tview.Primitive
	input          *tview.InputField
	// lightweight confirmation mode (no input box)
	confirmCallback func(confirm bool)
	promptMessage   string
}

// New constructs the TUI around an existing notebook.
func New(state *app.App, defaultFile string) *UI {
	appView := tview.NewApplication()

	titleLeft := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignLeft)
	titleRight := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignRight)
	titleGrid := tview.NewGrid().SetRows(1).SetColumns(0, 0)
	titleGrid.AddItem(titleLeft, 0, 0, 1, 1, 0, 0, false)
	titleGrid.AddItem(titleRight, 0, 1, 1, 1, 0, 0, false)
	headerRule := tview.NewTextView().SetDynamicColors(true)
	headerRule.SetText("[green]" + strings.Repeat("─", 200))
	controls := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)

	list := tview.NewList().ShowSecondaryText(false)

	grid := tview.NewGrid().
		SetRows(1, 1, 0, 0, 3). // header, rule, list, (hidden input), controls
		SetColumns(0, 80, 0).
		AddItem(titleGrid, 0, 0, 1, 3, 0, 0, false).
		AddItem(headerRule, 1, 0, 1, 3, 0, 0, false).
		AddItem(controls, 4, 0, 1, 3, 0, 0, false)
	grid.AddItem(list, 2, 1, 1, 1, 0, 0, true)

	u := &UI{
		app:         appView,
		grid:        grid,
		list:        list,
		state:       state,
		titleLeft:   titleLeft,
		titleRight:  titleRight,
		controls:    controls,
		defaultFile: defaultFile,
		lastFile:    defaultFile,
	}
	u.refreshList()
	list.SetChangedFunc(func(int, string, string, rune) { u.updateStatus() })
	grid.SetInputCapture(u.handleKey)

	pages := tview.NewPages()
	pages.AddPage("main", grid, true, true)
	u.pages = pages

	return u
}

// Run starts the application event loop.
func (u *UI) Run() error {
	return u.app.SetRoot(u.pages, true).SetFocus(u.list).Run()
}

// handleKey maps the menu numbers and navigation keys onto notebook actions.
func (u *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if u.inputActive {
		if u.confirmCallback != nil {
			switch event.Key() {
			case tcell.KeyEnter:
				cb := u.confirmCallback
				u.hideInput()
				cb(true)
			case tcell.KeyEscape:
				cb := u.confirmCallback
				u.hideInput()
				cb(false)
			}
			// Swallow all other keys while confirming
			return nil
		}
		return event
	}
	switch event.Key() {
	case tcell.KeyEscape:
		u.app.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'j':
			if !u.emptyState {
				moveDown(u.list)
			}
			return nil
		case 'k':
			if !u.emptyState {
				moveUp(u.list)
			}
			return nil
		case 'g':
			u.list.SetCurrentItem(0)
			return nil
		case 'G':
			if c := u.list.GetItemCount(); c > 0 {
				u.list.SetCurrentItem(c - 1)
			}
			return nil
		case '1':
			u.showAddDialog()
			return nil
		case '2':
			u.showDayFilter()
			return nil
		case '3':
			if !u.emptyState {
				u.showDeleteConfirm()
			}
			return nil
		case '4':
			u.state.Sort()
			u.setStatus("Sorted by date and time")
			u.refreshList()
			return nil
		case '5':
			u.showFileDialog("Save to: ", u.save)
			return nil
		case '6':
			u.showFileDialog("Load from: ", u.load)
			return nil
		case '7', 'q':
			u.app.Stop()
			return nil
		case '?':
			u.showHelp()
			return nil
		}
	}
	return event
}

func (u *UI) visible() []model.Record {
	if u.dayFilter != "" {
		return u.state.RecordsForDay(u.dayFilter)
	}
	return u.state.Records()
}

// selected returns the record under the cursor.
func (u *UI) selected() (model.Record, bool) {
	vis := u.visible()
	idx := u.list.GetCurrentItem()
	if u.emptyState || idx < 0 || idx >= len(vis) {
		return model.Record{}, false
	}
	return vis[idx], true
}

// refreshList rebuilds the list from state, keeping the cursor position.
func (u *UI) refreshList() {
	prevIdx := u.list.GetCurrentItem()
	u.list.Clear()
	vis := u.visible()
	if len(vis) == 0 {
		u.list.AddItem("No records (press 1 to add)", "", 0, nil)
		u.emptyState = true
		u.list.SetCurrentItem(0)
		u.updateStatus()
		return
	}
	u.emptyState = false
	for _, r := range vis {
		u.list.AddItem(formatRecord(r), "", 0, nil)
	}
	target := prevIdx
	if target >= len(vis) {
		target = len(vis) - 1
	}
	if target < 0 {
		target = 0
	}
	u.list.SetCurrentItem(target)
	u.updateStatus()
}

func (u *UI) updateStatus() {
	scope := "All records"
	if u.dayFilter != "" {
		scope = "Day " + tview.Escape(u.dayFilter)
	}
	u.titleLeft.SetText("[red::b]Notebook[-]")
	u.titleRight.SetText(scope + "  (" + strconv.Itoa(len(u.visible())) + " of " + strconv.Itoa(u.state.Len()) + ")")

	if u.inputActive {
		if u.confirmCallback != nil && strings.TrimSpace(u.promptMessage) != "" {
			u.controls.SetText(u.promptMessage + "  " + tview.Escape(confirmControls))
		} else {
			u.controls.SetText(tview.Escape(confirmControls))
		}
		return
	}
	text := tview.Escape(DefaultControls)
	if u.status != "" {
		text = u.status + "\n" + text
	}
	u.controls.SetText(text)
}

// setStatus shows a one-off message above the controls.
func (u *UI) setStatus(msg string) {
	u.status = tview.Escape(msg)
	u.updateStatus()
}

// showError displays an error above the controls.
func (u *UI) showError(err error) {
	u.status = "[red]" + tview.Escape(err.Error()) + "[-]"
	u.updateStatus()
}

// Dialogs and actions

// showAddDialog asks for date, time and description in turn.
func (u *UI) showAddDialog() {
	u.ask("Date (YYYY-MM-DD): ", u.dayFilter, func(date string) {
		u.ask("Time (HH:MM): ", "", func(tm string) {
			u.ask("Description: ", "", func(desc string) {
				u.state.Add(model.Record{Date: date, Time: tm, Description: desc})
				u.setStatus("Record added")
				u.refreshList()
			})
		})
	})
}

func (u *UI) showDayFilter() {
	u.ask("Show day (empty for all): ", u.dayFilter, func(date string) {
		u.dayFilter = date
		u.status = ""
		u.refreshList()
	})
}

// showDeleteConfirm removes every record sharing the selected triple.
func (u *UI) showDeleteConfirm() {
	r, ok := u.selected()
	if !ok {
		return
	}
	u.inputActive = true
	u.promptMessage = "Delete " + tview.Escape(r.Date+" "+r.Time+" "+r.Description) + "?"
	u.confirmCallback = func(confirm bool) {
		if !confirm {
			return
		}
		n := u.state.Delete(r.Date, r.Time, r.Description)
		u.setStatus("Deleted " + strconv.Itoa(n) + " record(s)")
		u.refreshList()
	}
	u.updateStatus()
}

func (u *UI) showFileDialog(label string, done func(name string)) {
	u.ask(label, u.lastFile, func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			name = u.defaultFile
		}
		if name == "" {
			return
		}
		u.lastFile = name
		done(name)
	})
}

func (u *UI) save(name string) {
	if err := u.state.Save(name); err != nil {
		u.showError(err)
		return
	}
	u.setStatus("Saved " + strconv.Itoa(u.state.Len()) + " record(s) to " + name)
}

func (u *UI) load(name string) {
	if err := u.state.Load(name); err != nil {
		u.showError(err)
		return
	}
	u.setStatus("Loaded " + strconv.Itoa(u.state.Len()) + " record(s) from " + name)
	u.refreshList()
}

// ask shows a single-line input; Enter hands the text to done, Esc cancels.
func (u *UI) ask(label, initial string, done func(text string)) {
	field := tview.NewInputField().SetLabel(label).SetText(initial).SetFieldWidth(60)
	styleInputField(field)
	field.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			u.hideInput()
			return nil
		case tcell.KeyEnter:
			text := field.GetText()
			u.hideInput()
			done(text)
			return nil
		}
		return event
	})
	u.showInput(field)
}

func (u *UI) showHelp() {
	lines := []string{
		"[red::b]Notebook[-] help",
		"",
		"Movement:",
		"  j/k   g/G",
		"",
		"Records:",
		"  1 Add   2 Show day   3 Delete selected   4 Sort by date and time",
		"",
		"File:",
		"  5 Save   6 Load",
		"",
		"Quit: 7, q or Esc",
		"Close help: Esc",
	}
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetText(strings.Join(lines, "\n"))
	tv.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			u.pages.RemovePage("help")
			u.app.SetFocus(u.list)
		}
		return nil
	})
	u.pages.AddPage("help", pad(wrapWithRules(tv), 1, 1), true, true)
	u.app.SetFocus(tv)
}

func formatRecord(r model.Record) string {
	return tview.Escape(r.Date + "  " + r.Time + "  " + r.Description)
}

func moveDown(l *tview.List) {
	idx := l.GetCurrentItem()
	if idx < l.GetItemCount()-1 {
		l.SetCurrentItem(idx + 1)
	}
}

func moveUp(l *tview.List) {
	idx := l.GetCurrentItem()
	if idx > 0 {
		l.SetCurrentItem(idx - 1)
	}
}

// Inline input helpers
func (u *UI) showInput(field *tview.InputField) {
	if u.inputPrimitive != nil {
		u.grid.RemoveItem(u.inputPrimitive)
	}
	u.confirmCallback = nil
	u.promptMessage = ""
	container := wrapWithRules(field)
	u.inputPrimitive = container
	u.input = field
	u.inputActive = true
	u.grid.SetRows(1, 1, 0, 3, 3)
	u.grid.AddItem(container, 3, 1, 1, 1, 0, 0, true)
	u.app.SetFocus(field)
	u.updateStatus()
}

func (u *UI) hideInput() {
	if u.inputPrimitive != nil {
		u.grid.RemoveItem(u.inputPrimitive)
	}
	u.inputActive = false
	u.inputPrimitive = nil
	u.input = nil
	u.confirmCallback = nil
	u.promptMessage = ""
	u.grid.SetRows(1, 1, 0, 0, 3)
	u.app.SetFocus(u.list)
	u.updateStatus()
}

func styleInputField(f *tview.InputField) {
	f.SetBackgroundColor(tcell.ColorDefault)
	f.SetFieldBackgroundColor(tcell.ColorDefault)
}

// wrapWithRules surrounds a primitive with a top and bottom horizontal rule.
func wrapWithRules(p tview.Primitive) tview.Primitive {
	top := tview.NewTextView().SetDynamicColors(true)
	bottom := tview.NewTextView().SetDynamicColors(true)
	line := "[green]" + strings.Repeat("─", 200)
	top.SetText(line)
	bottom.SetText(line)
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 1, 0, false).
		AddItem(p, 0, 1, true).
		AddItem(bottom, 1, 0, false)
}

// pad adds horizontal and vertical padding around a primitive.
func pad(p tview.Primitive, hpad, vpad int) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewBox(), vpad, 0, false).
		AddItem(tview.NewFlex().
			AddItem(tview.NewBox(), hpad, 0, false).
			AddItem(p, 0, 1, true).
			AddItem(tview.NewBox(), hpad, 0, false),
			0, 1, true).
		AddItem(tview.NewBox(), vpad, 0, false)
}
