package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rdo34/notebook/internal/app"
	"github.com/rdo34/notebook/internal/model"
)

const menuText = `
1. Add record
2. Show records for a day
3. Delete record
4. Sort records
5. Save to file
6. Load from file
7. Exit`

// menu is the numbered prompt loop driving the notebook.
type menu struct {
	in          *bufio.Scanner
	out         io.Writer
	state       *app.App
	defaultFile string
}

func newMenu(in io.Reader, out io.Writer, state *app.App, defaultFile string) *menu {
	return &menu{in: bufio.NewScanner(in), out: out, state: state, defaultFile: defaultFile}
}

// run loops until the user picks Exit or input ends.
func (m *menu) run() {
	for {
		fmt.Fprintln(m.out, menuText)
		choice, ok := m.prompt("Choose an action: ")
		if !ok {
			return
		}
		switch strings.TrimSpace(choice) {
		case "1":
			m.add()
		case "2":
			m.showDay()
		case "3":
			m.delete()
		case "4":
			m.state.Sort()
		case "5":
			m.save()
		case "6":
			m.load()
		case "7":
			return
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please pick an existing menu item.")
		}
	}
}

// prompt prints label and reads one line. ok is false once input is exhausted.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimRight(m.in.Text(), "\r"), true
}

// record asks for the three fields in order; suffix is appended to each prompt.
func (m *menu) record(suffix string) (model.Record, bool) {
	var r model.Record
	var ok bool
	if r.Date, ok = m.prompt("Enter date (YYYY-MM-DD)" + suffix + ": "); !ok {
		return r, false
	}
	if r.Time, ok = m.prompt("Enter time (HH:MM)" + suffix + ": "); !ok {
		return r, false
	}
	if r.Description, ok = m.prompt("Enter description" + suffix + ": "); !ok {
		return r, false
	}
	return r, true
}

func (m *menu) add() {
	if r, ok := m.record(""); ok {
		m.state.Add(r)
	}
}

func (m *menu) showDay() {
	date, ok := m.prompt("Enter date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	printRecords(m.out, m.state.RecordsForDay(date))
}

func (m *menu) delete() {
	if r, ok := m.record(" of the record to delete"); ok {
		m.state.Delete(r.Date, r.Time, r.Description)
	}
}

func (m *menu) save() {
	name, ok := m.fileName("Enter file name to save to")
	if !ok {
		return
	}
	if err := m.state.Save(name); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}

func (m *menu) load() {
	name, ok := m.fileName("Enter file name to load from")
	if !ok {
		return
	}
	if err := m.state.Load(name); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}

// fileName prompts for a file, falling back to the configured default.
func (m *menu) fileName(label string) (string, bool) {
	if m.defaultFile != "" {
		label += " [" + m.defaultFile + "]"
	}
	name, ok := m.prompt(label + ": ")
	if !ok {
		return "", false
	}
	if name = strings.TrimSpace(name); name == "" {
		name = m.defaultFile
	}
	if name == "" {
		fmt.Fprintln(m.out, "No file name given.")
		return "", false
	}
	return name, true
}

func printRecords(w io.Writer, records []model.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records")
		return
	}
	for _, r := range records {
		fmt.Fprintln(w, model.Format(r))
	}
}
