// Package dispatch implements the interactive command loop: it parses one
// line at a time, routes the keyword to a handler, persists the books after
// mutating commands, and offers fuzzy suggestions for unknown keywords.
package dispatch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/obondar/pal/internal/config"
	"github.com/obondar/pal/internal/contact"
	"github.com/obondar/pal/internal/errors"
	"github.com/obondar/pal/internal/export"
	"github.com/obondar/pal/internal/handler"
	"github.com/obondar/pal/internal/note"
)

// Saver persists a full snapshot of both books.
type Saver interface {
	Save(*contact.Book, *note.Book) error
}

// Handler runs one command against the books and returns the display string.
type Handler func(args []string) (string, error)

// Command binds a keyword to its handler. Mutating commands trigger a
// snapshot save after a successful run.
type Command struct {
	Keyword  string
	Aliases  []string
	Usage    string
	Mutating bool
	Run      Handler
}

// Table is an ordered group of commands. Lookup precedence follows table
// registration order.
type Table struct {
	Name     string
	Commands []Command
}

func (t Table) keywords() []string {
	out := make([]string, 0, len(t.Commands))
	for _, cmd := range t.Commands {
		out = append(out, cmd.Keyword)
	}
	return out
}

// State is the dispatcher loop state.
type State int

const (
	Running State = iota
	Terminated
)

var exitKeywords = []string{"close", "exit", "bye", "bye-bye"}

// clearScreen is the ANSI erase-display sequence followed by cursor home.
const clearScreen = "\x1b[2J\x1b[H"

// Dispatcher owns the two books for the process lifetime and runs the
// read-eval loop over them.
type Dispatcher struct {
	contacts  *contact.Book
	notes     *note.Book
	store     Saver
	cfg       *config.Config
	exportDir string
	version   string

	in  *bufio.Scanner
	out io.Writer

	tables []Table
	state  State
}

// New creates a dispatcher reading command lines from in and writing all
// user-facing output to out.
func New(contacts *contact.Book, notes *note.Book, store Saver, cfg *config.Config, exportDir, version string, in io.Reader, out io.Writer) *Dispatcher {
	d := &Dispatcher{
		contacts:  contacts,
		notes:     notes,
		store:     store,
		cfg:       cfg,
		exportDir: exportDir,
		version:   version,
		in:        bufio.NewScanner(in),
		out:       out,
		state:     Running,
	}
	d.tables = []Table{
		{Name: "contacts", Commands: d.contactCommands()},
		{Name: "notes", Commands: d.noteCommands()},
		{Name: "system", Commands: d.systemCommands()},
	}
	return d
}

func (d *Dispatcher) contactCommands() []Command {
	return []Command{
		{Keyword: "add-contact", Aliases: []string{"add"}, Usage: "add-contact <name> [phone] [email] [bday] [address...]", Mutating: true,
			Run: func(args []string) (string, error) { return handler.AddContact(args, d.contacts) }},
		{Keyword: "add-phone", Usage: "add-phone <name> <phone>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.AddPhone(args, d.contacts) }},
		{Keyword: "add-email", Usage: "add-email <name> <email>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.AddEmail(args, d.contacts) }},
		{Keyword: "add-address", Usage: "add-address <name> <address...>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.AddAddress(args, d.contacts) }},
		{Keyword: "add-birthday", Aliases: []string{"change-birthday"}, Usage: "add-birthday <name> <DD.MM.YYYY>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.AddBirthday(args, d.contacts) }},
		{Keyword: "change-phone", Usage: "change-phone <name> <old> <new>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.ChangePhone(args, d.contacts) }},
		{Keyword: "change-email", Usage: "change-email <name> <old> <new>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.ChangeEmail(args, d.contacts) }},
		{Keyword: "change-address", Usage: "change-address <name> <address...>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.AddAddress(args, d.contacts) }},
		{Keyword: "delete-contact", Usage: "delete-contact <name>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.DeleteContact(args, d.contacts) }},
		{Keyword: "get-phone", Usage: "get-phone <name>",
			Run: func(args []string) (string, error) { return handler.GetPhone(args, d.contacts) }},
		{Keyword: "get-birthday", Usage: "get-birthday <name>",
			Run: func(args []string) (string, error) { return handler.GetBirthday(args, d.contacts) }},
		{Keyword: "get-info", Usage: "get-info <name>",
			Run: func(args []string) (string, error) { return handler.GetInfo(args, d.contacts) }},
		{Keyword: "get-all", Usage: "get-all",
			Run: func(args []string) (string, error) { return handler.GetAll(args, d.contacts) }},
		{Keyword: "get-upcoming-birthdays", Aliases: []string{"get-birthdays"}, Usage: "get-upcoming-birthdays [days]",
			Run: func(args []string) (string, error) {
				return handler.UpcomingBirthdays(args, d.contacts, d.cfg.BirthdayWindowDays)
			}},
		{Keyword: "search-contacts", Usage: "search-contacts <query...>",
			Run: func(args []string) (string, error) { return handler.SearchContacts(args, d.contacts) }},
	}
}

func (d *Dispatcher) noteCommands() []Command {
	return []Command{
		{Keyword: "add-note", Usage: "add-note <text...>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.AddNote(args, d.notes) }},
		{Keyword: "get-note", Usage: "get-note <id>",
			Run: func(args []string) (string, error) { return handler.GetNote(args, d.notes) }},
		{Keyword: "get-notes", Usage: "get-notes",
			Run: func(args []string) (string, error) { return handler.GetAllNotes(args, d.notes) }},
		{Keyword: "change-note", Usage: "change-note <id> <text...>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.ChangeNote(args, d.notes) }},
		{Keyword: "delete-note", Usage: "delete-note <id>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.DeleteNote(args, d.notes) }},
		{Keyword: "add-tag", Usage: "add-tag <id> <tag>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.AddTag(args, d.notes) }},
		{Keyword: "delete-tag", Usage: "delete-tag <id> <tag>", Mutating: true,
			Run: func(args []string) (string, error) { return handler.DeleteTag(args, d.notes) }},
		{Keyword: "get-notes-by-text", Usage: "get-notes-by-text <query...>",
			Run: func(args []string) (string, error) { return handler.SearchNotesByText(args, d.notes) }},
		{Keyword: "get-notes-by-tag", Usage: "get-notes-by-tag <tag>",
			Run: func(args []string) (string, error) { return handler.SearchNotesByTag(args, d.notes) }},
		{Keyword: "get-notes-sorted-by-tags", Usage: "get-notes-sorted-by-tags",
			Run: func(args []string) (string, error) { return handler.NotesSortedByTags(args, d.notes) }},
	}
}

func (d *Dispatcher) systemCommands() []Command {
	return []Command{
		{Keyword: "hello", Usage: "hello",
			Run: func(_ []string) (string, error) { return "How can I help you?", nil }},
		{Keyword: "help", Usage: "help",
			Run: func(_ []string) (string, error) { return d.helpText(), nil }},
		{Keyword: "version", Usage: "version",
			Run: func(_ []string) (string, error) { return fmt.Sprintf("pal %s", d.version), nil }},
		{Keyword: "export", Usage: "export",
			Run: func(_ []string) (string, error) {
				result, err := export.Write(d.exportDir, d.contacts, d.notes)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Exported to %s and %s", result.MarkdownPath, result.HTMLPath), nil
			}},
		{Keyword: "clear", Usage: "clear",
			Run: func(_ []string) (string, error) { return clearScreen, nil }},
	}
}

// helpText renders the command reference from the registration tables, so it
// can never drift from the actual dispatch surface.
func (d *Dispatcher) helpText() string {
	var b strings.Builder
	for _, table := range d.tables {
		fmt.Fprintf(&b, "%s:\n", table.Name)
		for _, cmd := range table.Commands {
			fmt.Fprintf(&b, "  %s\n", cmd.Usage)
		}
	}
	fmt.Fprintf(&b, "exit: %s", strings.Join(exitKeywords, ", "))
	return b.String()
}

// State returns the current loop state.
func (d *Dispatcher) State() State {
	return d.state
}

func (d *Dispatcher) lookup(keyword string) (Command, bool) {
	for _, table := range d.tables {
		for _, cmd := range table.Commands {
			if cmd.Keyword == keyword {
				return cmd, true
			}
			for _, alias := range cmd.Aliases {
				if alias == keyword {
					return cmd, true
				}
			}
		}
	}
	return Command{}, false
}

func isExitKeyword(keyword string) bool {
	for _, kw := range exitKeywords {
		if kw == keyword {
			return true
		}
	}
	return false
}

// Execute runs one raw input line through the dispatch steps: parse, look up,
// run, persist if mutating. An unknown keyword falls through to suggestions.
func (d *Dispatcher) Execute(line string) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return
	}
	keyword := strings.ToLower(tokens[0])
	args := tokens[1:]

	if isExitKeyword(keyword) {
		fmt.Fprintln(d.out, "Good bye!")
		d.state = Terminated
		return
	}

	if cmd, ok := d.lookup(keyword); ok {
		result, err := cmd.Run(args)
		if err != nil {
			fmt.Fprintln(d.out, errors.UserMessage(err))
			return
		}
		fmt.Fprintln(d.out, result)
		if cmd.Mutating {
			d.save()
		}
		return
	}

	fmt.Fprintln(d.out, "Invalid command.")
	suggestions := d.Suggest(keyword)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(d.out, "    Did you mean: %s\n", strings.Join(suggestions, ", "))

	rewritten := strings.Join(append([]string{suggestions[0]}, args...), " ")
	if d.confirm(rewritten) {
		d.Execute(rewritten)
	}
}

// confirm asks whether to run the rewritten command and reads one answer
// line. Only a "y" answer accepts.
func (d *Dispatcher) confirm(line string) bool {
	fmt.Fprintf(d.out, "Do you want to run this command: %s\n[y]=yes [any key]=no\n", line)
	if !d.in.Scan() {
		return false
	}
	return strings.ToLower(strings.TrimSpace(d.in.Text())) == "y"
}

func (d *Dispatcher) save() {
	if err := d.store.Save(d.contacts, d.notes); err != nil {
		fmt.Fprintf(d.out, "Warning: failed to save: %s\n", errors.UserMessage(err))
	}
}

// Run drives the loop until an exit keyword or end of input, then writes the
// final snapshot. Only a failing final save is reported as a hard error.
func (d *Dispatcher) Run() error {
	fmt.Fprintln(d.out, "Welcome to the assistant bot!")
	for d.state == Running {
		fmt.Fprint(d.out, "Enter a command: ")
		if !d.in.Scan() {
			break
		}
		d.Execute(d.in.Text())
	}
	d.state = Terminated

	if err := d.store.Save(d.contacts, d.notes); err != nil {
		return fmt.Errorf("final save failed: %w", err)
	}
	return nil
}
