package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PolarWolf314/rolodex/internal/backup"
	"github.com/PolarWolf314/rolodex/internal/codec"
	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
	logger "github.com/PolarWolf314/rolodex/internal/logging"
	"github.com/PolarWolf314/rolodex/internal/ui"
	"github.com/PolarWolf314/rolodex/internal/workflows"
)

// Book is the set of workflows the menu drives. *workflows.Book
// implements it.
type Book interface {
	Add(ctx context.Context, c contacts.Contact) (contacts.Contact, error)
	List(ctx context.Context) ([]contacts.Contact, error)
	Search(ctx context.Context, q contacts.Query) ([]contacts.Contact, error)
	Update(ctx context.Context, id contacts.ID, f contacts.Fields) (contacts.Contact, error)
	Delete(ctx context.Context, id contacts.ID) (contacts.Contact, error)
	Export(ctx context.Context, opts workflows.ExportOptions) (*workflows.ExportResult, error)
	Import(ctx context.Context, opts workflows.ImportOptions) (*workflows.ImportResult, error)
	Backup(ctx context.Context) (*workflows.BackupResult, error)
	Restore(ctx context.Context, opts workflows.RestoreOptions) (*workflows.RestoreResult, error)
	ListBackups(ctx context.Context) ([]backup.Info, error)
}

// Machine is the menu state machine. The zero value is not usable; call New.
type Machine struct {
	book   Book
	logger logger.Logger

	state   State
	answers []string

	// backups holds the list shown when entering StateRestore.
	backups []backup.Info
}

func New(book Book, log logger.Logger) *Machine {
	return &Machine{book: book, logger: log, state: StateMain}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Done reports whether the user has exited.
func (m *Machine) Done() bool {
	return m.state == StateExit
}

// Prompt returns the text asking for the next line of input.
func (m *Machine) Prompt() string {
	switch m.state {
	case StateMain:
		return menuText()
	case StateExit:
		return ""
	}
	questions := prompts[m.state]
	if len(m.answers) < len(questions) {
		return questions[len(m.answers)]
	}
	return ""
}

// Step consumes one line of input and returns everything to display
// before the next line is read, ending with the next prompt.
func (m *Machine) Step(ctx context.Context, line string) string {
	line = strings.TrimSpace(line)

	switch m.state {
	case StateExit:
		return ""
	case StateMain:
		return m.choose(ctx, line)
	}

	m.answers = append(m.answers, line)
	if err := m.check(); err != nil {
		return m.fail(err)
	}
	if len(m.answers) < len(prompts[m.state]) {
		return m.Prompt()
	}

	out, err := m.act(ctx)
	if err != nil {
		return m.fail(err)
	}
	return m.finish(out)
}

// Run reads lines from in and writes the machine's output to out until the
// user exits, the input ends, or ctx is cancelled.
func (m *Machine) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, m.Prompt())

	scanner := bufio.NewScanner(in)
	for !m.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fmt.Fprint(out, m.Step(ctx, scanner.Text()))
	}
	return nil
}

func (m *Machine) choose(ctx context.Context, line string) string {
	for _, item := range menu {
		if item.key == line {
			m.logger.Debugf("Menu choice %s: %s", item.key, item.state)
			return m.enter(ctx, item.state)
		}
	}
	return ui.Error.Sprint("✗") + " Invalid choice. Try again.\n" + m.Prompt()
}

func (m *Machine) enter(ctx context.Context, s State) string {
	m.state = s
	m.answers = nil

	switch s {
	case StateExit:
		return "Goodbye!\n"
	case StateRestore:
		backups, err := m.book.ListBackups(ctx)
		if err != nil {
			return m.fail(err)
		}
		if len(backups) == 0 {
			return m.fail(kerrors.ErrNoBackups)
		}
		m.backups = backups
		return BackupList(backups) + m.Prompt()
	}

	if len(prompts[s]) == 0 {
		out, err := m.act(ctx)
		if err != nil {
			return m.fail(err)
		}
		return m.finish(out)
	}
	return m.Prompt()
}

// check validates the latest answer so a bad id or field name is reported
// before the remaining questions are asked.
func (m *Machine) check() error {
	i := len(m.answers) - 1
	answer := m.answers[i]

	switch {
	case (m.state == StateUpdate || m.state == StateDelete) && i == 0:
		_, err := contacts.ParseID(answer)
		return err
	case m.state == StateUpdate && i == 1:
		return checkUpdatableField(answer)
	case m.state == StateSearch && i == 0:
		_, err := contacts.ParseField(answer)
		return err
	case (m.state == StateExport || m.state == StateImport) && i == 0:
		if answer == "" {
			return fmt.Errorf("%w: a file path is required", kerrors.ErrValidation)
		}
	case (m.state == StateExport || m.state == StateImport) && i == 1:
		if answer != "" {
			_, err := codec.ParseFormat(answer)
			return err
		}
	case m.state == StateImport && i == 2:
		_, err := workflows.ParseImportMode(answer)
		return err
	case m.state == StateRestore && i == 0:
		_, err := m.chooseBackup(answer)
		return err
	}
	return nil
}

func checkUpdatableField(name string) error {
	switch strings.ToLower(name) {
	case "name", "phone", "email", "address", "category", "notes":
		return nil
	}
	return fmt.Errorf("%w: cannot update field %q", kerrors.ErrValidation, name)
}

// chooseBackup maps a menu answer to a backup path. Blank means newest,
// which Restore picks when given no path.
func (m *Machine) chooseBackup(answer string) (string, error) {
	if answer == "" {
		return "", nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(m.backups) {
		return "", fmt.Errorf("%w: choose a backup between 1 and %d", kerrors.ErrValidation, len(m.backups))
	}
	return m.backups[n-1].Path, nil
}

// act runs the workflow for the current state once every prompt has an answer.
func (m *Machine) act(ctx context.Context) (string, error) {
	a := m.answers

	switch m.state {
	case StateAddContact:
		added, err := m.book.Add(ctx, contacts.Contact{
			Name:     a[0],
			Phone:    a[1],
			Email:    a[2],
			Address:  a[3],
			Category: contacts.Category(a[4]),
			Notes:    a[5],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s Contact %s added with id %d", ui.Success.Sprint("✓"), ui.Highlight.Sprint(added.Name), added.ID), nil

	case StateView:
		list, err := m.book.List(ctx)
		if err != nil {
			return "", err
		}
		if len(list) == 0 {
			return "No contacts available.", nil
		}
		cards := make([]string, len(list))
		for i, c := range list {
			cards[i] = Card(c)
		}
		return strings.Join(cards, separator+"\n"), nil

	case StateSearch:
		field, err := contacts.ParseField(a[0])
		if err != nil {
			return "", err
		}
		results, err := m.book.Search(ctx, contacts.Query{Text: a[1], Field: field})
		if err != nil {
			return "", err
		}
		if len(results) == 0 {
			return ui.Error.Sprint("✗") + " No matching contact found.", nil
		}
		return ContactTable(results), nil

	case StateUpdate:
		id, err := contacts.ParseID(a[0])
		if err != nil {
			return "", err
		}
		var f contacts.Fields
		if err := f.SetByName(a[1], a[2]); err != nil {
			return "", err
		}
		updated, err := m.book.Update(ctx, id, f)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s Contact updated.\n%s", ui.Success.Sprint("✓"), Card(updated)), nil

	case StateDelete:
		id, err := contacts.ParseID(a[0])
		if err != nil {
			return "", err
		}
		removed, err := m.book.Delete(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s Deleted %s.", ui.Success.Sprint("✓"), ui.Highlight.Sprint(removed.Name)), nil

	case StateExport:
		result, err := m.book.Export(ctx, workflows.ExportOptions{Path: a[0], Format: codec.Format(a[1])})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s Exported %d contacts to %s (%s)", ui.Success.Sprint("✓"), result.Count, ui.Path.Sprint(result.Path), result.Format), nil

	case StateImport:
		mode, err := workflows.ParseImportMode(a[2])
		if err != nil {
			return "", err
		}
		result, err := m.book.Import(ctx, workflows.ImportOptions{Path: a[0], Format: codec.Format(a[1]), Mode: mode})
		if err != nil {
			return "", err
		}
		out := fmt.Sprintf("%s Imported %d contacts (%s); the book now holds %d", ui.Success.Sprint("✓"), result.Imported, result.Mode, result.Total)
		if result.SafetyBackup != "" {
			out += "\n" + ui.Info.Sprint("→") + " Previous contacts saved to " + ui.Path.Sprint(result.SafetyBackup)
		}
		return out, nil

	case StateBackup:
		result, err := m.book.Backup(ctx)
		if err != nil {
			return "", err
		}
		out := fmt.Sprintf("%s Backed up to %s", ui.Success.Sprint("✓"), ui.Path.Sprint(result.Path))
		if len(result.Pruned) > 0 {
			out += "\n" + ui.Muted.Sprintf("removed %d old backups", len(result.Pruned))
		}
		return out, nil

	case StateRestore:
		path, err := m.chooseBackup(a[0])
		if err != nil {
			return "", err
		}
		result, err := m.book.Restore(ctx, workflows.RestoreOptions{Path: path})
		if err != nil {
			return "", err
		}
		out := fmt.Sprintf("%s Restored %d contacts from %s", ui.Success.Sprint("✓"), result.Count, ui.Path.Sprint(result.Path))
		if result.SafetyBackup != "" {
			out += "\n" + ui.Info.Sprint("→") + " Previous contacts saved to " + ui.Path.Sprint(result.SafetyBackup)
		}
		return out, nil
	}

	return "", fmt.Errorf("no action for state %s", m.state)
}

func (m *Machine) reset() {
	m.state = StateMain
	m.answers = nil
	m.backups = nil
}

func (m *Machine) finish(out string) string {
	m.reset()
	return ui.EnsureNewline(out) + m.Prompt()
}

func (m *Machine) fail(err error) string {
	m.logger.Debugf("%s failed: %v", m.state, err)
	m.reset()
	return ErrorMessage(err) + "\n" + m.Prompt()
}

// ErrorMessage turns a workflow error into a line for the user.
func ErrorMessage(err error) string {
	mark := ui.Error.Sprint("✗")
	switch {
	case errors.Is(err, kerrors.ErrNotFound):
		return mark + " Contact not found."
	case errors.Is(err, kerrors.ErrNoBackups):
		return ui.Info.Sprint("ℹ") + " No backups found. Choose " + ui.Code.Sprint("Back Up Contacts") + " to create one."
	case errors.Is(err, kerrors.ErrAuthentication):
		return mark + " Could not decrypt the contact file: wrong key or the file was modified."
	case errors.Is(err, kerrors.ErrKeyNotFound):
		return mark + " No encryption key found.\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rolodex key init") + " first"
	default:
		return mark + " " + err.Error()
	}
}

func menuText() string {
	var b strings.Builder
	b.WriteString("\n===== Contact Book Menu =====\n")
	for _, item := range menu {
		fmt.Fprintf(&b, "%s. %s\n", ui.Info.Sprint(item.key), item.label)
	}
	b.WriteString("Enter choice: ")
	return b.String()
}
