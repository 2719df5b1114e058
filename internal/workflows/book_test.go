package workflows

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/PolarWolf314/rolodex/internal/audit"
	"github.com/PolarWolf314/rolodex/internal/codec"
	"github.com/PolarWolf314/rolodex/internal/configs"
	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
	logger "github.com/PolarWolf314/rolodex/internal/logging"
	"github.com/PolarWolf314/rolodex/internal/secrets"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

func quietLogger() logger.Logger {
	return logger.Logger{Out: io.Discard, Err: io.Discard}
}

func testConfig(t *testing.T) *configs.Config {
	t.Helper()
	dir := t.TempDir()
	return configs.Defaults(&configs.Settings{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	})
}

func newTestBook(t *testing.T) *Book {
	t.Helper()
	cfg := testConfig(t)
	ctx := context.Background()

	err := InitKey(ctx, KeyInitOptions{
		Path:      cfg.Keys.KeyFile,
		Kind:      secrets.KeyKindRandom,
		AuditPath: cfg.Log.AuditFile,
	})
	if err != nil {
		t.Fatalf("InitKey failed: %v", err)
	}

	book, err := OpenBook(ctx, OpenOptions{Config: cfg, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("OpenBook failed: %v", err)
	}
	return book
}

func addAll(t *testing.T, book *Book, names ...string) []contacts.Contact {
	t.Helper()
	var added []contacts.Contact
	for _, name := range names {
		c, err := book.Add(context.Background(), contacts.Contact{Name: name, Phone: "555-0000"})
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", name, err)
		}
		added = append(added, c)
	}
	return added
}

// withoutTimes zeroes the store-assigned timestamps so lists can be
// compared against literals.
func withoutTimes(list []contacts.Contact) []contacts.Contact {
	out := make([]contacts.Contact, len(list))
	for i, c := range list {
		c.CreatedAt, c.UpdatedAt = time.Time{}, time.Time{}
		out[i] = c
	}
	return out
}

func TestOpenBookWithoutKey(t *testing.T) {
	cfg := testConfig(t)

	_, err := OpenBook(context.Background(), OpenOptions{Config: cfg, Logger: quietLogger()})
	if !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestOpenBookCreatesKeyOnFirstUse(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	book, err := OpenBook(ctx, OpenOptions{Config: cfg, Logger: quietLogger(), CreateKey: true})
	if err != nil {
		t.Fatalf("OpenBook failed: %v", err)
	}
	if book.CreatedKey != cfg.Keys.KeyFile {
		t.Errorf("expected CreatedKey %q, got %q", cfg.Keys.KeyFile, book.CreatedKey)
	}
	kind, err := secrets.KeyFileKind(cfg.Keys.KeyFile)
	if err != nil || kind != secrets.KeyKindRandom {
		t.Errorf("expected a random key file, got %q (%v)", kind, err)
	}
	if _, err := book.Add(ctx, contacts.Contact{Name: "Ann"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entries, err := audit.ReadEntries(cfg.Log.AuditFile)
	if err != nil || len(entries) == 0 || entries[0].Operation != audit.OpKeyInit {
		t.Errorf("expected key-init audit entry first, got %+v (%v)", entries, err)
	}

	again, err := OpenBook(ctx, OpenOptions{Config: cfg, Logger: quietLogger(), CreateKey: true})
	if err != nil {
		t.Fatalf("second OpenBook failed: %v", err)
	}
	if again.CreatedKey != "" {
		t.Errorf("expected existing key to be reused, got CreatedKey %q", again.CreatedKey)
	}
	list, err := again.List(ctx)
	if err != nil || len(list) != 1 {
		t.Errorf("expected the contact to open with the same key, got %d (%v)", len(list), err)
	}
}

func TestOpenBookKeepsMissingKeyWhenDataExists(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()
	addAll(t, book, "Ann")

	cfg := testConfig(t)
	cfg.Storage.DataFile = book.Vault.Path

	_, err := OpenBook(ctx, OpenOptions{Config: cfg, Logger: quietLogger(), CreateKey: true})
	if !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	if utils.FileExists(cfg.Keys.KeyFile) {
		t.Error("no key should be created over an existing contact file")
	}
}

func TestAddPersistsAcrossBooks(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	added, err := book.Add(ctx, contacts.Contact{Name: "Ann Lee", Email: "ann@x.com", Category: contacts.CategoryFriend})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID != 1 {
		t.Errorf("expected id 1, got %d", added.ID)
	}

	// A second Book over the same files sees the change.
	reopened := &Book{Vault: book.Vault, Backups: book.Backups, Logger: quietLogger()}
	got, err := reopened.Get(ctx, added.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(added, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRejectsInvalidContact(t *testing.T) {
	book := newTestBook(t)

	_, err := book.Add(context.Background(), contacts.Contact{Name: "  "})
	if !errors.Is(err, kerrors.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if book.Vault.Exists() {
		t.Error("expected no contact file after a failed add")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()
	added := addAll(t, book, "Ann", "Bob", "Cy")

	updated, err := book.Update(ctx, added[1].ID, contacts.Fields{Phone: contacts.StringField("555-9999")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Phone != "555-9999" || updated.Name != "Bob" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if _, err := book.Update(ctx, added[1].ID, contacts.Fields{}); !errors.Is(err, kerrors.ErrValidation) {
		t.Errorf("expected ErrValidation for empty patch, got %v", err)
	}
	if _, err := book.Update(ctx, 42, contacts.Fields{Name: contacts.StringField("x")}); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	removed, err := book.Delete(ctx, added[0].ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.Name != "Ann" {
		t.Errorf("expected Ann removed, got %q", removed.Name)
	}
	if _, err := book.Delete(ctx, added[0].ID); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	list, err := book.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range list {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"Bob", "Cy"}, names); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	// Ids are never reused.
	next, err := book.Add(ctx, contacts.Contact{Name: "Dee"})
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != 4 {
		t.Errorf("expected id 4, got %d", next.ID)
	}
}

func TestSearch(t *testing.T) {
	book := newTestBook(t)
	addAll(t, book, "Ann Lee", "Bob Stone", "Lee Park")

	results, err := book.Search(context.Background(), contacts.Query{Text: "lee", Field: contacts.FieldName})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].Name != "Ann Lee" || results[1].Name != "Lee Park" {
		t.Errorf("unexpected search results: %+v", results)
	}
}

func TestExportImportMerge(t *testing.T) {
	ctx := context.Background()
	source := newTestBook(t)
	addAll(t, source, "Ann", "Bob")

	for _, format := range codec.Formats {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+string(format))
			exported, err := source.Export(ctx, ExportOptions{Path: path})
			if err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			if exported.Format != format || exported.Count != 2 {
				t.Errorf("unexpected export result: %+v", exported)
			}

			target := newTestBook(t)
			addAll(t, target, "Zed")

			result, err := target.Import(ctx, ImportOptions{Path: path})
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}
			if result.Imported != 2 || result.Total != 3 {
				t.Errorf("unexpected import result: %+v", result)
			}

			list, err := target.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			want := []contacts.Contact{
				{ID: 1, Name: "Zed", Phone: "555-0000", Category: contacts.CategoryGeneral},
				{ID: 2, Name: "Ann", Phone: "555-0000", Category: contacts.CategoryGeneral},
				{ID: 3, Name: "Bob", Phone: "555-0000", Category: contacts.CategoryGeneral},
			}
			if diff := cmp.Diff(want, withoutTimes(list)); diff != "" {
				t.Errorf("merged contacts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExportWithoutPathReturnsData(t *testing.T) {
	book := newTestBook(t)
	addAll(t, book, "Ann")

	result, err := book.Export(context.Background(), ExportOptions{Format: codec.FormatCSV})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Data) == 0 {
		t.Error("expected encoded data")
	}

	if _, err := book.Export(context.Background(), ExportOptions{}); !errors.Is(err, kerrors.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat without format, got %v", err)
	}
	if _, err := book.Export(context.Background(), ExportOptions{Path: "out.xml"}); !errors.Is(err, kerrors.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for .xml, got %v", err)
	}
}

func TestImportReplaceTakesSafetyBackup(t *testing.T) {
	ctx := context.Background()
	book := newTestBook(t)
	addAll(t, book, "Old One", "Old Two")

	source := newTestBook(t)
	addAll(t, source, "New")
	exported, err := source.Export(ctx, ExportOptions{Format: codec.FormatJSON})
	if err != nil {
		t.Fatal(err)
	}

	result, err := book.Import(ctx, ImportOptions{Data: exported.Data, Format: codec.FormatJSON, Mode: ImportModeReplace})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Replaced != 2 || result.Total != 1 {
		t.Errorf("unexpected import result: %+v", result)
	}
	if result.SafetyBackup == "" {
		t.Fatal("expected a safety backup before replace")
	}

	restored, err := book.Backups.Restore(result.SafetyBackup)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Len() != 2 {
		t.Errorf("expected safety backup to hold 2 contacts, got %d", restored.Len())
	}
}

func TestImportDryRunChangesNothing(t *testing.T) {
	ctx := context.Background()
	book := newTestBook(t)
	addAll(t, book, "Ann")

	before, err := os.ReadFile(book.Vault.Path)
	if err != nil {
		t.Fatal(err)
	}

	exported, err := book.Export(ctx, ExportOptions{Format: codec.FormatGob})
	if err != nil {
		t.Fatal(err)
	}
	result, err := book.Import(ctx, ImportOptions{Data: exported.Data, Format: codec.FormatGob, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if !result.DryRun || result.Total != 2 {
		t.Errorf("unexpected dry run result: %+v", result)
	}

	after, err := os.ReadFile(book.Vault.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("dry run modified the contact file")
	}
}

func TestImportCorruptInput(t *testing.T) {
	book := newTestBook(t)

	_, err := book.Import(context.Background(), ImportOptions{Data: []byte("{not json"), Format: codec.FormatJSON})
	if !errors.Is(err, kerrors.ErrCorruptData) {
		t.Errorf("expected ErrCorruptData, got %v", err)
	}
}

func TestParseImportMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ImportMode
		wantErr bool
	}{
		{"", ImportModeMerge, false},
		{"merge", ImportModeMerge, false},
		{"REPLACE", ImportModeReplace, false},
		{"append", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseImportMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseImportMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseImportMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	book := newTestBook(t)

	if _, err := book.Backup(ctx); !errors.Is(err, kerrors.ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrIO wrapping os.ErrNotExist, got %v", err)
	}
	if _, err := book.Restore(ctx, RestoreOptions{}); !errors.Is(err, kerrors.ErrNoBackups) {
		t.Errorf("expected ErrNoBackups, got %v", err)
	}

	addAll(t, book, "Ann", "Bob")
	taken, err := book.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	if _, err := book.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	addAll(t, book, "Cy")

	result, err := book.Restore(ctx, RestoreOptions{})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if result.Path != taken.Path || result.Count != 2 {
		t.Errorf("unexpected restore result: %+v", result)
	}
	if result.SafetyBackup == "" {
		t.Error("expected a safety backup of the replaced file")
	}

	list, err := book.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []contacts.Contact{
		{ID: 1, Name: "Ann", Phone: "555-0000", Category: contacts.CategoryGeneral},
		{ID: 2, Name: "Bob", Phone: "555-0000", Category: contacts.CategoryGeneral},
	}
	if diff := cmp.Diff(want, withoutTimes(list)); diff != "" {
		t.Errorf("restored contacts mismatch (-want +got):\n%s", diff)
	}

	backups, err := book.ListBackups(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("expected original and safety backups, got %d", len(backups))
	}

	if _, err := book.Restore(ctx, RestoreOptions{Path: filepath.Join(t.TempDir(), "missing")}); !errors.Is(err, kerrors.ErrIO) {
		t.Errorf("expected ErrIO for missing backup, got %v", err)
	}
}

func TestBackupPrunesToKeep(t *testing.T) {
	ctx := context.Background()
	book := newTestBook(t)
	book.Keep = 2
	addAll(t, book, "Ann")

	var last *BackupResult
	for i := 0; i < 4; i++ {
		result, err := book.Backup(ctx)
		if err != nil {
			t.Fatal(err)
		}
		last = result
	}
	if len(last.Pruned) != 1 {
		t.Errorf("expected the last backup to prune one, got %v", last.Pruned)
	}

	backups, err := book.ListBackups(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups kept, got %d", len(backups))
	}
	if backups[0].Path != last.Path {
		t.Errorf("expected newest backup kept, got %s", backups[0].Path)
	}

	removed, err := book.PruneBackups(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 {
		t.Errorf("expected 2 removed, got %d", len(removed))
	}
}

func TestMutationsWriteAuditEntries(t *testing.T) {
	ctx := context.Background()
	book := newTestBook(t)
	added := addAll(t, book, "Ann")
	if _, err := book.Update(ctx, added[0].ID, contacts.Fields{Notes: contacts.StringField("met at conf")}); err != nil {
		t.Fatal(err)
	}
	if _, err := book.Delete(ctx, added[0].ID); err != nil {
		t.Fatal(err)
	}

	result, err := Log(ctx, LogOptions{Path: book.Audit.Path})
	if err != nil {
		t.Fatal(err)
	}
	var ops []string
	for _, e := range result.Entries {
		ops = append(ops, e.Operation)
	}
	want := []string{audit.OpKeyInit, audit.OpAdd, audit.OpUpdate, audit.OpDelete}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("audit operations mismatch (-want +got):\n%s", diff)
	}
	for _, e := range result.Entries[1:] {
		if e.ContactID != uint64(added[0].ID) || e.ContactName != "Ann" {
			t.Errorf("unexpected contact details in %+v", e)
		}
	}
}

func TestCancelledContextTouchesNothing(t *testing.T) {
	book := newTestBook(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := book.Add(ctx, contacts.Contact{Name: "Ann"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if book.Vault.Exists() {
		t.Error("expected no contact file after cancelled add")
	}
	if _, err := book.Backup(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled from Backup, got %v", err)
	}
}

func TestInitKeyRefusesOverwrite(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()
	opts := KeyInitOptions{Path: cfg.Keys.KeyFile, Kind: secrets.KeyKindRandom}

	if err := InitKey(ctx, opts); err != nil {
		t.Fatal(err)
	}
	if err := InitKey(ctx, opts); !errors.Is(err, kerrors.ErrKeyExists) {
		t.Errorf("expected ErrKeyExists, got %v", err)
	}
	opts.Force = true
	if err := InitKey(ctx, opts); err != nil {
		t.Errorf("expected forced InitKey to succeed, got %v", err)
	}
}
