package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/rolodex/internal/audit"
	"github.com/PolarWolf314/rolodex/internal/codec"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

// exportPerm is the mode of export files. Exports are plaintext.
const exportPerm = 0600

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// Path is the output file. If empty, the encoded data is only returned
	// in the result.
	Path string

	// Format is the output format. If empty, it is inferred from Path.
	Format codec.Format
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	Path   string
	Format codec.Format
	Count  int

	// Data is the encoded output.
	Data []byte
}

// resolveFormat picks the explicit format or infers it from path.
func resolveFormat(format codec.Format, path string) (codec.Format, error) {
	if format != "" {
		return codec.ParseFormat(string(format))
	}
	if path == "" {
		return "", fmt.Errorf("%w: no format given", kerrors.ErrUnsupportedFormat)
	}
	return codec.FormatFromPath(path)
}

// Export writes every contact as unencrypted Codec output.
//
// Returns ErrUnsupportedFormat if no format is given and none can be
// inferred from the path.
func (b *Book) Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	format, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return nil, err
	}

	store, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := codec.Encode(store, format)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		Path:   opts.Path,
		Format: format,
		Count:  store.Len(),
		Data:   data,
	}
	if opts.Path == "" {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := utils.AtomicWriteFile(opts.Path, data, exportPerm); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %w", kerrors.ErrIO, opts.Path, err)
	}

	b.Logger.Infof("Exported %d contacts to %s as %s", result.Count, opts.Path, format)
	b.Audit.Record(audit.Entry{
		Operation: audit.OpExport,
		Format:    string(format),
		Path:      opts.Path,
		Count:     result.Count,
	})
	return result, nil
}

// ImportMode represents the import strategy.
type ImportMode int

const (
	// ImportModeMerge appends imported records as new contacts with fresh ids.
	ImportModeMerge ImportMode = iota
	// ImportModeReplace replaces every contact with the imported records.
	ImportModeReplace
)

func (m ImportMode) String() string {
	if m == ImportModeReplace {
		return "replace"
	}
	return "merge"
}

// ParseImportMode parses "merge" or "replace".
func ParseImportMode(s string) (ImportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merge":
		return ImportModeMerge, nil
	case "replace":
		return ImportModeReplace, nil
	}
	return 0, fmt.Errorf("%w: unknown import mode %q", kerrors.ErrValidation, s)
}

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Path is the file to import. Ignored when Data is set.
	Path string

	// Data is the encoded input, for reading from stdin.
	Data []byte

	// Format is the input format. If empty, it is inferred from Path.
	Format codec.Format

	// Mode is the import strategy (merge or replace).
	Mode ImportMode

	// DryRun previews the import without making changes.
	DryRun bool
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Mode   ImportMode
	Format codec.Format

	// Imported is the number of records read from the input.
	Imported int

	// Replaced is the number of existing contacts dropped (replace mode).
	Replaced int

	// Total is the number of contacts after the import.
	Total int

	// SafetyBackup is the backup taken before a replace, if any.
	SafetyBackup string

	// DryRun indicates whether this was a dry-run.
	DryRun bool
}

// Import reads Codec output and merges it into, or replaces, the stored
// contacts.
//
// Returns ErrCorruptData if the input cannot be decoded and
// ErrUnsupportedFormat if the format is unknown.
func (b *Book) Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	format, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return nil, err
	}

	data := opts.Data
	if data == nil {
		if opts.Path == "" {
			return nil, fmt.Errorf("%w: nothing to import", kerrors.ErrValidation)
		}
		if data, err = os.ReadFile(opts.Path); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", kerrors.ErrIO, opts.Path, err)
		}
	}

	incoming, err := codec.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding import: %w", err)
	}

	current, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Mode:     opts.Mode,
		Format:   format,
		Imported: incoming.Len(),
		DryRun:   opts.DryRun,
	}

	next := current
	switch opts.Mode {
	case ImportModeReplace:
		result.Replaced = current.Len()
		next = incoming
	default:
		for _, c := range incoming.List() {
			if _, err := current.Add(c); err != nil {
				return nil, fmt.Errorf("importing %q: %w", c.Name, err)
			}
		}
	}
	result.Total = next.Len()

	if opts.DryRun {
		b.Logger.Infof("Dry run: would import %d contacts (%s)", result.Imported, opts.Mode)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Mode == ImportModeReplace && b.Vault.Exists() {
		if result.SafetyBackup, err = b.Backups.Backup(b.Vault.Path); err != nil {
			return nil, fmt.Errorf("backing up before replace: %w", err)
		}
		b.Logger.Infof("Backed up current contacts to %s", result.SafetyBackup)
	}
	if err := b.Vault.Save(next); err != nil {
		return nil, err
	}

	b.Logger.Infof("Imported %d contacts from %s (%s)", result.Imported, sourceName(opts.Path), opts.Mode)
	b.Audit.Record(audit.Entry{
		Operation: audit.OpImport,
		Format:    string(format),
		Path:      opts.Path,
		Count:     result.Imported,
		Mode:      opts.Mode.String(),
	})
	return result, nil
}

func sourceName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
