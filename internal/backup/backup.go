package backup

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

const (
	timestampLayout = "20060102-150405.000000"
	backupPerm      = 0600
	backupPattern   = "*-[0-9][0-9][0-9][0-9][0-9][0-9][0-9][0-9]-[0-9][0-9][0-9][0-9][0-9][0-9].[0-9][0-9][0-9][0-9][0-9][0-9]*"
)

var timestampRe = regexp.MustCompile(`-(\d{8}-\d{6}\.\d{6})([^/\\]*)$`)

// Opener turns sealed bytes back into a store.
type Opener interface {
	Open(data []byte) (*contacts.Store, error)
}

// Info describes one backup file.
type Info struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

type Manager struct {
	Dir    string
	Opener Opener

	// Now defaults to time.Now.
	Now func() time.Time
}

func New(dir string, opener Opener) *Manager {
	return &Manager{Dir: dir, Opener: opener}
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

// Name returns the backup file name for storePath taken at t.
func Name(storePath string, t time.Time) string {
	base := filepath.Base(storePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + "-" + t.UTC().Format(timestampLayout) + ext
}

// Backup copies the persisted file at storePath into the backup directory
// and returns the backup's path.
func (m *Manager) Backup(storePath string) (string, error) {
	if _, err := os.Stat(storePath); err != nil {
		return "", fmt.Errorf("%w: %s: %w", kerrors.ErrIO, storePath, err)
	}

	t := m.now()
	dst := filepath.Join(m.Dir, Name(storePath, t))
	// Two backups in the same microsecond get distinct names.
	for utils.FileExists(dst) {
		t = t.Add(time.Microsecond)
		dst = filepath.Join(m.Dir, Name(storePath, t))
	}

	if err := utils.CopyFile(storePath, dst, backupPerm); err != nil {
		return "", fmt.Errorf("%w: copying %s: %w", kerrors.ErrIO, storePath, err)
	}

	return dst, nil
}

// Restore reads and opens the backup at backupPath. The caller decides
// what to do with the returned store.
func (m *Manager) Restore(backupPath string) (*contacts.Store, error) {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading backup %s: %w", kerrors.ErrIO, backupPath, err)
	}

	store, err := m.Opener.Open(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup %s: %w", backupPath, err)
	}
	return store, nil
}

// List returns the backups in the backup directory, newest first. A
// missing directory has no backups.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.Dir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	names, err := doublestar.Glob(os.DirFS(m.Dir), backupPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", kerrors.ErrIO, m.Dir, err)
	}

	backups := make([]Info, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		match := timestampRe.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		createdAt, err := time.Parse(timestampLayout, match[1])
		if err != nil {
			continue
		}
		path := filepath.Join(m.Dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		backups = append(backups, Info{
			Path:      path,
			Name:      name,
			CreatedAt: createdAt,
			Size:      info.Size(),
		})
	}

	slices.SortFunc(backups, func(a, b Info) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.Name, a.Name)
	})
	return backups, nil
}

// Latest returns the newest backup.
func (m *Manager) Latest() (Info, error) {
	backups, err := m.List()
	if err != nil {
		return Info{}, err
	}
	if len(backups) == 0 {
		return Info{}, fmt.Errorf("%w in %s", kerrors.ErrNoBackups, m.Dir)
	}
	return backups[0], nil
}

// Prune removes all but the newest keep backups and returns the removed
// paths. A keep of zero removes every backup.
func (m *Manager) Prune(keep int) ([]string, error) {
	if keep < 0 {
		return nil, fmt.Errorf("%w: keep must not be negative, got %d", kerrors.ErrValidation, keep)
	}

	backups, err := m.List()
	if err != nil {
		return nil, err
	}
	if len(backups) <= keep {
		return nil, nil
	}

	var removed []string
	for _, b := range backups[keep:] {
		if err := os.Remove(b.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("%w: removing %s: %w", kerrors.ErrIO, b.Path, err)
		}
		removed = append(removed, b.Path)
	}
	return removed, nil
}
