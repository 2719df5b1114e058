package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// nextIDPrefix starts the optional first line that carries the store's id
// counter. Rows start with a numeric id, so the line cannot be a record.
const nextIDPrefix = "#next_id="

var csvHeader = []string{"id", "name", "phone", "email", "address", "category", "notes", "created_at", "updated_at"}

type csvCodec struct{}

func (csvCodec) Encode(store *contacts.Store) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s%d\n", nextIDPrefix, store.NextID())
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("encoding csv header: %w", err)
	}
	for _, c := range store.List() {
		row := []string{
			c.ID.String(),
			c.Name,
			c.Phone,
			c.Email,
			c.Address,
			string(c.Category),
			c.Notes,
			c.CreatedAt.Format(time.RFC3339Nano),
			c.UpdatedAt.Format(time.RFC3339Nano),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("encoding csv row for contact %d: %w", c.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encoding csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (csvCodec) Decode(data []byte) (*contacts.Store, error) {
	nextID, data, err := splitNextID(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", kerrors.ErrCorruptData, err)
	}
	if len(rows) == 0 {
		return contacts.Restore(nil, nextID)
	}
	if !slices.Equal(rows[0], csvHeader) {
		return nil, fmt.Errorf("%w: csv: unexpected header %v", kerrors.ErrCorruptData, rows[0])
	}

	records := make([]contacts.Contact, 0, len(rows)-1)
	for i, row := range rows[1:] {
		c, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %v", kerrors.ErrCorruptData, i+2, err)
		}
		records = append(records, c)
	}
	return contacts.Restore(records, nextID)
}

// splitNextID reads the id counter line if present and returns the rest of
// the data. Files written by hand may omit it.
func splitNextID(data []byte) (contacts.ID, []byte, error) {
	if !bytes.HasPrefix(data, []byte(nextIDPrefix)) {
		return 0, data, nil
	}
	line, rest, _ := bytes.Cut(data, []byte("\n"))
	value := strings.TrimSpace(string(line[len(nextIDPrefix):]))
	id, err := contacts.ParseID(value)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: csv: bad next_id line: %v", kerrors.ErrCorruptData, err)
	}
	return id, rest, nil
}

func parseCSVRow(row []string) (contacts.Contact, error) {
	id, err := contacts.ParseID(row[0])
	if err != nil {
		return contacts.Contact{}, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row[7])
	if err != nil {
		return contacts.Contact{}, fmt.Errorf("created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row[8])
	if err != nil {
		return contacts.Contact{}, fmt.Errorf("updated_at: %w", err)
	}
	return contacts.Contact{
		ID:        id,
		Name:      row[1],
		Phone:     row[2],
		Email:     row[3],
		Address:   row[4],
		Category:  contacts.Category(row[5]),
		Notes:     row[6],
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
