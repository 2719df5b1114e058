package shell

import (
	"fmt"
	"strings"

	"github.com/common-nighthawk/go-figure"

	"github.com/PolarWolf314/rolodex/internal/backup"
	"github.com/PolarWolf314/rolodex/internal/contacts"
	"github.com/PolarWolf314/rolodex/internal/ui"
)

var separator = strings.Repeat("-", 40)

// Banner returns the ASCII art title shown when the shell starts on a terminal.
func Banner() string {
	return figure.NewFigure("rolodex", "", true).String()
}

// Card renders one contact as a multi-line block. Empty fields are omitted.
func Card(c contacts.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", ui.Info.Sprintf("#%d", c.ID), ui.Highlight.Sprint(c.Name), ui.Muted.Sprint(c.Category))

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "  %s %s\n", ui.Label.Sprintf("%-8s", label+":"), value)
	}
	field("Phone", c.Phone)
	field("Email", c.Email)
	field("Address", c.Address)
	field("Notes", c.Notes)
	field("Added", c.CreatedAt.Format("2006-01-02 15:04"))
	if !c.UpdatedAt.Equal(c.CreatedAt) {
		field("Updated", c.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

// ContactTable renders contacts as aligned columns.
func ContactTable(list []contacts.Contact) string {
	rows := [][]string{{"id", "name", "phone", "email", "category"}}
	for _, c := range list {
		rows = append(rows, []string{c.ID.String(), c.Name, c.Phone, c.Email, string(c.Category)})
	}
	return ui.Table(rows)
}

// BackupList renders backups as a numbered list, newest first.
func BackupList(backups []backup.Info) string {
	var b strings.Builder
	for i, info := range backups {
		fmt.Fprintf(&b, "%s %s %s\n",
			ui.Info.Sprintf("%2d.", i+1),
			info.Name,
			ui.Muted.Sprintf("%s, %s", info.CreatedAt.Format("2006-01-02 15:04:05 MST"), formatSize(info.Size)))
	}
	return b.String()
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/unit)
}
