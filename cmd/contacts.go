package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/internal/contacts"
	"github.com/PolarWolf314/rolodex/internal/shell"
	"github.com/PolarWolf314/rolodex/internal/ui"
)

// ContactsCmd is the top-level contacts command.
var ContactsCmd = &cobra.Command{
	Use:     "contacts",
	Aliases: []string{"c"},
	Short:   "Manage contacts in the encrypted contact book",
	Long: `Adds, lists, shows, updates, deletes and searches contacts, and moves them
in and out of the contact book.

Every change is saved to the encrypted contact file immediately.

Examples:
  rolodex contacts add "Ann Lee" --phone 555-1234 --category friend
  rolodex contacts list
  rolodex contacts search lee --field name
  rolodex contacts update 3 --email ann@example.com
  rolodex contacts delete 3`,
}

var (
	contactPhone    string
	contactEmail    string
	contactAddress  string
	contactCategory string
	contactNotes    string
	contactName     string
	listJSON        bool
	searchField     string
)

func init() {
	for _, c := range []*cobra.Command{addCmd, updateCmd} {
		c.Flags().StringVarP(&contactPhone, "phone", "p", "", "phone number")
		c.Flags().StringVarP(&contactEmail, "email", "e", "", "email address")
		c.Flags().StringVarP(&contactAddress, "address", "a", "", "postal address")
		c.Flags().StringVarP(&contactCategory, "category", "c", "", "category (general, family, friend, work, other)")
		c.Flags().StringVar(&contactNotes, "notes", "", "free-form notes")
	}
	updateCmd.Flags().StringVarP(&contactName, "name", "n", "", "new name")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
	searchCmd.Flags().StringVarP(&searchField, "field", "f", "", "search only this field (name, phone, email, category)")

	ContactsCmd.AddCommand(addCmd)
	ContactsCmd.AddCommand(listCmd)
	ContactsCmd.AddCommand(showCmd)
	ContactsCmd.AddCommand(updateCmd)
	ContactsCmd.AddCommand(deleteCmd)
	ContactsCmd.AddCommand(searchCmd)
}

// resetContactsCommandState resets the contacts commands' global state for testing.
func resetContactsCommandState() {
	contactPhone = ""
	contactEmail = ""
	contactAddress = ""
	contactCategory = ""
	contactNotes = ""
	contactName = ""
	listJSON = false
	searchField = ""
	resetCobraFlagState(ContactsCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")
		ctx := commandContext(cmd)

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		added, err := book.Add(ctx, contacts.Contact{
			Name:     args[0],
			Phone:    contactPhone,
			Email:    contactEmail,
			Address:  contactAddress,
			Category: contacts.Category(contactCategory),
			Notes:    contactNotes,
		})
		if err != nil {
			return report(cmd, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Contact %s added with id %d\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(added.Name), added.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all contacts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
		ctx := commandContext(cmd)

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		list, err := book.List(ctx)
		if err != nil {
			return report(cmd, err)
		}
		Logger.Debugf("Listing %d contacts", len(list))

		return printContacts(cmd, list, listJSON, "No contacts available.")
	},
}

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		id, err := contacts.ParseID(args[0])
		if err != nil {
			return report(cmd, err)
		}

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		c, err := book.Get(ctx, id)
		if err != nil {
			return report(cmd, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), shell.Card(c))
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change fields of a contact",
	Long: `Changes the fields given as flags and leaves the rest unchanged.

Examples:
  rolodex contacts update 3 --phone 555-0000
  rolodex contacts update 3 --name "Ann Park" --category family
  rolodex contacts update 3 --notes ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting update command")
		ctx := commandContext(cmd)

		id, err := contacts.ParseID(args[0])
		if err != nil {
			return report(cmd, err)
		}

		var f contacts.Fields
		values := map[string]string{
			"name":     contactName,
			"phone":    contactPhone,
			"email":    contactEmail,
			"address":  contactAddress,
			"category": contactCategory,
			"notes":    contactNotes,
		}
		for field, value := range values {
			if !cmd.Flags().Changed(field) {
				continue
			}
			if err := f.SetByName(field, value); err != nil {
				return report(cmd, err)
			}
		}

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		updated, err := book.Update(ctx, id, f)
		if err != nil {
			return report(cmd, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Contact updated.\n%s", ui.Success.Sprint("✓"), shell.Card(updated))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a contact",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete command")
		ctx := commandContext(cmd)

		id, err := contacts.ParseID(args[0])
		if err != nil {
			return report(cmd, err)
		}

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		removed, err := book.Delete(ctx, id)
		if err != nil {
			return report(cmd, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s.\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(removed.Name))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [TEXT]",
	Short: "Search contacts",
	Long: `Finds contacts whose name, phone, email or category contains TEXT,
ignoring case. Use --field to search a single field.

Examples:
  rolodex contacts search lee
  rolodex contacts search example.com --field email
  rolodex contacts search work --field category`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting search command")
		ctx := commandContext(cmd)

		field, err := contacts.ParseField(searchField)
		if err != nil {
			return report(cmd, err)
		}
		q := contacts.Query{Field: field}
		if len(args) == 1 {
			q.Text = args[0]
		}

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		results, err := book.Search(ctx, q)
		if err != nil {
			return report(cmd, err)
		}

		return printContacts(cmd, results, false, ui.Error.Sprint("✗")+" No matching contact found.")
	},
}

func printContacts(cmd *cobra.Command, list []contacts.Contact, asJSON bool, empty string) error {
	out := cmd.OutOrStdout()
	if asJSON {
		if list == nil {
			list = []contacts.Contact{}
		}
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal contacts to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(list) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}
	fmt.Fprint(out, shell.ContactTable(list))
	return nil
}
