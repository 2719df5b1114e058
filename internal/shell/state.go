package shell

// State is a node of the menu state machine.
type State int

const (
	StateMain State = iota
	StateAddContact
	StateView
	StateSearch
	StateUpdate
	StateDelete
	StateExport
	StateImport
	StateBackup
	StateRestore
	StateExit
)

var stateNames = map[State]string{
	StateMain:       "main",
	StateAddContact: "add",
	StateView:       "view",
	StateSearch:     "search",
	StateUpdate:     "update",
	StateDelete:     "delete",
	StateExport:     "export",
	StateImport:     "import",
	StateBackup:     "backup",
	StateRestore:    "restore",
	StateExit:       "exit",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// menuItem is one numbered choice of the main menu.
type menuItem struct {
	key   string
	label string
	state State
}

var menu = []menuItem{
	{"1", "Add Contact", StateAddContact},
	{"2", "View All Contacts", StateView},
	{"3", "Search Contacts", StateSearch},
	{"4", "Update Contact", StateUpdate},
	{"5", "Delete Contact", StateDelete},
	{"6", "Export Contacts", StateExport},
	{"7", "Import Contacts", StateImport},
	{"8", "Back Up Contacts", StateBackup},
	{"9", "Restore From Backup", StateRestore},
	{"0", "Exit", StateExit},
}

// prompts lists the questions asked, in order, before a state's action
// runs. States without prompts act as soon as they are entered.
var prompts = map[State][]string{
	StateAddContact: {"Name: ", "Phone: ", "Email: ", "Address: ", "Category (general/family/friend/work/other): ", "Notes: "},
	StateSearch:     {"Search by (any/name/phone/email/category): ", "Enter value to search: "},
	StateUpdate:     {"Contact id to update: ", "Field to update (name/phone/email/address/category/notes): ", "New value: "},
	StateDelete:     {"Contact id to delete: "},
	StateExport:     {"Export to file: ", "Format (json/csv/gob, blank to use the file extension): "},
	StateImport:     {"Import from file: ", "Format (json/csv/gob, blank to use the file extension): ", "Mode (merge/replace): "},
	StateRestore:    {"Backup to restore (number, blank for newest): "},
}
