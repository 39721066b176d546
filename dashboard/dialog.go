package dashboard

// DialogKind names which dialog a screen shows.
type DialogKind int

const (
	DialogClosed DialogKind = iota
	DialogAdd
	DialogEdit
	DialogDelete
)

func (k DialogKind) String() string {
	switch k {
	case DialogAdd:
		return "add"
	case DialogEdit:
		return "edit"
	case DialogDelete:
		return "delete"
	default:
		return "closed"
	}
}

// Dialog is the single dialog state of a screen. Opening a dialog replaces
// whatever was open, so at most one exists at a time.
type Dialog interface {
	Kind() DialogKind
	isDialog()
}

// Closed means no dialog is shown.
type Closed struct{}

// AddOpen holds a blank draft for a new record.
type AddOpen struct {
	Draft *FormState
}

// EditOpen holds a draft seeded from the row being edited.
type EditOpen struct {
	ID    int64
	Draft *FormState
}

// DeleteConfirm only remembers which record to delete.
type DeleteConfirm struct {
	ID int64
}

func (Closed) Kind() DialogKind        { return DialogClosed }
func (AddOpen) Kind() DialogKind       { return DialogAdd }
func (EditOpen) Kind() DialogKind      { return DialogEdit }
func (DeleteConfirm) Kind() DialogKind { return DialogDelete }

func (Closed) isDialog()        {}
func (AddOpen) isDialog()       {}
func (EditOpen) isDialog()      {}
func (DeleteConfirm) isDialog() {}

// draftOf returns the draft of an add or edit dialog.
func draftOf(d Dialog) (*FormState, bool) {
	switch dialog := d.(type) {
	case AddOpen:
		return dialog.Draft, true
	case EditOpen:
		return dialog.Draft, true
	default:
		return nil, false
	}
}
