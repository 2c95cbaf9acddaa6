package admin

import "errors"

// ErrDeclined is returned when a destructive action is refused at the
// confirmation step. No network call was made.
var ErrDeclined = errors.New("admin: action declined")

// Confirmer gates destructive actions (delete, role promotion). The network
// call is issued only after Confirm returns true.
type Confirmer interface {
	Confirm(action string) bool
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(action string) bool

func (f ConfirmFunc) Confirm(action string) bool { return f(action) }

// AutoConfirm approves everything; for scripted runs with --yes.
var AutoConfirm = ConfirmFunc(func(string) bool { return true })
