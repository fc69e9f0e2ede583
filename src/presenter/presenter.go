// Package presenter is the UI boundary of llm-switch. The core hands it plain
// data (discovered records, backend names) and receives plain decisions back;
// no filesystem logic lives here. Two implementations exist: an interactive
// terminal picker and a plain numbered-menu fallback. The core never asks
// which one it got.
package presenter

import (
	"errors"

	"llm-switch/src/discover"
	"llm-switch/src/switcher"
)

// ErrCancelled is returned when the user abstains from a choice. Callers
// treat it as a clean termination, not a failure.
var ErrCancelled = errors.New("cancelled")

// Presenter turns lists into user choices.
type Presenter interface {
	// ShowModels renders the discovered records. active, when non-empty, is
	// the file name of the currently active model and is highlighted.
	ShowModels(records []discover.ModelRecord, active string)
	// ChooseModel returns the selected record.
	ChooseModel(records []discover.ModelRecord) (discover.ModelRecord, error)
	// ChooseBackend returns one of the given destination backend names.
	ChooseBackend(names []string) (string, error)
	// ChooseMethod returns the placement method, preselecting def.
	ChooseMethod(def switcher.Method) (switcher.Method, error)
	// Confirm asks a yes/no question with the given default.
	Confirm(question string, def bool) (bool, error)
	// AskPath prompts for a directory path; empty input cancels.
	AskPath(prompt string) (string, error)
	// Notify prints a one-line status message.
	Notify(format string, args ...any)
}
