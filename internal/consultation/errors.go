package consultation

import "errors"

var (
	// ErrNoSelection is returned when a mutation needs a selected record
	// and none is selected.
	ErrNoSelection = errors.New("no consultation record selected")
)
