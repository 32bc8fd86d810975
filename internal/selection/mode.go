package selection

import (
	"github.com/youruser/bigcollage/internal/apperr"
)

// Mode is a supported selection capacity.
type Mode int

const (
	Big5  Mode = 5
	Big15 Mode = 15
)

// Modes lists the supported modes in display order.
var Modes = []Mode{Big5, Big15}

// ParseMode validates a capacity value.
func ParseMode(capacity int) (Mode, error) {
	for _, m := range Modes {
		if int(m) == capacity {
			return m, nil
		}
	}
	return 0, apperr.New(apperr.CodeInvalidMode, "unsupported mode %d (want 5 or 15)", capacity)
}

// Capacity returns the number of items the mode requires.
func (m Mode) Capacity() int {
	return int(m)
}
