package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no system clipboard tool is available
// (for example xclip/xsel/wl-copy on a headless Linux box).
var ErrUnsupported = errors.New("clipboard: not supported on this system")

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
