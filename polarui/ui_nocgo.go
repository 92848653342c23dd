//go:build tinygo || !cgo

package polarui

import (
	"errors"

	"github.com/soypat/geometry/ms2"
)

func ui(points []ms2.Vec, cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
