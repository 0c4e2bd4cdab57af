//go:build tinygo || !cgo

package molaux

import (
	"errors"

	"github.com/soypat/molmesh"
)

func ui(geo *molmesh.Geometry, cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
