package scene

import "errors"

var (
	ErrEmptyName    = errors.New("scene: empty node name")
	ErrReservedName = errors.New("scene: node name is reserved")
	ErrInvalidName  = errors.New("scene: node names must not contain '.'")
	ErrNameTaken    = errors.New("scene: node name already in use")
)
