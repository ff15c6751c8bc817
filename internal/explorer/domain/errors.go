package domain

import "errors"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrLayerNotFound    = errors.New("layer not found")
	ErrUnitTypeNotFound = errors.New("unit type not found")
	ErrNoTourLayer      = errors.New("project has no tour layer")
)
