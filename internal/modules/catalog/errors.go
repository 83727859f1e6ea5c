package catalog

import "errors"

var (
	ErrCodeExists   = errors.New("code already exists")
	ErrCityNotFound = errors.New("city not found")
	ErrCityInUse    = errors.New("city still has locations")
)
