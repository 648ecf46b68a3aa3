package locations

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrAssetMissing     = errors.New("referenced asset does not exist")
)
