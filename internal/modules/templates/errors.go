package templates

import "errors"

var ErrTemplateNotFound = errors.New("expense template not found")
