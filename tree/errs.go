package tree

import "errors"

var (
	ErrSamePath        = errors.New("path equals sibling")
	ErrParentMismatch  = errors.New("parents differ")
	ErrSiblingNotFound = errors.New("no such sibling")
)
