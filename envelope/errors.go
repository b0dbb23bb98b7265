package envelope

import "errors"

// ErrNotFrozen is returned by Sign, AddSignature, and Bytes when called
// before Freeze.
var ErrNotFrozen = errors.New("envelope: transaction not frozen")

// ErrAlreadyFrozen is returned by Freeze when called a second time with a
// different body than the one already frozen.
var ErrAlreadyFrozen = errors.New("envelope: transaction already frozen with different body")
