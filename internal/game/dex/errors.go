package dex

import "errors"

// Sentinel errors returned while loading reference data.
var (
	ErrUnknownType   = errors.New("dex: unknown type")
	ErrUnknownStat   = errors.New("dex: unknown stat")
	ErrUnknownClass  = errors.New("dex: unknown move class")
	ErrUnknownFlag   = errors.New("dex: unknown move flag")
	ErrUnknownTarget = errors.New("dex: unknown move target")
	ErrDuplicateID   = errors.New("dex: duplicate id")
	ErrInvalidRecord = errors.New("dex: invalid record")
)
