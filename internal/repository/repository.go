package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (memory, postgres) inside this directory.

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("duplicate id")
)
