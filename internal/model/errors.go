package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account name already in use")

	// Character errors
	ErrCharacterNotFound = errors.New("character not found")
	ErrNameTaken         = errors.New("character name already in use")

	// Promise errors
	ErrPromiseNotFound = errors.New("authorization promise not found")

	// World errors
	ErrRegionNotFound = errors.New("region not found")
)
