// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"errors"
	"fmt"
)

// CodeLength is the number of symbols in the passcode
const CodeLength = 5

var (
	ErrCodeIndex       = errors.New("code index out of range")
	ErrUnreachableCode = errors.New("code symbol is not offered by its selector")
)

var (
	// Digits are the symbols of the first three selectors
	Digits = []rune("0123456789")
	// Letters are the symbols of the last two selectors
	Letters = []rune("ABCFVGTWYZ")

	// DefaultCode seeds the selectors
	DefaultCode = Code{'0', '0', '0', 'A', 'B'}
)

// DefaultSymbols returns the option list of each selector
func DefaultSymbols() [CodeLength][]rune {
	return [CodeLength][]rune{Digits, Digits, Digits, Letters, Letters}
}

// Code is the symbol sequence entered on the selectors
type Code [CodeLength]rune

// Set replaces the symbol at index i
func (c *Code) Set(i int, r rune) error {
	if i < 0 || i >= CodeLength {
		return fmt.Errorf("%d: %w", i, ErrCodeIndex)
	}
	c[i] = r
	return nil
}

func (c Code) String() string {
	return string(c[:])
}

// ParseCode converts a string of exactly CodeLength symbols into a Code
func ParseCode(s string) (Code, error) {
	var c Code
	r := []rune(s)
	if len(r) != CodeLength {
		return c, fmt.Errorf("code %q must have %d symbols", s, CodeLength)
	}
	copy(c[:], r)
	return c, nil
}

// Reachable checks that every symbol of c is an option of its selector
func (c Code) Reachable(symbols [CodeLength][]rune) error {
	for i, r := range c {
		if !containsRune(symbols[i], r) {
			return fmt.Errorf("position %d: %q: %w", i, r, ErrUnreachableCode)
		}
	}
	return nil
}
