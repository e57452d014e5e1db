package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits, typed or pasted.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// RangeErrors are the messages reported by a ranged NumericalEntry.
type RangeErrors struct {
	Required   error
	NotNumber  error
	OutOfRange error
}

// NewRangedEntry creates a NumericalEntry whose validator requires an integer in [min, max].
func NewRangedEntry(min, max int, errs RangeErrors) *NumericalEntry {
	entry := NewNumericalEntry()
	entry.Validator = func(s string) error {
		if s == "" {
			return errs.Required
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return errs.NotNumber
		}
		if n < min || n > max {
			return errs.OutOfRange
		}
		return nil
	}
	return entry
}

// TypedRune drops anything but 0-9.
func (e *NumericalEntry) TypedRune(r rune) {
	if isDigit(r) {
		e.Entry.TypedRune(r)
	}
}

// TypedShortcut filters pasted text down to its digits.
func (e *NumericalEntry) TypedShortcut(s fyne.Shortcut) {
	paste, ok := s.(*fyne.ShortcutPaste)
	if !ok || paste.Clipboard == nil {
		e.Entry.TypedShortcut(s)
		return
	}
	for _, r := range strings.Map(keepDigits, paste.Clipboard.Content()) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func keepDigits(r rune) rune {
	if isDigit(r) {
		return r
	}
	return -1
}
