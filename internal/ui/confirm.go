// Package ui holds the small interactive surface of the tool.
package ui

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question on the terminal. Declining (or ctrl-c) is
// a "no", not an error.
func Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
