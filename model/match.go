package model

import (
	"fmt"

	"sportzone-booking/errors"
)

// Matches is the ordered list of bookable matches. Users pick them by 1-based number.
type Matches []string

func (m Matches) Select(number int) (string, error) {
	if number < 1 || number > len(m) {
		return "", fmt.Errorf("%w: match number must be between 1 and %d, got %d",
			errors.ErrInvalidSelection, len(m), number)
	}
	return m[number-1], nil
}
