package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when creating a row whose key is taken.
	ErrConflict = errors.New("record already exists")
	// ErrUnavailable marks every failure of the store itself: connection,
	// statement or transaction errors.
	ErrUnavailable = errors.New("store unavailable")
)

func storeErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("storage: %s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("storage: %s: %w: %w", op, ErrUnavailable, err)
}
