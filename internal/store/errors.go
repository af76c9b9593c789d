package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrDuplicateKey  = errors.New("already exists")
	ErrNoTransaction = errors.New("transaction hasn't started yet")
)

func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}
