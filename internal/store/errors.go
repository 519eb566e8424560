package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ConstraintViolation is a store-enforced integrity failure on a single insert.
type ConstraintViolation struct {
	Table string
	Err   error
}

func (c *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation on %s: %v", c.Table, c.Err)
}

func (c *ConstraintViolation) Unwrap() error {
	return c.Err
}

// IsConstraintViolation reports whether err is a foreign-key or uniqueness
// failure as translated by gorm.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey)
}
