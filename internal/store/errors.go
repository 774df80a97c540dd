package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a uniqueness constraint rejects a write.
var ErrConflict = errors.New("already exists")

// ErrUnavailable is returned when the store cannot be reached at call time.
var ErrUnavailable = errors.New("store unavailable")

const pqUniqueViolation = "23505"

// translate maps driver-level failures onto the package's sentinel errors.
// Errors it does not recognize pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return err
}
