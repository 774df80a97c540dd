package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateNil(t *testing.T) {
	assert.NoError(t, translate(nil))
}

func TestTranslateUniqueViolation(t *testing.T) {
	err := translate(&pq.Error{Code: "23505", Constraint: "items_name_key"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTranslateOtherPqError(t *testing.T) {
	original := &pq.Error{Code: "42P01"}
	err := translate(original)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestTranslateConnectionRefused(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	err := translate(fmt.Errorf("query failed: %w", opErr))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTranslateBadConn(t *testing.T) {
	err := translate(driver.ErrBadConn)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTranslatePassthrough(t *testing.T) {
	original := errors.New("syntax error")
	assert.Equal(t, original, translate(original))
}
