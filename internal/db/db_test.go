package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrRunNotFound(t *testing.T) {
	assert.EqualError(t, ErrRunNotFound, "run not found")
}

func TestClose_WithoutPool(t *testing.T) {
	// Close must be safe on a zero-value DB
	var db DB
	db.Close()
}
