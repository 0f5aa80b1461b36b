package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	raw := errors.New("connection refused")

	err := StoreError("svc.Op", raw)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, raw)
	assert.Contains(t, err.Error(), "svc.Op")

	err = StoreError("svc.Op", ErrProgressNotFound)
	assert.ErrorIs(t, err, ErrProgressNotFound)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}
