package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	attr := sl.Err(errors.New("store unavailable"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("store unavailable"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.Panics(t, func() {
		_ = sl.Err(nil)
	})
}

func TestSubscriberAndDay(t *testing.T) {
	assert.Equal(t, slog.String("subscriber_id", "abc"), sl.Subscriber("abc"))
	assert.Equal(t, slog.Int("day", 3), sl.Day(3))
}
