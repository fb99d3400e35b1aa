package guard_test

import (
	"errors"
	"testing"

	"merchflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotConstructed = errors.New("must be created via constructor")

func TestConstructorGuard(t *testing.T) {
	t.Run("constructed guard passes validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		require.NoError(t, g.Validate(errNotConstructed))
	})

	t.Run("zero value guard fails validation", func(t *testing.T) {
		var g guard.ConstructorGuard
		err := g.Validate(errNotConstructed)
		assert.Equal(t, errNotConstructed, err)
	})
}
