package httpapi

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fluxcron/dispatcher/di"
)

func TestNewModule(t *testing.T) {
	t.Run("module name", func(t *testing.T) {
		module := NewModule()
		require.Equal(t, "httpapi", module.Name())
	})

	t.Run("fails without dependencies", func(t *testing.T) {
		c := di.New()
		require.NoError(t, di.For[*slog.Logger](c).Instance(slog.Default()))

		module := NewModule()
		require.NoError(t, module.Register(c))

		_, err := di.Resolve[*Handler](c)
		require.Error(t, err)
	})
}
