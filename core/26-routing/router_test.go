package routing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	routing "github.com/tokenize-x/ibc-core/core/26-routing"
	"github.com/tokenize-x/ibc-core/modules/apps/mock"
)

func TestBindPortAndRoute(t *testing.T) {
	r := routing.NewRouter()
	mod := mock.NewModule()

	require.False(t, r.HasRoute("transfer"))
	require.NoError(t, r.BindPort("transfer", mod))
	require.True(t, r.HasRoute("transfer"))

	got, err := r.Route("transfer")
	require.NoError(t, err)
	require.Same(t, mod, got)
}

func TestBindPortRejectsDuplicate(t *testing.T) {
	r := routing.NewRouter()
	require.NoError(t, r.BindPort("transfer", mock.NewModule()))

	err := r.BindPort("transfer", mock.NewModule())
	require.ErrorIs(t, err, routing.ErrPortAlreadyBound)
}

func TestBindPortRejectsInvalidIdentifier(t *testing.T) {
	r := routing.NewRouter()
	err := r.BindPort("", mock.NewModule())
	require.Error(t, err)
}

func TestRouteUnboundPortFails(t *testing.T) {
	r := routing.NewRouter()
	_, err := r.Route("nobody-home")
	require.ErrorIs(t, err, routing.ErrModuleNotFound)
}

func TestPortsReturnsBindingOrder(t *testing.T) {
	r := routing.NewRouter()
	require.NoError(t, r.BindPort("transfer", mock.NewModule()))
	require.NoError(t, r.BindPort("icahost", mock.NewModule()))
	require.NoError(t, r.BindPort("mock", mock.NewModule()))

	require.Equal(t, []string{"transfer", "icahost", "mock"}, r.Ports())
}
