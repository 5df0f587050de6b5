package routing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	routing "github.com/tokenize-x/ibc-core/core/26-routing"
	"github.com/tokenize-x/ibc-core/testutil"
)

func TestDispatcherRejectsUnknownMessage(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	err := f.Dispatcher.ValidateMsg(ctx, f.Host, struct{ Unrelated bool }{})
	require.ErrorIs(t, err, routing.ErrUnknownMessage)

	_, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, struct{ Unrelated bool }{})
	require.ErrorIs(t, err, routing.ErrUnknownMessage)
}
