package routing

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	clientkeeper "github.com/tokenize-x/ibc-core/core/02-client/keeper"
	clienttypes "github.com/tokenize-x/ibc-core/core/02-client/types"
	connectionkeeper "github.com/tokenize-x/ibc-core/core/03-connection/keeper"
	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channelkeeper "github.com/tokenize-x/ibc-core/core/04-channel/keeper"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
)

// Dispatcher fans a decoded message out to the keeper that owns it. It is
// the only component in this engine that knows about all three protocol
// layers at once, mirroring ibc-go's own ICS-26 Keeper sitting above
// 02-client/03-connection/04-channel.
type Dispatcher struct {
	clientKeeper     clientkeeper.Keeper
	connectionKeeper connectionkeeper.Keeper
	channelKeeper    channelkeeper.Keeper
	router           *Router
}

// NewDispatcher returns a Dispatcher wired to the three protocol keepers
// and the port routing table.
func NewDispatcher(clientKeeper clientkeeper.Keeper, connectionKeeper connectionkeeper.Keeper, channelKeeper channelkeeper.Keeper, router *Router) *Dispatcher {
	return &Dispatcher{
		clientKeeper:     clientKeeper,
		connectionKeeper: connectionKeeper,
		channelKeeper:    channelKeeper,
		router:           router,
	}
}

// ValidateMsg runs msg's read-only checks against vctx without touching
// any module callback: the module's own validation, where it has one
// (e.g. OnChanOpenInit's proposed version), only runs in ExecuteMsg, since
// the validate/execute split only binds the engine's own state, not a
// module's.
func (d *Dispatcher) ValidateMsg(ctx context.Context, vctx host.ValidationContext, msg any) error {
	switch m := msg.(type) {
	case clienttypes.MsgCreateClient:
		return d.clientKeeper.ValidateCreateClient(ctx, vctx, m)
	case clienttypes.MsgUpdateClient:
		return d.clientKeeper.ValidateUpdateClient(ctx, vctx, m)
	case clienttypes.MsgUpgradeClient:
		return d.clientKeeper.ValidateUpgradeClient(ctx, vctx, m)

	case connectiontypes.MsgConnectionOpenInit:
		return d.connectionKeeper.ValidateConnectionOpenInit(ctx, vctx, m)
	case connectiontypes.MsgConnectionOpenTry:
		return d.connectionKeeper.ValidateConnectionOpenTry(ctx, vctx, m)
	case connectiontypes.MsgConnectionOpenAck:
		return d.connectionKeeper.ValidateConnectionOpenAck(ctx, vctx, m)
	case connectiontypes.MsgConnectionOpenConfirm:
		return d.connectionKeeper.ValidateConnectionOpenConfirm(ctx, vctx, m)

	case channeltypes.MsgChannelOpenInit:
		if !d.router.HasRoute(m.PortID) {
			return errorsmod.Wrapf(ErrModuleNotFound, "port %s", m.PortID)
		}
		return d.channelKeeper.ValidateChanOpenInit(ctx, vctx, m)
	case channeltypes.MsgChannelOpenTry:
		if !d.router.HasRoute(m.PortID) {
			return errorsmod.Wrapf(ErrModuleNotFound, "port %s", m.PortID)
		}
		return d.channelKeeper.ValidateChanOpenTry(ctx, vctx, m)
	case channeltypes.MsgChannelOpenAck:
		return d.channelKeeper.ValidateChanOpenAck(ctx, vctx, m)
	case channeltypes.MsgChannelOpenConfirm:
		return d.channelKeeper.ValidateChanOpenConfirm(ctx, vctx, m)
	case channeltypes.MsgChannelCloseInit:
		return d.channelKeeper.ValidateChanCloseInit(ctx, vctx, m)
	case channeltypes.MsgChannelCloseConfirm:
		return d.channelKeeper.ValidateChanCloseConfirm(ctx, vctx, m)

	case channeltypes.MsgRecvPacket:
		return d.channelKeeper.ValidateRecvPacket(ctx, vctx, m)
	case channeltypes.MsgAcknowledgePacket:
		return d.channelKeeper.ValidateAcknowledgePacket(ctx, vctx, m)
	case channeltypes.MsgTimeoutPacket:
		return d.channelKeeper.ValidateTimeoutPacket(ctx, vctx, m)

	default:
		return errorsmod.Wrapf(ErrUnknownMessage, "%T", msg)
	}
}

// ExecuteMsg applies msg's writes, invoking the owning module's callback
// where the operation has one. It emits the core "message" event first,
// then the operation's own protocol event (emitted by the
// keeper method itself). Returns the minted ID for operations that mint
// one (CreateClient, the four OpenInit/OpenTry steps); empty string
// otherwise.
func (d *Dispatcher) ExecuteMsg(ctx context.Context, ectx host.ExecutionContext, msg any) (string, error) {
	kind, ok := kindOf(msg)
	if !ok {
		return "", errorsmod.Wrapf(ErrUnknownMessage, "%T", msg)
	}
	ectx.EmitEvent(ctx, host.NewEvent(host.MessageEventType, host.NewAttribute(host.AttributeKeyMessageKind, string(kind))))

	switch m := msg.(type) {
	case clienttypes.MsgCreateClient:
		return d.clientKeeper.ExecuteCreateClient(ctx, ectx, m)
	case clienttypes.MsgUpdateClient:
		return "", d.clientKeeper.ExecuteUpdateClient(ctx, ectx, m)
	case clienttypes.MsgUpgradeClient:
		return "", d.clientKeeper.ExecuteUpgradeClient(ctx, ectx, m)

	case connectiontypes.MsgConnectionOpenInit:
		return d.connectionKeeper.ExecuteConnectionOpenInit(ctx, ectx, m)
	case connectiontypes.MsgConnectionOpenTry:
		return d.connectionKeeper.ExecuteConnectionOpenTry(ctx, ectx, m)
	case connectiontypes.MsgConnectionOpenAck:
		return "", d.connectionKeeper.ExecuteConnectionOpenAck(ctx, ectx, m)
	case connectiontypes.MsgConnectionOpenConfirm:
		return "", d.connectionKeeper.ExecuteConnectionOpenConfirm(ctx, ectx, m)

	case channeltypes.MsgChannelOpenInit:
		mod, err := d.router.Route(m.PortID)
		if err != nil {
			return "", err
		}
		return d.channelKeeper.ExecuteChanOpenInit(ctx, ectx, m, mod)
	case channeltypes.MsgChannelOpenTry:
		mod, err := d.router.Route(m.PortID)
		if err != nil {
			return "", err
		}
		return d.channelKeeper.ExecuteChanOpenTry(ctx, ectx, m, mod)
	case channeltypes.MsgChannelOpenAck:
		mod, err := d.router.Route(m.PortID)
		if err != nil {
			return "", err
		}
		return "", d.channelKeeper.ExecuteChanOpenAck(ctx, ectx, m, mod)
	case channeltypes.MsgChannelOpenConfirm:
		mod, err := d.router.Route(m.PortID)
		if err != nil {
			return "", err
		}
		return "", d.channelKeeper.ExecuteChanOpenConfirm(ctx, ectx, m, mod)
	case channeltypes.MsgChannelCloseInit:
		mod, err := d.router.Route(m.PortID)
		if err != nil {
			return "", err
		}
		return "", d.channelKeeper.ExecuteChanCloseInit(ctx, ectx, m, mod)
	case channeltypes.MsgChannelCloseConfirm:
		mod, err := d.router.Route(m.PortID)
		if err != nil {
			return "", err
		}
		return "", d.channelKeeper.ExecuteChanCloseConfirm(ctx, ectx, m, mod)

	case channeltypes.MsgRecvPacket:
		mod, err := d.router.Route(m.Packet.Destination.PortID)
		if err != nil {
			return "", err
		}
		return "", d.channelKeeper.ExecuteRecvPacket(channelkeeper.WithReentryDepth(ctx), ectx, m, mod)
	case channeltypes.MsgAcknowledgePacket:
		mod, err := d.router.Route(m.Packet.Source.PortID)
		if err != nil {
			return "", err
		}
		return "", d.channelKeeper.ExecuteAcknowledgePacket(channelkeeper.WithReentryDepth(ctx), ectx, m, mod)
	case channeltypes.MsgTimeoutPacket:
		mod, err := d.router.Route(m.Packet.Source.PortID)
		if err != nil {
			return "", err
		}
		return "", d.channelKeeper.ExecuteTimeoutPacket(channelkeeper.WithReentryDepth(ctx), ectx, m, mod)

	default:
		return "", errorsmod.Wrapf(ErrUnknownMessage, "%T", msg)
	}
}
