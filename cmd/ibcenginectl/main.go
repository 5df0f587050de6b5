package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clicmd "github.com/tokenize-x/ibc-core/client/cli"
	clienttypes "github.com/tokenize-x/ibc-core/core/02-client/types"
	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	"github.com/tokenize-x/ibc-core/core/exported"
	appmock "github.com/tokenize-x/ibc-core/modules/apps/mock"
	mockclient "github.com/tokenize-x/ibc-core/modules/lightclients/mock"
	"github.com/tokenize-x/ibc-core/query"
	"github.com/tokenize-x/ibc-core/testutil"
)

const demoPortID = "transfer"

func main() {
	root := &cobra.Command{
		Use:   "ibcenginectl",
		Short: "Drive the IBC engine through a full handshake and packet lifecycle against an in-memory host",
	}
	root.AddCommand(demoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run ICS-03 connection handshake, ICS-04 channel handshake, and a send/recv/ack packet round trip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd)
		},
	}
}

// runDemo wires a single testutil.Host/Fixture pair, standing in for two
// chains sharing one engine instance the way the fixture's tests do, and
// narrates every message it submits and every event the engine emits.
func runDemo(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	f := testutil.NewFixture(panicT{})
	ctx := context.Background()

	clientC, err := createClient(ctx, f)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	fmt.Fprintf(out, "client minted via MsgCreateClient: %s\n", clientC)

	clientA := f.Host.ClientA()
	clientB := f.Host.ClientB()
	height := exported.NewHeight(1, 1)
	prefix := f.Host.CommitmentPrefix(ctx)

	fmt.Fprintf(out, "clients ready: A=%s B=%s\n", clientA, clientB)

	hostConsensus := &mockclient.ConsensusState{Timestamp: 1, Root: []byte("root-host")}
	f.Host.StoreHostConsensusState(ctx, height, hostConsensus)

	connA, connB, err := openConnection(ctx, f, clientA, clientB, height, prefix, hostConsensus)
	if err != nil {
		return fmt.Errorf("connection handshake: %w", err)
	}
	fmt.Fprintf(out, "connection open: A=%s B=%s\n", connA, connB)

	channelA, channelB, err := openChannel(ctx, f, connA, connB, height)
	if err != nil {
		return fmt.Errorf("channel handshake: %w", err)
	}
	fmt.Fprintf(out, "channel open: A=%s B=%s\n", channelA, channelB)

	if err := runPacket(ctx, f, channelA, channelB); err != nil {
		return fmt.Errorf("packet round trip: %w", err)
	}
	fmt.Fprintln(out, "packet sent, received, and acknowledged")

	fmt.Fprintln(out, "--- events ---")
	for _, e := range f.Host.Events() {
		fmt.Fprintf(out, "%s %v\n", e.Type, e.Attributes)
	}
	fmt.Fprintln(out, "--- logs ---")
	for _, l := range f.Host.Logs() {
		fmt.Fprintln(out, l)
	}

	fmt.Fprintln(out, "--- query channels (via client/cli) ---")
	reader := query.NewReader(ctx, f.Host)
	queryCmd := clicmd.GetQueryCmd(func() *query.Reader { return reader })
	queryCmd.SetOut(out)
	queryCmd.SetArgs([]string{"channels"})
	return queryCmd.Execute()
}

// createClient mints a throwaway mock client via MsgCreateClient, the
// basic ICS-02 flow; the handshake/packet steps below
// use the fixture's own pre-registered clients instead, since those
// already carry host-consensus bookkeeping the handshake needs.
func createClient(ctx context.Context, f *testutil.Fixture) (string, error) {
	msg := clienttypes.MsgCreateClient{
		ClientState:    &mockclient.ClientState{LatestHeightValue: exported.NewHeight(1, 1)},
		ConsensusState: &mockclient.ConsensusState{Timestamp: 1, Root: []byte("root-c")},
		Signer:         "alice",
	}
	var clientID string
	if err := submit(ctx, f, msg, &clientID); err != nil {
		return "", err
	}
	return clientID, nil
}

// openConnection drives MsgConnectionOpenInit/Try/Ack/Confirm to
// completion between the fixture's two mock clients, the full ICS-03
// flow.
func openConnection(
	ctx context.Context, f *testutil.Fixture, clientA, clientB string,
	height exported.Height, prefix exported.MerklePath, hostConsensus *mockclient.ConsensusState,
) (connA, connB string, err error) {
	initMsg := connectiontypes.MsgConnectionOpenInit{
		ClientID:     clientA,
		Counterparty: connectiontypes.Counterparty{ClientID: clientB, Prefix: prefix},
		Signer:       "alice",
	}
	if err := submit(ctx, f, initMsg, &connA); err != nil {
		return "", "", err
	}
	storedA, _ := f.Host.ConnectionEnd(ctx, connA)

	counterpartyClientState := &mockclient.ClientState{LatestHeightValue: height}
	tryMsg := connectiontypes.MsgConnectionOpenTry{
		ClientID:             clientB,
		ClientState:          counterpartyClientState,
		Counterparty:         connectiontypes.Counterparty{ClientID: clientA, ConnectionID: connA, Prefix: prefix},
		CounterpartyVersions: connectiontypes.SupportedVersions,
		ProofHeight:          height,
		ConsensusHeight:      height,
		ProofInit:            storedA.Marshal(),
		ProofClient:          counterpartyClientState.Marshal(),
		ProofConsensus:       hostConsensus.Marshal(),
		Signer:               "bob",
	}
	if err := submit(ctx, f, tryMsg, &connB); err != nil {
		return "", "", err
	}
	storedB, _ := f.Host.ConnectionEnd(ctx, connB)

	selfClientState := &mockclient.ClientState{LatestHeightValue: height}
	ackMsg := connectiontypes.MsgConnectionOpenAck{
		ConnectionID:             connA,
		ClientState:              selfClientState,
		Version:                  connectiontypes.DefaultVersion,
		CounterpartyConnectionID: connB,
		ProofHeight:              height,
		ConsensusHeight:          height,
		ProofTry:                 storedB.Marshal(),
		ProofClient:              selfClientState.Marshal(),
		ProofConsensus:           hostConsensus.Marshal(),
		Signer:                   "alice",
	}
	if err := submit(ctx, f, ackMsg, nil); err != nil {
		return "", "", err
	}
	storedA, _ = f.Host.ConnectionEnd(ctx, connA)

	confirmMsg := connectiontypes.MsgConnectionOpenConfirm{
		ConnectionID: connB,
		ProofHeight:  height,
		ProofAck:     storedA.Marshal(),
		Signer:       "bob",
	}
	if err := submit(ctx, f, confirmMsg, nil); err != nil {
		return "", "", err
	}
	return connA, connB, nil
}

// openChannel drives MsgChannelOpenInit/Try/Ack/Confirm over the open
// connection pair, binding demoPortID to a fresh echo module first.
func openChannel(
	ctx context.Context, f *testutil.Fixture, connA, connB string, height exported.Height,
) (channelA, channelB string, err error) {
	if err := f.Router.BindPort(demoPortID, appmock.NewModule()); err != nil {
		return "", "", err
	}

	initMsg := channeltypes.MsgChannelOpenInit{
		PortID:         demoPortID,
		Ordering:       channeltypes.Unordered,
		ConnectionHops: []string{connA},
		Counterparty:   channeltypes.Counterparty{PortID: demoPortID},
		Version:        appmock.Version,
		Signer:         "alice",
	}
	if err := submit(ctx, f, initMsg, &channelA); err != nil {
		return "", "", err
	}
	storedA, _ := f.Host.ChannelEnd(ctx, demoPortID, channelA)

	tryMsg := channeltypes.MsgChannelOpenTry{
		PortID:              demoPortID,
		Ordering:            channeltypes.Unordered,
		ConnectionHops:      []string{connB},
		Counterparty:        channeltypes.Counterparty{PortID: demoPortID, ChannelID: channelA},
		CounterpartyVersion: appmock.Version,
		ProofHeight:         height,
		ProofInit:           storedA.Marshal(),
		Signer:              "bob",
	}
	if err := submit(ctx, f, tryMsg, &channelB); err != nil {
		return "", "", err
	}
	storedB, _ := f.Host.ChannelEnd(ctx, demoPortID, channelB)

	ackMsg := channeltypes.MsgChannelOpenAck{
		PortID:                demoPortID,
		ChannelID:             channelA,
		CounterpartyChannelID: channelB,
		CounterpartyVersion:   appmock.Version,
		ProofHeight:           height,
		ProofTry:              storedB.Marshal(),
		Signer:                "alice",
	}
	if err := submit(ctx, f, ackMsg, nil); err != nil {
		return "", "", err
	}
	storedA, _ = f.Host.ChannelEnd(ctx, demoPortID, channelA)

	confirmMsg := channeltypes.MsgChannelOpenConfirm{
		PortID:      demoPortID,
		ChannelID:   channelB,
		ProofHeight: height,
		ProofAck:    storedA.Marshal(),
		Signer:      "bob",
	}
	if err := submit(ctx, f, confirmMsg, nil); err != nil {
		return "", "", err
	}
	return channelA, channelB, nil
}

// runPacket sends a single packet on the unordered demo channel, delivers
// it, and acknowledges it.
func runPacket(ctx context.Context, f *testutil.Fixture, channelA, channelB string) error {
	packet := channeltypes.Packet{
		Sequence:         1,
		Source:           channeltypes.PacketEndpoint{PortID: demoPortID, ChannelID: channelA},
		Destination:      channeltypes.PacketEndpoint{PortID: demoPortID, ChannelID: channelB},
		Data:             []byte("hello"),
		TimeoutHeight:    exported.NewHeight(1, 1000),
		TimeoutTimestamp: 0,
	}
	if err := f.ChannelKeeper.SendPacket(ctx, f.Host, packet); err != nil {
		return err
	}

	recvMsg := channeltypes.MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: channeltypes.CommitPacketFromPacket(packet),
		ProofHeight:     exported.NewHeight(1, 1),
		Signer:          "relayer",
	}
	if err := submit(ctx, f, recvMsg, nil); err != nil {
		return err
	}

	ackBytes, found := f.Host.GetPacketAcknowledgement(ctx, demoPortID, channelB, 1)
	if !found {
		return fmt.Errorf("no acknowledgement written for sequence 1")
	}
	ackMsg := channeltypes.MsgAcknowledgePacket{
		Packet:          packet,
		Acknowledgement: channeltypes.EncodeAcknowledgement(channeltypes.Acknowledgement{Success: true, Data: []byte("hello")}),
		ProofAcked:      ackBytes,
		ProofHeight:     exported.NewHeight(1, 1),
		Signer:          "relayer",
	}
	return submit(ctx, f, ackMsg, nil)
}

// submit runs msg through ValidateMsg then ExecuteMsg, the two-phase
// entrypoint every real host calls. If id is non-nil, the
// minted entity ID ExecuteMsg returns is stored through it.
func submit(ctx context.Context, f *testutil.Fixture, msg any, id *string) error {
	if err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg); err != nil {
		return err
	}
	got, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, msg)
	if err != nil {
		return err
	}
	if id != nil {
		*id = got
	}
	return nil
}

