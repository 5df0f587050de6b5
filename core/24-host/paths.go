// Package host builds the byte-exact commitment paths of the ICS-24 key
// layout. Paths are the protocol's wire contract with counterparty
// chains: every path builder here must match the string layout exactly, since a
// counterparty verifies membership against these same bytes.
package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tokenize-x/ibc-core/core/exported"
)

const (
	keyClientStatePath   = "clientState"
	keyConsensusStates   = "consensusStates"
	keyConnections       = "connections"
	keyChannelEnds       = "channelEnds"
	keyPorts             = "ports"
	keyChannels          = "channels"
	keyCommitments       = "commitments"
	keyReceipts          = "receipts"
	keyAcks              = "acks"
	keySequences         = "sequences"
	keyNextSequenceSend  = "nextSequenceSend"
	keyNextSequenceRecv  = "nextSequenceRecv"
	keyNextSequenceAck   = "nextSequenceAck"
)

// ClientStatePath returns "clients/{clientID}/clientState".
func ClientStatePath(clientID string) string {
	return fmt.Sprintf("clients/%s/%s", clientID, keyClientStatePath)
}

// ConsensusStatePath returns "clients/{clientID}/consensusStates/{revision}-{height}".
func ConsensusStatePath(clientID string, height exported.Height) string {
	return fmt.Sprintf("clients/%s/%s/%s", clientID, keyConsensusStates, height.String())
}

// ConnectionPath returns "connections/{connectionID}".
func ConnectionPath(connectionID string) string {
	return fmt.Sprintf("%s/%s", keyConnections, connectionID)
}

// ChannelPath returns "channelEnds/ports/{portID}/channels/{channelID}".
func ChannelPath(portID, channelID string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", keyChannelEnds, keyPorts, portID, keyChannels, channelID)
}

// PacketCommitmentPath returns "commitments/ports/{portID}/channels/{channelID}/sequences/{seq}".
func PacketCommitmentPath(portID, channelID string, sequence uint64) string {
	return sequencedPath(keyCommitments, portID, channelID, sequence)
}

// PacketReceiptPath returns "receipts/ports/{portID}/channels/{channelID}/sequences/{seq}".
func PacketReceiptPath(portID, channelID string, sequence uint64) string {
	return sequencedPath(keyReceipts, portID, channelID, sequence)
}

// PacketAcknowledgementPath returns "acks/ports/{portID}/channels/{channelID}/sequences/{seq}".
func PacketAcknowledgementPath(portID, channelID string, sequence uint64) string {
	return sequencedPath(keyAcks, portID, channelID, sequence)
}

func sequencedPath(root, portID, channelID string, sequence uint64) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s/%s/%s",
		root, keyPorts, portID, keyChannels, channelID, keySequences, strconv.FormatUint(sequence, 10))
}

// NextSequenceSendPath returns "nextSequenceSend/ports/{portID}/channels/{channelID}".
func NextSequenceSendPath(portID, channelID string) string {
	return channelScopedPath(keyNextSequenceSend, portID, channelID)
}

// NextSequenceRecvPath returns "nextSequenceRecv/ports/{portID}/channels/{channelID}".
func NextSequenceRecvPath(portID, channelID string) string {
	return channelScopedPath(keyNextSequenceRecv, portID, channelID)
}

// NextSequenceAckPath returns "nextSequenceAck/ports/{portID}/channels/{channelID}".
func NextSequenceAckPath(portID, channelID string) string {
	return channelScopedPath(keyNextSequenceAck, portID, channelID)
}

func channelScopedPath(root, portID, channelID string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", root, keyPorts, portID, keyChannels, channelID)
}

// ParseConsensusStatePath extracts the client ID and height from a path
// produced by ConsensusStatePath, the inverse operation used by hosts that
// iterate raw store keys. Returns ok == false if path is not well formed.
func ParseConsensusStatePath(path string) (clientID string, height exported.Height, ok bool) {
	parts := strings.Split(path, "/")
	if len(parts) != 4 || parts[0] != "clients" || parts[2] != keyConsensusStates {
		return "", exported.Height{}, false
	}
	heightParts := strings.SplitN(parts[3], "-", 2)
	if len(heightParts) != 2 {
		return "", exported.Height{}, false
	}
	rev, err := strconv.ParseUint(heightParts[0], 10, 64)
	if err != nil {
		return "", exported.Height{}, false
	}
	h, err := strconv.ParseUint(heightParts[1], 10, 64)
	if err != nil {
		return "", exported.Height{}, false
	}
	return parts[1], exported.NewHeight(rev, h), true
}
