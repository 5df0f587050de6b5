package types

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/tokenize-x/ibc-core/core/exported"
)

// CommitPacket computes the packet commitment bytes stored at
// commitments/.../sequences/{seq}: the protocol's fixed encoding,
//
//	SHA256(be64(timeout_timestamp) || be64(timeout_height.revision_number)
//	       || be64(timeout_height.revision_height) || SHA256(data))
//
// Every byte of this layout is mandated by the wire protocol itself, so
// there is no ecosystem serialization library to reach for here; a
// counterparty chain recomputes this exact sequence of bytes when
// verifying a membership proof against it.
func CommitPacket(timeoutTimestamp uint64, timeoutHeight exported.Height, data []byte) []byte {
	dataHash := sha256.Sum256(data)

	buf := make([]byte, 0, 8+8+8+len(dataHash))
	buf = binary.BigEndian.AppendUint64(buf, timeoutTimestamp)
	buf = binary.BigEndian.AppendUint64(buf, timeoutHeight.RevisionNumber)
	buf = binary.BigEndian.AppendUint64(buf, timeoutHeight.RevisionHeight)
	buf = append(buf, dataHash[:]...)

	commitment := sha256.Sum256(buf)
	return commitment[:]
}

// CommitPacketFromPacket is CommitPacket applied to a Packet's own
// timeout fields and data.
func CommitPacketFromPacket(p Packet) []byte {
	return CommitPacket(p.TimeoutTimestamp, p.TimeoutHeight, p.Data)
}

// CommitAcknowledgement computes the acknowledgement commitment bytes
// stored at acks/.../sequences/{seq}: SHA256(ack_bytes).
func CommitAcknowledgement(ackBytes []byte) []byte {
	commitment := sha256.Sum256(ackBytes)
	return commitment[:]
}

// EncodeAcknowledgement renders an Acknowledgement to the bytes committed
// via CommitAcknowledgement and carried on the wire in
// MsgAcknowledgePacket/WriteAcknowledgement: a single success/failure
// byte followed by the application-defined payload. The protocol fixes
// only the commitment hash, not the ack payload encoding itself (that is
// application-defined, like ICS-20's own ack schema); this engine's
// encoding is its own minimal convention.
func EncodeAcknowledgement(ack Acknowledgement) []byte {
	b := make([]byte, 1+len(ack.Data))
	if ack.Success {
		b[0] = 1
	}
	copy(b[1:], ack.Data)
	return b
}

// DecodeAcknowledgement is the inverse of EncodeAcknowledgement.
func DecodeAcknowledgement(b []byte) Acknowledgement {
	if len(b) == 0 {
		return Acknowledgement{}
	}
	return Acknowledgement{Success: b[0] == 1, Data: append([]byte(nil), b[1:]...)}
}

// EncodeSequence renders a sequence number as the fixed 8-byte
// big-endian value committed at a nextSequenceRecv path, the value a
// TimeoutPacket membership proof on an ordered channel must match.
func EncodeSequence(sequence uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, sequence)
	return buf
}
