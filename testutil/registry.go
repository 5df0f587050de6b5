package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/tokenize-x/ibc-core/core/exported"
	"github.com/tokenize-x/ibc-core/modules/lightclients/mock"
	"github.com/tokenize-x/ibc-core/modules/lightclients/tendermint"
)

// clientCodec is the pair of decode functions a light client variant
// registers so testutil's collections-backed store can deserialize its
// polymorphic exported.ClientState/exported.ConsensusState values without
// the engine itself ever knowing a variant's concrete Go type. A real
// host would do the same dispatch through whatever Any/interface-registry
// mechanism its wire codec uses; this fixture's registry is the minimal
// stand-in.
type clientCodec struct {
	decodeClientState    func([]byte) (exported.ClientState, error)
	decodeConsensusState func([]byte) (exported.ConsensusState, error)
}

// clientRegistry maps a ClientType string to its decode functions.
type clientRegistry struct {
	byType map[string]clientCodec
}

func newClientRegistry() *clientRegistry {
	r := &clientRegistry{byType: make(map[string]clientCodec)}
	r.register(mock.ClientType, decodeMockClientState, decodeMockConsensusState)
	r.register(tendermint.ClientType, decodeTendermintClientState, decodeTendermintConsensusState)
	return r
}

// Register adds a third-party client variant's decode functions, letting
// a test bring its own client type beyond the two shipped here.
func (r *clientRegistry) Register(clientType string, decodeClientState func([]byte) (exported.ClientState, error), decodeConsensusState func([]byte) (exported.ConsensusState, error)) {
	r.register(clientType, decodeClientState, decodeConsensusState)
}

func (r *clientRegistry) register(clientType string, decodeClientState func([]byte) (exported.ClientState, error), decodeConsensusState func([]byte) (exported.ConsensusState, error)) {
	r.byType[clientType] = clientCodec{decodeClientState: decodeClientState, decodeConsensusState: decodeConsensusState}
}

func (r *clientRegistry) clientStateCodec(clientType string) (func([]byte) (exported.ClientState, error), error) {
	c, ok := r.byType[clientType]
	if !ok {
		return nil, fmt.Errorf("testutil: no client state codec registered for client type %q", clientType)
	}
	return c.decodeClientState, nil
}

func (r *clientRegistry) consensusStateCodec(clientType string) (func([]byte) (exported.ConsensusState, error), error) {
	c, ok := r.byType[clientType]
	if !ok {
		return nil, fmt.Errorf("testutil: no consensus state codec registered for client type %q", clientType)
	}
	return c.decodeConsensusState, nil
}

func decodeMockClientState(b []byte) (exported.ClientState, error) {
	var cs mock.ClientState
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func decodeMockConsensusState(b []byte) (exported.ConsensusState, error) {
	var cs mock.ConsensusState
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func decodeTendermintClientState(b []byte) (exported.ClientState, error) {
	var cs tendermint.ClientState
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func decodeTendermintConsensusState(b []byte) (exported.ConsensusState, error) {
	var cs tendermint.ConsensusState
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}
