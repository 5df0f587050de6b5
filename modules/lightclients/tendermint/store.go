package tendermint

import (
	"encoding/json"

	"github.com/tokenize-x/ibc-core/core/23-commitment"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// consensusStateKey is the ClientStore key this variant keeps its own
// per-height bookkeeping under, independent of the engine's own
// consensus-state mapping (see exported.ClientStore's doc comment):
// VerifyClientMessage and UpdateState only ever receive a ClientStore, so
// a trusted height's NextValidatorsHash has to be readable from there.
func consensusStateKey(height exported.Height) string {
	return "consensusState/" + height.String()
}

func putConsensusState(store exported.ClientStore, height exported.Height, cs *ConsensusState) {
	b, err := json.Marshal(cs)
	if err != nil {
		panic(err)
	}
	store.Set(consensusStateKey(height), b)
}

func getConsensusState(store exported.ClientStore, height exported.Height) (*ConsensusState, bool) {
	b, ok := store.Get(consensusStateKey(height))
	if !ok {
		return nil, false
	}
	var cs ConsensusState
	if err := json.Unmarshal(b, &cs); err != nil {
		return nil, false
	}
	return &cs, true
}

// upgradedClientStatePath and upgradedConsensusStatePath are the paths a
// chain planning its own upgrade commits the replacement client/consensus
// state under, mirroring real ibc-go's upgrade module convention. They
// are verified against this client's own root, not a ClientStore key, so
// they live here next to applyPrefix/verifyMembership rather than in
// consensusStateKey's ClientStore-keyed family above.
func upgradedClientStatePath(height exported.Height) string {
	return "upgradedClient/" + height.String()
}

func upgradedConsensusStatePath(height exported.Height) string {
	return "upgradedConsState/" + height.String()
}

func applyPrefix(prefix exported.MerklePath, path string) exported.MerklePath {
	return commitment.ApplyPrefix(prefix, path)
}

func verifyMembership(root []byte, proof []byte, path exported.MerklePath, value []byte) error {
	return commitment.VerifyMembership(commitment.TendermintSpec, root, proof, path, value)
}

func verifyNonMembership(root []byte, proof []byte, path exported.MerklePath) error {
	return commitment.VerifyNonMembership(commitment.TendermintSpec, root, proof, path)
}
