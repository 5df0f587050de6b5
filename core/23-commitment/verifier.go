// Package commitment is the engine's proof verification facade: given a
// (root, path, value, proof) tuple it decides membership or
// non-membership. It never constructs or interprets the
// Merkle tree itself; light client variants hand it an ics23
// CommitmentProof chain, proven against whatever tree shape the
// counterparty chain actually uses (a Tendermint chain's IAVL tree nested
// under its multistore root, expressed as an ics23.ProofSpec chain).
package commitment

import (
	"bytes"
	"fmt"

	ics23 "github.com/cosmos/ics23/go"

	"github.com/tokenize-x/ibc-core/core/exported"
)

// Spec describes the shape of the Merkle tree(s) a proof must be checked
// against, innermost (the store's own tree) first, the chain's root tree
// last.
type Spec struct {
	ProofSpecs []*ics23.ProofSpec
}

// TendermintSpec is the two-level (IAVL store tree nested under the
// CometBFT multistore root) spec the tendermint light client variant
// verifies against.
var TendermintSpec = Spec{ProofSpecs: []*ics23.ProofSpec{ics23.IavlSpec, ics23.TendermintSpec}}

// ApplyPrefix joins a commitment prefix (the store's own name, e.g. "ibc")
// with a leaf path into the full Merkle path the counterparty committed
// the value under.
func ApplyPrefix(prefix exported.MerklePath, path string) exported.MerklePath {
	return exported.NewMerklePath(append(append([]string{}, prefix.KeyPath...), path)...)
}

// VerifyMembership decodes proofBz as a chain of ics23 CommitmentProofs,
// one per level of path, and checks that value is committed at path under
// root.
func VerifyMembership(spec Spec, root []byte, proofBz []byte, path exported.MerklePath, value []byte) error {
	proofs, err := decodeChainedProof(proofBz)
	if err != nil {
		return err
	}
	if err := validateChainedProof(spec, path, proofs); err != nil {
		return err
	}
	return verifyChainedMembership(spec, root, proofs, path, 0, value)
}

// VerifyNonMembership decodes proofBz and checks that no value is
// committed at path under root: the innermost proof must be a
// non-existence proof, and every proof above it a membership proof of the
// calculated root below.
func VerifyNonMembership(spec Spec, root []byte, proofBz []byte, path exported.MerklePath) error {
	proofs, err := decodeChainedProof(proofBz)
	if err != nil {
		return err
	}
	if err := validateChainedProof(spec, path, proofs); err != nil {
		return err
	}
	if proofs[0].GetNonexist() == nil {
		return fmt.Errorf("innermost proof is a membership proof, expected non-existence")
	}

	subroot, err := proofs[0].Calculate()
	if err != nil {
		return fmt.Errorf("failed to calculate root from non-existence proof: %w", err)
	}
	leafKey := []byte(path.KeyPath[len(path.KeyPath)-1])
	if !ics23.VerifyNonMembership(spec.ProofSpecs[0], subroot, proofs[0], leafKey) {
		return fmt.Errorf("non-membership proof failed at leaf depth")
	}
	return verifyChainedMembership(spec, root, proofs, path, 1, subroot)
}

// verifyChainedMembership walks the proof chain from index outward: each
// level's calculated root is the value the next level up must prove
// membership of, and the outermost calculated root must equal the trusted
// consensus root.
func verifyChainedMembership(spec Spec, root []byte, proofs []*ics23.CommitmentProof, path exported.MerklePath, index int, value []byte) error {
	subroot := value
	for i := index; i < len(proofs); i++ {
		if proofs[i].GetExist() == nil {
			return fmt.Errorf("expected a membership proof at depth %d", i)
		}
		calculated, err := proofs[i].Calculate()
		if err != nil {
			return fmt.Errorf("failed to calculate root at depth %d: %w", i, err)
		}
		subroot = calculated

		key := []byte(path.KeyPath[len(path.KeyPath)-1-i])
		if !ics23.VerifyMembership(spec.ProofSpecs[i], subroot, proofs[i], key, value) {
			return fmt.Errorf("membership proof failed at depth %d", i)
		}
		value = subroot
	}
	if !bytes.Equal(root, subroot) {
		return fmt.Errorf("calculated proof root does not match trusted consensus root")
	}
	return nil
}

func validateChainedProof(spec Spec, path exported.MerklePath, proofs []*ics23.CommitmentProof) error {
	if len(proofs) == 0 {
		return fmt.Errorf("proof chain is empty")
	}
	if len(proofs) != len(path.KeyPath) || len(proofs) != len(spec.ProofSpecs) {
		return fmt.Errorf("proof step count %d does not match path depth %d / spec depth %d",
			len(proofs), len(path.KeyPath), len(spec.ProofSpecs))
	}
	return nil
}

// decodeChainedProof unmarshals proofBz via the CommitmentProof's own
// generated codec. A multi-level chain arrives as a BatchProof whose
// entries are ordered innermost first, the same convention the
// TendermintSpec's ProofSpecs list follows.
func decodeChainedProof(proofBz []byte) ([]*ics23.CommitmentProof, error) {
	var chained ics23.CommitmentProof
	if err := chained.Unmarshal(proofBz); err != nil {
		return nil, fmt.Errorf("failed to unmarshal commitment proof: %w", err)
	}
	if batch := chained.GetBatch(); batch != nil {
		return chainFromBatch(batch), nil
	}
	return []*ics23.CommitmentProof{&chained}, nil
}

func chainFromBatch(batch *ics23.BatchProof) []*ics23.CommitmentProof {
	out := make([]*ics23.CommitmentProof, 0, len(batch.GetEntries()))
	for _, e := range batch.GetEntries() {
		cp := &ics23.CommitmentProof{}
		if e.GetExist() != nil {
			cp.Proof = &ics23.CommitmentProof_Exist{Exist: e.GetExist()}
		} else {
			cp.Proof = &ics23.CommitmentProof_Nonexist{Nonexist: e.GetNonexist()}
		}
		out = append(out, cp)
	}
	return out
}
