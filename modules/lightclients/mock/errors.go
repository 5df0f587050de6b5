package mock

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"
)

// ModuleName is this package's error codespace.
const ModuleName = "ibc-lightclient-mock"

var (
	errMembership    = errorsmod.Register(ModuleName, 2, "proof bytes do not match expected value")
	errNonMembership = errorsmod.Register(ModuleName, 3, "expected an empty non-membership proof")
)

func verifyProof(proof, value []byte) error {
	if !bytes.Equal(proof, value) {
		return errMembership
	}
	return nil
}
