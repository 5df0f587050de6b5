package testutil

import "errors"

// errEmptySigner is returned by the default ValidateMessageSigner hook,
// the one ValidationContext rule every fixture enforces without a test
// needing to override it.
var errEmptySigner = errors.New("testutil: message signer must not be empty")
