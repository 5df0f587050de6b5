// Package main implements ibcenginectl, a thin example binary that wires
// the engine to testutil.Host exactly the way a real host embeds it, and
// drives a handshake/packet scenario end to end. It is not part of the
// engine itself - a real host has its own storage and transaction
// plumbing; this exists so the protocol flows have something runnable
// behind them.
package main

import (
	"fmt"
)

// panicT is the testutil.TestingT shim ibcenginectl passes in place of a
// *testing.T: testutil's Host is built against require.TestingT plus
// Helper() (see testutil.TestingT) precisely so a non-test binary can
// drive the same fixture a _test.go file does. A host store operation
// failing here means the in-memory fixture itself is broken, not that a
// scenario step was rejected - those come back as an error return, not a
// panic - so FailNow aborting the process is the right behavior.
type panicT struct{}

func (panicT) Errorf(format string, args ...any) { fmt.Printf("FATAL: "+format+"\n", args...) }
func (panicT) FailNow()                          { panic("ibcenginectl: fatal testutil error") }
func (panicT) Helper()                           {}
