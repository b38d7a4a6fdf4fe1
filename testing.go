package reactor

import "github.com/solidgraph/reactor/internal"

// Reset discards the calling goroutine's reactor, starting the next
// State/Memo/Effect/etc construction from an empty graph. go test runs a
// package's Example functions one after another on one goroutine, so
// each one calling Reset first is what gives them independent graphs
// instead of sharing nodes left over from whichever example ran before
// it; Test functions and t.Run subtests each run on a goroutine of their
// own, where Reset is harmless.
func Reset() {
	internal.ForgetCurrentReactor()
}
