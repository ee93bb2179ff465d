// Package hal holds the pieces every emulated device module shares: the
// generation-tagged Handle, the single-instance Slot, the dispatch Table the
// host runtime routes calls through, and the callback registry.
//
// A module is opened once, answers queries against the handle it returned,
// and is closed. Calls made with any other handle fail with ErrInvalidHandle.
package hal
