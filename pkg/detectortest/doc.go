// Package detectortest provides a deterministic harness for detector tests.
//
// The harness owns a Document, a container node to mount detectors under,
// and a FakeClock whose timers replace the refresh package's real ones for
// the duration of a test. Tests resize nodes, pump frames, and advance the
// clock explicitly; nothing depends on wall time.
package detectortest
