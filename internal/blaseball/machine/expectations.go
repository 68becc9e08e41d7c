package machine

import "github.com/beiju/blarser-go/internal/blaseball"

// expectations is the finite-state machine over phases living outside the
// document: exactly one or two of the boolean flags holds at any time, plus
// a per-side reverberation latch.
type expectations struct {
	letsGo           bool
	playBall         bool
	halfInningStart  bool
	batterUp         bool
	pitch            bool
	inningEnd        bool
	gameEnd          bool
	reverberate      [2]blaseball.TriState
}

func newExpectations() expectations {
	return expectations{letsGo: true}
}

func (e *expectations) require(flag bool, name string) error {
	if !flag {
		return &expectationError{flag: name}
	}
	return nil
}

type expectationError struct {
	flag string
}

func (e *expectationError) Error() string {
	return "expected flag not set: " + e.flag
}

func (e *expectations) toPlayBall() {
	e.letsGo = false
	e.playBall = true
}

func (e *expectations) toHalfInningStart() {
	e.playBall = false
	e.inningEnd = false
	e.halfInningStart = true
}

func (e *expectations) toBatterUp() {
	e.halfInningStart = false
	e.batterUp = true
}

func (e *expectations) toPitch() {
	e.batterUp = false
	e.pitch = true
}

func (e *expectations) toInningEnd() {
	e.pitch = false
	e.batterUp = false
	e.inningEnd = true
}

func (e *expectations) toGameEnd() {
	e.pitch = false
	e.gameEnd = true
}
