package main

// Phase is the stage a room's current round is in. Lobby is both the
// initial state and the state an aborted round falls back to; rooms cycle
// through the phases until they empty out and are reclaimed.
type Phase string

const (
	PhaseLobby      Phase = "lobby"      // waiting for enough players
	PhaseResponding Phase = "responding" // players writing answers
	PhaseJudging    Phase = "judging"    // judge scoring both answers
	PhaseVoting     Phase = "voting"     // players voting left/right
	PhaseResults    Phase = "results"    // round finished, tally revealed
)

func (p Phase) String() string {
	return string(p)
}

// timed reports whether a room in this phase must hold an armed deadline.
// Judging has no deadline; it resolves only when the judge adapter
// completes or fails.
func (p Phase) timed() bool {
	return p == PhaseResponding || p == PhaseVoting
}

var phaseTransitions = map[Phase][]Phase{
	PhaseLobby:      {PhaseResponding},
	PhaseResponding: {PhaseJudging, PhaseLobby},
	PhaseJudging:    {PhaseVoting, PhaseLobby},
	PhaseVoting:     {PhaseResults},
	PhaseResults:    {PhaseResponding, PhaseLobby},
}

// canTransitionTo reports whether moving from p to target is legal.
func (p Phase) canTransitionTo(target Phase) bool {
	for _, next := range phaseTransitions[p] {
		if next == target {
			return true
		}
	}
	return false
}

var roomTypes = map[string]bool{
	"poetry":   true,
	"debate":   true,
	"personal": true,
	"creative": true,
	"general":  true,
}

func validRoomType(roomType string) bool {
	return roomTypes[roomType]
}
