package main

import "testing"

func TestPhaseTransitions(t *testing.T) {
	allowed := []struct {
		from, to Phase
	}{
		{PhaseLobby, PhaseResponding},
		{PhaseResponding, PhaseJudging},
		{PhaseResponding, PhaseLobby},
		{PhaseJudging, PhaseVoting},
		{PhaseJudging, PhaseLobby},
		{PhaseVoting, PhaseResults},
		{PhaseResults, PhaseResponding},
		{PhaseResults, PhaseLobby},
	}
	for _, tc := range allowed {
		if !tc.from.canTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be legal", tc.from, tc.to)
		}
	}

	forbidden := []struct {
		from, to Phase
	}{
		{PhaseLobby, PhaseVoting},
		{PhaseLobby, PhaseResults},
		{PhaseResponding, PhaseVoting},
		{PhaseResponding, PhaseResults},
		{PhaseJudging, PhaseResponding},
		{PhaseJudging, PhaseResults},
		{PhaseVoting, PhaseLobby},
		{PhaseVoting, PhaseJudging},
		{PhaseResults, PhaseVoting},
		{PhaseLobby, PhaseLobby},
	}
	for _, tc := range forbidden {
		if tc.from.canTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be illegal", tc.from, tc.to)
		}
	}
}

func TestTimedPhases(t *testing.T) {
	for _, phase := range []Phase{PhaseResponding, PhaseVoting} {
		if !phase.timed() {
			t.Errorf("%s should require a deadline", phase)
		}
	}
	for _, phase := range []Phase{PhaseLobby, PhaseJudging, PhaseResults} {
		if phase.timed() {
			t.Errorf("%s should not require a deadline", phase)
		}
	}
}

func TestValidRoomType(t *testing.T) {
	for _, roomType := range []string{"poetry", "debate", "personal", "creative", "general"} {
		if !validRoomType(roomType) {
			t.Errorf("%q should be a valid room type", roomType)
		}
	}
	for _, roomType := range []string{"", "POETRY", "trivia", "lobby"} {
		if validRoomType(roomType) {
			t.Errorf("%q should not be a valid room type", roomType)
		}
	}
}

func TestPromptsExistForEveryRoomType(t *testing.T) {
	for roomType := range roomTypes {
		if len(roomPrompts[roomType]) == 0 {
			t.Errorf("no prompts for room type %q", roomType)
		}
		if prompt := pickPrompt(roomType); prompt == "" {
			t.Errorf("empty prompt for room type %q", roomType)
		}
	}

	if prompt := pickPrompt("unknown"); prompt == "" {
		t.Error("unknown room type should fall back to the general pool")
	}
}
