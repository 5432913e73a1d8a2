package main

// Messages coming from clients
type ClientMessage struct {
	Type     string `json:"type"`                // "join_room", "leave_room", "submit_response", "submit_vote", "request_new_round"
	RoomID   string `json:"room_id,omitempty"`   // all types; must match the connected room
	RoomType string `json:"room_type,omitempty"` // join_room
	Username string `json:"username,omitempty"`  // join_room
	Response string `json:"response,omitempty"`  // submit_response
	Vote     string `json:"vote,omitempty"`      // submit_vote: "left" or "right"
}

// ConnectedMessage is sent to a client immediately after its socket is
// accepted, so it knows its own identity.
type ConnectedMessage struct {
	Type     string `json:"type"` // "connected"
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// PlayerJoinedMessage announces a new player to everyone in the room.
type PlayerJoinedMessage struct {
	Type        string `json:"type"` // "player_joined"
	PlayerID    string `json:"player_id"`
	Username    string `json:"username"`
	PlayerCount int    `json:"player_count"`
}

type PlayerLeftMessage struct {
	Type        string `json:"type"` // "player_left"
	PlayerID    string `json:"player_id"`
	Username    string `json:"username"`
	PlayerCount int    `json:"player_count"`
}

// RoomStateMessage resynchronizes a client that connected mid-phase.
// It carries the full current state instead of replayed history.
type RoomStateMessage struct {
	Type          string `json:"type"` // "room_state"
	RoomID        string `json:"room_id"`
	RoomType      string `json:"room_type"`
	Phase         Phase  `json:"phase"`
	RoundNumber   uint64 `json:"round_number"`
	PlayerCount   int    `json:"player_count"`
	Prompt        string `json:"prompt,omitempty"`
	LeftResponse  string `json:"left_response,omitempty"`  // voting phase only
	RightResponse string `json:"right_response,omitempty"` // voting phase only
	YourResponse  string `json:"your_response,omitempty"`  // own submission this round, if any
	YourVote      string `json:"your_vote,omitempty"`      // own vote this round, if any
	Spectating    bool   `json:"spectating"`               // joined mid-round, acts next round
	TimeRemaining int    `json:"time_remaining,omitempty"` // seconds until the phase deadline
}

type NewRoundMessage struct {
	Type        string `json:"type"` // "new_round"
	Prompt      string `json:"prompt"`
	RoomType    string `json:"room_type"`
	RoundNumber uint64 `json:"round_number"`
	Timeout     int    `json:"timeout"`              // seconds to respond
	StyleHint   string `json:"style_hint,omitempty"` // style cloak writing instruction, if one applies
}

type ResponseSubmittedMessage struct {
	Type     string `json:"type"` // "response_submitted"
	PlayerID string `json:"player_id"`
}

type JudgingStartedMessage struct {
	Type    string `json:"type"` // "judging_started"
	Message string `json:"message"`
}

type VotingPhaseMessage struct {
	Type          string `json:"type"` // "voting_phase"
	Prompt        string `json:"prompt"`
	LeftResponse  string `json:"left_response"`
	RightResponse string `json:"right_response"`
	Timeout       int    `json:"timeout"` // seconds to vote
}

type VoteSubmittedMessage struct {
	Type     string `json:"type"` // "vote_submitted"
	PlayerID string `json:"player_id"`
}

// JudgeVerdictPayload carries both verdicts plus whether the judge
// correctly picked the human response.
type JudgeVerdictPayload struct {
	Human   Verdict `json:"human"`
	AI      Verdict `json:"ai"`
	Correct bool    `json:"correct"`
}

type VoteTally struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

type RoundResultsMessage struct {
	Type           string              `json:"type"` // "round_results"
	Prompt         string              `json:"prompt"`
	LeftResponse   string              `json:"left_response"`
	RightResponse  string              `json:"right_response"`
	LeftIs         string              `json:"left_is"`  // "human" or "ai"
	RightIs        string              `json:"right_is"` // "human" or "ai"
	JudgeVerdict   JudgeVerdictPayload `json:"judge_verdict"`
	PlayerVotes    VoteTally           `json:"player_votes"`
	PlayerAccuracy float64             `json:"player_accuracy"`
	CorrectVotes   int                 `json:"correct_votes"`
	TotalVotes     int                 `json:"total_votes"`
}

type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

func errorMessage(message string) ErrorMessage {
	return ErrorMessage{
		Type:    "error",
		Message: message,
	}
}
