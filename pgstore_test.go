package main

import (
	"testing"
	"time"
)

func TestSessionParticipantsDedupesAuthorVote(t *testing.T) {
	rec := OutcomeRecord{
		SessionUUID: "s1",
		AuthorID:    "alice",
		AuthorName:  "Alice",
		Votes: []VoteOutcome{
			{PlayerID: "alice", Username: "Alice", Choice: "left", Correct: false},
			{PlayerID: "bob", Username: "Bob", Choice: "left", Correct: true},
			{PlayerID: "bob", Username: "Bob", Choice: "right", Correct: false},
			{PlayerID: "carol", Username: "Carol", Choice: "right", Correct: false},
		},
		CompletedAt: time.Now(),
	}

	got := sessionParticipants(rec)
	want := []sessionParticipant{
		{id: "alice", username: "Alice"},
		{id: "bob", username: "Bob"},
		{id: "carol", username: "Carol"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d participants, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("participant %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSessionParticipantsWithoutAuthor(t *testing.T) {
	rec := OutcomeRecord{
		SessionUUID: "s2",
		Votes: []VoteOutcome{
			{PlayerID: "bob", Username: "Bob"},
		},
	}

	got := sessionParticipants(rec)
	if len(got) != 1 || got[0].id != "bob" {
		t.Fatalf("got %v, want just bob", got)
	}
}
