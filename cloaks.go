package main

// A StyleCloak levels the playing field for a round: players get a writing
// instruction, and the responder gets a matching modification so neither
// side's default voice gives it away.
type StyleCloak struct {
	Name        string
	PlayerHint  string // shown to players in new_round
	AIDirective string // passed to the responder adapter
}

var styleCloaks = []StyleCloak{
	{
		Name:        "corporate_jargon",
		PlayerHint:  "Write like a middle manager with buzzwords",
		AIDirective: "Add hesitation markers: 'um', 'you know', 'I think'",
	},
	{
		Name:        "teenager_text",
		PlayerHint:  "Write like you're texting your best friend",
		AIDirective: "Add typos and autocorrect 'mistakes'",
	},
	{
		Name:        "academic_paper",
		PlayerHint:  "Write in formal academic style",
		AIDirective: "Add personal asides and imperfect citations",
	},
	{
		Name:        "casual_conversation",
		PlayerHint:  "Write as if you're having a casual chat",
		AIDirective: "Add informal language and occasional tangents",
	},
	{
		Name:        "technical_expert",
		PlayerHint:  "Write with technical precision and jargon",
		AIDirective: "Occasionally oversimplify or use analogies",
	},
	{
		Name:        "storyteller",
		PlayerHint:  "Write in a narrative, story-telling style",
		AIDirective: "Add personal anecdotes and emotional touches",
	},
	{
		Name:        "minimalist",
		PlayerHint:  "Be extremely brief and to the point",
		AIDirective: "Add slight elaboration beyond necessary",
	},
	{
		Name:        "enthusiastic",
		PlayerHint:  "Write with lots of enthusiasm and excitement!",
		AIDirective: "Tone down slightly with occasional hesitation",
	},
}

func randomCloak() *StyleCloak {
	return &styleCloaks[randomIndex(len(styleCloaks))]
}
