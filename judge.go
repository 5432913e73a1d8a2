package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// Verdict is the judge's assessment of a single candidate text.
type Verdict struct {
	HumanProb float64 `json:"human_prob"` // probability the text is human-written, in [0,1]
	Reasoning string  `json:"reasoning"`
}

// Judge scores how human-like a single response is. Implementations must
// complete or fail within the context's deadline; a missed deadline is an
// adapter failure, not a partial result.
type Judge interface {
	Judge(ctx context.Context, prompt, response string) (Verdict, error)
}

// Responder generates a rival answer to a prompt. styleHint is an optional
// style cloak instruction; empty means the model's default voice.
type Responder interface {
	Respond(ctx context.Context, prompt, styleHint string) (string, error)
}

type httpJudge struct {
	url    string
	client *http.Client
}

func newHTTPJudge(cfg *Config) *httpJudge {
	return &httpJudge{
		url: cfg.judgeURL,
		client: &http.Client{
			Timeout: cfg.judgeTimeout,
		},
	}
}

type judgeRequest struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// judgeReply accepts either a structured verdict or the model's raw text
// output, which is then parsed.
type judgeReply struct {
	HumanProb *float64 `json:"human_prob,omitempty"`
	Reasoning string   `json:"reasoning,omitempty"`
	Output    string   `json:"output,omitempty"`
}

func (j *httpJudge) Judge(ctx context.Context, prompt, response string) (Verdict, error) {
	body, err := json.Marshal(judgeRequest{
		Prompt:   prompt,
		Response: response,
	})
	if err != nil {
		return Verdict{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.url, bytes.NewReader(body))
	if err != nil {
		return Verdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return Verdict{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Verdict{}, fmt.Errorf("judge service returned status %d", resp.StatusCode)
	}

	var reply judgeReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Verdict{}, err
	}

	if reply.HumanProb != nil {
		return Verdict{
			HumanProb: normalizeProb(*reply.HumanProb),
			Reasoning: reply.Reasoning,
		}, nil
	}

	return parseVerdict(reply.Output), nil
}

var (
	probPattern      = regexp.MustCompile(`(?i)HUMAN_PROB:\s*(\d+(?:\.\d+)?)`)
	reasoningPattern = regexp.MustCompile(`(?is)REASONING:\s*(.+?)(?:\n|$)`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// parseVerdict extracts a verdict from the judge model's free-text output.
// The model is instructed to answer with HUMAN_PROB and REASONING lines;
// anything unparseable degrades to a neutral verdict.
func parseVerdict(raw string) Verdict {
	verdict := Verdict{
		HumanProb: 0.5,
		Reasoning: "Unable to parse model output",
	}

	if m := probPattern.FindStringSubmatch(raw); m != nil {
		prob, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			verdict.HumanProb = normalizeProb(prob)
		}
	}

	if m := reasoningPattern.FindStringSubmatch(raw); m != nil {
		reasoning := whitespaceRuns.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		if len(reasoning) > 500 {
			reasoning = reasoning[:500]
		}
		if reasoning != "" {
			verdict.Reasoning = reasoning
		}
	}

	return verdict
}

// normalizeProb scales a percentage answer down to [0,1] before clamping.
// Models often reply with 82 where 0.82 was asked for.
func normalizeProb(p float64) float64 {
	if p > 1 {
		p = p / 100.0
	}
	return clampProb(p)
}

func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
