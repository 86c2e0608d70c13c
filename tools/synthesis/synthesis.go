package synthesis

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mohammad-safakhou/webchat/internal/helpers"
	"github.com/mohammad-safakhou/webchat/provider"
	fetchmodels "github.com/mohammad-safakhou/webchat/tools/web_fetch/models"
)

const DefaultApology = "I'm sorry, I couldn't generate a response at this time."

const groundedSystemPrompt = `You are a highly knowledgeable and concise AI assistant. Your primary goal is to answer the user's question accurately and directly, *solely* using the information provided below.

**Strict Instructions:**
1.  **Do NOT use any external knowledge.** Your response must be derived *only* from the "Provided Information."
2.  **Be Concise:** Get straight to the point.
3.  **If Insufficient:** If the "Provided Information" does not contain enough detail to answer the question, clearly state: "Based on the provided information, I cannot give a precise answer to that question. The context does not contain sufficient details." Do NOT try to guess or invent information.
4.  **No Extraneous Text:** Do not add conversational fillers beyond a direct answer or the "Insufficient" statement.`

const groundedUserPrompt = `Provided Information:
` + "```" + `
%s
` + "```" + `

User Question: %s
Answer:`

// Synthesizer produces the final answer text, optionally grounded in scraped
// documents.
type Synthesizer struct {
	provider        provider.Provider
	maxContextChars int
	apology         string
	logger          *log.Logger
}

func NewSynthesizer(p provider.Provider, maxContextChars int, apology string, logger *log.Logger) *Synthesizer {
	if maxContextChars <= 0 {
		maxContextChars = 5000
	}
	if apology == "" {
		apology = DefaultApology
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[SYNTH] ", log.LstdFlags)
	}
	return &Synthesizer{provider: p, maxContextChars: maxContextChars, apology: apology, logger: logger}
}

// Synthesize answers the query. With documents it builds a grounded prompt
// that forbids the model from reaching beyond the supplied text; without them
// it answers conversationally. Provider failures degrade to the configured
// apology so the turn still completes; fallback reports that substitution so
// callers can treat the answer as ungrounded. Only context cancellation
// surfaces as an error.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, docs []fetchmodels.Result) (answer string, fallback bool, err error) {
	var system, user string
	if len(docs) == 0 {
		user = fmt.Sprintf("User Question: %s", query)
	} else {
		system = groundedSystemPrompt
		user = fmt.Sprintf(groundedUserPrompt, s.buildContext(docs), query)
	}

	answer, err = s.provider.Complete(ctx, system, user)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		s.logger.Printf("completion failed, substituting apology: %v", err)
		return s.apology, true, nil
	}
	return answer, false, nil
}

// Apology returns the configured fallback answer text.
func (s *Synthesizer) Apology() string { return s.apology }

// buildContext concatenates the already-truncated document texts, each tagged
// with its source URL, and hard-caps the whole block so the prompt stays
// inside the model's input budget. Documents keep provider rank order.
func (s *Synthesizer) buildContext(docs []fetchmodels.Result) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, fmt.Sprintf("Source: %s\n%s", d.URL, d.Text))
	}
	block := strings.Join(parts, "\n\n")
	block, cut := helpers.Truncate(block, s.maxContextChars)
	if cut {
		s.logger.Printf("context truncated to %d chars", s.maxContextChars)
	}
	return block
}
