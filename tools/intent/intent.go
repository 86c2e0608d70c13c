package intent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mohammad-safakhou/webchat/provider"
)

// Intent labels a query as answerable directly or requiring a web search.
type Intent int

const (
	IntentDirect Intent = iota
	IntentSearchRequired
)

func (i Intent) String() string {
	if i == IntentSearchRequired {
		return "search-required"
	}
	return "direct"
}

const (
	labelDirect = "NORMAL_CHAT"
	labelSearch = "INFORMATION_SEEKING"
)

const classifyPrompt = `Analyze the following user query and classify its intent.
Respond with exactly one word: "NORMAL_CHAT" for greetings, pleasantries, or simple conversational questions, or "INFORMATION_SEEKING" for questions that require factual lookup or detailed explanation.

Examples:
User: Hi -> NORMAL_CHAT
User: How are you? -> NORMAL_CHAT
User: Tell me a joke -> NORMAL_CHAT
User: What is data science? -> INFORMATION_SEEKING
User: Who is the president of France? -> INFORMATION_SEEKING
User: Explain quantum physics -> INFORMATION_SEEKING
User: Good morning -> NORMAL_CHAT
User: what is car -> INFORMATION_SEEKING
User: tell me something about AI -> INFORMATION_SEEKING
User: What's the weather like? -> INFORMATION_SEEKING

User: %s ->`

// Classifier labels queries via a single LLM call.
type Classifier struct {
	provider provider.Provider
	logger   *log.Logger
}

func NewClassifier(p provider.Provider, logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.New(log.Writer(), "[INTENT] ", log.LstdFlags)
	}
	return &Classifier{provider: p, logger: logger}
}

// Classify returns the query's intent. Model failures and unparseable labels
// fall open to IntentDirect (the cheaper path) with a warning; the only error
// case is an empty query.
func (c *Classifier) Classify(ctx context.Context, query string) (Intent, error) {
	if strings.TrimSpace(query) == "" {
		return IntentDirect, errors.New("empty query")
	}

	raw, err := c.provider.Complete(ctx, "", fmt.Sprintf(classifyPrompt, query))
	if err != nil {
		c.logger.Printf("classification failed, defaulting to direct: %v", err)
		return IntentDirect, nil
	}

	label := strings.ToUpper(strings.TrimSpace(raw))
	label = strings.ReplaceAll(label, ".", "")
	switch label {
	case labelDirect:
		return IntentDirect, nil
	case labelSearch:
		return IntentSearchRequired, nil
	default:
		c.logger.Printf("unexpected classification %q, defaulting to direct", label)
		return IntentDirect, nil
	}
}
