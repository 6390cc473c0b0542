package advisor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haithamsoil/nasgh/internal/domain"
	"github.com/haithamsoil/nasgh/internal/llm"
)

type stubChain struct {
	reply  string
	err    error
	op     string
	prompt string
}

func (s *stubChain) Generate(ctx context.Context, op, prompt string) (string, error) {
	s.op = op
	s.prompt = prompt
	return s.reply, s.err
}

func TestAdvisePromptCarriesStatusSummary(t *testing.T) {
	chain := &stubChain{reply: "  التوصية هنا  "}
	a := NewAdvisor(chain)

	text, err := a.Advise(context.Background(), AdviceRequest{
		Reading:    domain.Reading{domain.ParamPH: 5.0},
		PlantName:  "طماطم",
		StageLabel: "vegetative",
		StatusSummary: domain.StatusSummary{
			domain.ParamPH: domain.StatusDeficient,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "التوصية هنا", text)
	assert.Equal(t, "advice", chain.op)
	assert.Contains(t, chain.prompt, "طماطم")
	assert.Contains(t, chain.prompt, "ph: نقص")
}

func TestAdviseRequiresReading(t *testing.T) {
	a := NewAdvisor(&stubChain{reply: "x"})
	_, err := a.Advise(context.Background(), AdviceRequest{})
	assert.Error(t, err)
}

func TestAdvisePropagatesChainFailure(t *testing.T) {
	chainErr := &llm.AllBackendsError{Attempted: 3, LastErr: llm.ErrEmptyResponse}
	a := NewAdvisor(&stubChain{err: chainErr})

	_, err := a.Advise(context.Background(), AdviceRequest{
		Reading: domain.Reading{domain.ParamPH: 6.5},
	})
	var all *llm.AllBackendsError
	assert.ErrorAs(t, err, &all)
}

func TestChatPromptCarriesHistoryAndContext(t *testing.T) {
	chain := &stubChain{reply: "مرحبا"}
	a := NewAdvisor(chain)

	_, err := a.Chat(context.Background(), ChatRequest{
		Message: "كيف أحسن الرطوبة؟",
		History: []ChatTurn{
			{Role: "user", Content: "سؤال سابق"},
			{Role: "assistant", Content: "جواب سابق"},
		},
		Reading:    domain.Reading{domain.ParamMoisture: 38.7},
		LastAdvice: "قلل الري",
	})
	require.NoError(t, err)

	assert.Equal(t, "chat", chain.op)
	assert.Contains(t, chain.prompt, "سؤال سابق")
	assert.Contains(t, chain.prompt, "جواب سابق")
	assert.Contains(t, chain.prompt, "قلل الري")
	assert.Contains(t, chain.prompt, "38.7")
	assert.True(t, strings.Contains(chain.prompt, "كيف أحسن الرطوبة؟"))
}

func TestChatRequiresMessage(t *testing.T) {
	a := NewAdvisor(&stubChain{reply: "x"})
	_, err := a.Chat(context.Background(), ChatRequest{Message: "   "})
	assert.Error(t, err)
}

func TestUserMessageDistinguishesQuota(t *testing.T) {
	quota := &llm.AllBackendsError{
		Attempted: 3,
		LastErr:   &llm.BackendError{StatusCode: 429, Status: "RESOURCE_EXHAUSTED"},
	}
	generic := &llm.AllBackendsError{Attempted: 3, LastErr: llm.ErrEmptyResponse}

	assert.NotEqual(t, UserMessage(quota), UserMessage(generic))
	assert.Contains(t, UserMessage(quota), "مشغولة")
}
