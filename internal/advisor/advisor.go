package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/haithamsoil/nasgh/internal/domain"
	"github.com/haithamsoil/nasgh/internal/llm"
)

// TextGenerator produces raw text for a prompt; *llm.Chain satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, op, prompt string) (string, error)
}

// AdviceRequest carries everything the advisory prompt is built from.
// StatusSummary is authoritative: the model is told to never contradict
// it.
type AdviceRequest struct {
	Reading       domain.Reading
	PlantName     string
	StageLabel    string
	StatusSummary domain.StatusSummary
}

// ChatTurn is one turn of the assistant conversation.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest carries one chat message with its context.
type ChatRequest struct {
	Message    string
	History    []ChatTurn
	Reading    domain.Reading
	LastAdvice string
}

// Advisor produces Arabic advisory text through the fallback chain.
type Advisor struct {
	chain TextGenerator
}

// NewAdvisor creates an Advisor over the given chain.
func NewAdvisor(chain TextGenerator) *Advisor {
	return &Advisor{chain: chain}
}

// Advise returns a full soil recommendation for one reading.
func (a *Advisor) Advise(ctx context.Context, req AdviceRequest) (string, error) {
	if len(req.Reading) == 0 {
		return "", fmt.Errorf("advice request has no reading")
	}
	text, err := a.chain.Generate(ctx, "advice", buildAdvicePrompt(req))
	if err != nil {
		return "", fmt.Errorf("generating advice: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Chat answers one farmer message in the assistant persona.
func (a *Advisor) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", fmt.Errorf("chat request has no message")
	}
	text, err := a.chain.Generate(ctx, "chat", buildChatPrompt(req))
	if err != nil {
		return "", fmt.Errorf("generating chat reply: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// UserMessage maps an advisory failure to the Arabic message shown to
// the farmer. Quota exhaustion gets the "temporarily degraded" wording;
// operators see the real error in the logs.
func UserMessage(err error) string {
	if errors.Is(err, llm.ErrQuotaExhausted) {
		return "خدمة التوصيات مشغولة حاليًا، جرّب مرة ثانية بعد دقائق قليلة."
	}
	return "تعذر توليد التوصية حاليًا، حاول مرة أخرى لاحقًا."
}

func buildAdvicePrompt(req AdviceRequest) string {
	var b strings.Builder
	b.WriteString("أنت مساعد \"نَسغ\" الذكي، خبير في تفسير قراءات التربة للمزارع العُماني.\n\n")

	if raw, err := json.Marshal(req.Reading); err == nil {
		fmt.Fprintf(&b, "بيانات التربة (JSON):\n%s\n\n", raw)
	}

	if len(req.StatusSummary) > 0 {
		b.WriteString("ملخص حالة العناصر مقابل المدى المثالي:\n")
		for _, param := range domain.Parameters {
			status, ok := req.StatusSummary[param]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", param.WireKey(), statusArabic(status))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "نوع النبات: %s\n", orUnknown(req.PlantName))
	fmt.Fprintf(&b, "مرحلة النمو: %s\n\n", orUnknown(req.StageLabel))

	b.WriteString(`المطلوب:
- اكتب توصية عربية كاملة ومترابطة تشرح للمزارع حالة التربة بشكل عام.
- لكل عنصر في الملخص اذكر حالته كما هي في الملخص بالضبط، لا تخالفه أبدًا.
- اعطِ خطوات عملية بسيطة للري والتسميد، بدون أسماء تجارية.
- جُمل قصيرة وواضحة، واذكر الأرقام فقط عند الضرورة، ولا تكتب JSON.`)
	return b.String()
}

func buildChatPrompt(req ChatRequest) string {
	var b strings.Builder
	b.WriteString(`أنت مساعد ذكي اسمه "نَسغ" تابع لمشروع زراعي عُماني لمراقبة التربة والري.

أسلوب الرد:
- عربي فصيح بسيط مع لمسة خفيفة من العامية العُمانية، بنبرة ودودة وعملية.
- ركّز على التربة والري والتسميد وقراءات نسغ.
- لا تذكر أي نموذج لغوي، فقط قل أنك "مساعد نَسغ".
- اجعل الإجابة قصيرة نسبيًا ومنظمة عند الحاجة.

`)

	if len(req.Reading) > 0 {
		if raw, err := json.Marshal(req.Reading); err == nil {
			fmt.Fprintf(&b, "آخر قراءة تربة:\n%s\n\n", raw)
		}
	}
	if req.LastAdvice != "" {
		fmt.Fprintf(&b, "آخر توصية عُرضت للمزارع:\n%s\n\n", req.LastAdvice)
	}
	if len(req.History) > 0 {
		b.WriteString("المحادثة السابقة (للاطلاع فقط):\n")
		for i, turn := range req.History {
			speaker := "المزارع"
			if turn.Role == "assistant" {
				speaker = "مساعد نَسغ"
			}
			fmt.Fprintf(&b, "%s (%d): %s\n", speaker, i+1, turn.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "رسالة المزارع الآن:\n%s\n", req.Message)
	return b.String()
}

func statusArabic(s domain.Status) string {
	switch s {
	case domain.StatusDeficient:
		return "نقص"
	case domain.StatusExcess:
		return "زيادة"
	default:
		return "مناسب"
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "غير محدد"
	}
	return s
}
