// Package targets resolves ideal soil-parameter ranges for a plant and
// growth stage through three tiers: the built-in table, the persistent
// cache, and on-demand generation by the inference chain.
package targets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/haithamsoil/nasgh/internal/domain"
	"github.com/haithamsoil/nasgh/internal/llm"
)

// ErrNoUsableTargets is the terminal generation failure: the model
// produced nothing that validates as a target range.
var ErrNoUsableTargets = errors.New("no usable targets in model response")

// TextGenerator produces raw text for a prompt. *llm.Chain satisfies
// this; tests substitute a stub.
type TextGenerator interface {
	Generate(ctx context.Context, op, prompt string) (string, error)
}

// Generator asks the inference chain for a target-range table and
// parses the reply. It holds no state and never retries; fallback
// across backends happens inside the chain.
type Generator struct {
	chain TextGenerator
}

// NewGenerator creates a Generator over the given chain.
func NewGenerator(chain TextGenerator) *Generator {
	return &Generator{chain: chain}
}

// Generate produces a validated RangeRecord for the plant and stage.
// snapshot, when present, gives the model the latest reading as
// context; it never constrains validation.
func (g *Generator) Generate(ctx context.Context, plantName string, stage domain.Stage, snapshot domain.Reading) (domain.RangeRecord, error) {
	prompt := buildTargetsPrompt(plantName, stage, snapshot)
	raw, err := g.chain.Generate(ctx, "targets", prompt)
	if err != nil {
		return nil, fmt.Errorf("generating targets for %q/%s: %w", plantName, stage, err)
	}
	return parseTargets(raw)
}

// parseTargets extracts the first JSON object from model output and
// keeps every parameter whose band is numeric with min < max. Invalid
// parameters are dropped; an empty result after dropping fails.
func parseTargets(raw string) (domain.RangeRecord, error) {
	obj, ok := llm.FirstJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrNoUsableTargets)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoUsableTargets, err)
	}

	// Some prompt phrasings make the model wrap everything in a
	// "targets" envelope; unwrap it.
	if inner, ok := fields["targets"]; ok && len(fields) == 1 {
		var unwrapped map[string]json.RawMessage
		if err := json.Unmarshal(inner, &unwrapped); err == nil {
			fields = unwrapped
		}
	}

	rec := make(domain.RangeRecord, len(fields))
	for key, msg := range fields {
		param, ok := domain.ParameterFromWire(key)
		if !ok {
			continue
		}
		var band domain.Band
		if err := json.Unmarshal(msg, &band); err != nil {
			continue
		}
		if !band.Valid() {
			continue
		}
		rec[param] = band
	}

	if len(rec) == 0 {
		return nil, ErrNoUsableTargets
	}
	return rec, nil
}

// buildTargetsPrompt instructs the model to answer with nothing but the
// range-table JSON, in the short wire-key schema the parser expects.
func buildTargetsPrompt(plantName string, stage domain.Stage, snapshot domain.Reading) string {
	var b strings.Builder
	b.WriteString("أنت خبير تغذية نباتية يعمل مع جهاز \"نسغ\" لقياس التربة.\n\n")
	fmt.Fprintf(&b, "حدد المدى المثالي (min و max) لكل عنصر من عناصر التربة لنبات %q في مرحلة النمو %q.\n\n", plantName, stage)

	if len(snapshot) > 0 {
		if raw, err := json.Marshal(snapshot); err == nil {
			fmt.Fprintf(&b, "آخر قراءة من الجهاز (للاطلاع فقط):\n%s\n\n", raw)
		}
	}

	b.WriteString(`أرجع JSON فقط، بدون أي شرح أو نص خارج JSON، وبدون وحدات داخل الأرقام، بالشكل التالي بالضبط:

{
  "temp":     { "min": 18, "max": 26 },
  "moisture": { "min": 55, "max": 65 },
  "ec":       { "min": 800, "max": 2200 },
  "ph":       { "min": 6.0, "max": 7.5 },
  "n":        { "min": 100, "max": 160 },
  "p":        { "min": 60, "max": 100 },
  "k":        { "min": 200, "max": 300 },
  "shs":      { "min": 70, "max": 90 },
  "humic":    { "min": 6, "max": 18 }
}

استبدل الأرقام بقيم منطقية حسب نوع النبات ومرحلة النمو.`)
	return b.String()
}
