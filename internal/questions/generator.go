package questions

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"smarthire-backend/internal/extract"
	"smarthire-backend/internal/llm"
	"smarthire-backend/internal/shared/telemetry"
)

// Generator produces interview questions for the skills found in a resume.
// Known skills come from the curated bank; unknown skills go to the model in
// a single prompt. Model failures degrade to bank-only output.
//
// Extract is swappable for tests; it defaults to extract.Text.
type Generator struct {
	LLM     llm.Client
	Extract func(ctx context.Context, data []byte, mimeType string) (string, error)
}

// NewGenerator constructs a Generator with the default extractor.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{LLM: client, Extract: extract.Text}
}

// FromResume extracts text from the payload, matches skills and generates
// questions for each.
func (g *Generator) FromResume(ctx context.Context, data []byte, mimeType string) ([]string, map[string][]string, error) {
	text, err := g.Extract(ctx, data, mimeType)
	if err != nil {
		return nil, nil, err
	}
	skills := MatchSkills(text)
	qs := g.Generate(ctx, skills)
	return skills, qs, nil
}

var wordSplit = regexp.MustCompile(`[^a-z0-9.+#]+`)

// MatchSkills scans resume text for skills the bank or its aliases know.
// The result is deduplicated and sorted for deterministic output.
func MatchSkills(text string) []string {
	seen := make(map[string]bool)
	for _, word := range wordSplit.Split(strings.ToLower(text), -1) {
		// Dots are kept by the splitter for names like "node.js"; strip the
		// sentence-ending ones.
		word = strings.Trim(word, ".")
		if canonical, ok := skillAliases[word]; ok {
			seen[canonical] = true
		}
	}
	out := make([]string, 0, len(seen))
	for skill := range seen {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Generate returns three questions per skill. Skills present in the bank are
// answered locally; the rest are batched into one model prompt.
func (g *Generator) Generate(ctx context.Context, skills []string) map[string][]string {
	out := make(map[string][]string, len(skills))
	var unknown []string
	for _, skill := range skills {
		if qs, ok := questionsBySkill[skill]; ok {
			out[skill] = qs
		} else {
			unknown = append(unknown, skill)
		}
	}
	if len(unknown) == 0 || g.LLM == nil {
		return out
	}

	raw, err := g.LLM.Generate(ctx, llm.QuestionsPrompt(unknown))
	if err != nil {
		telemetry.Warn("questions.generate_failed", map[string]any{"error": err.Error()})
		return out
	}
	var generated map[string][]string
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &generated); err != nil {
		telemetry.Warn("questions.unparseable", map[string]any{"raw_len": len(raw)})
		return out
	}
	for _, skill := range unknown {
		if qs, ok := generated[skill]; ok && len(qs) > 0 {
			out[skill] = qs
		}
	}
	return out
}
