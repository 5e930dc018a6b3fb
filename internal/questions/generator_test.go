package questions

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeLLM struct {
	calls    int
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestMatchSkills(t *testing.T) {
	text := "Experienced with Golang, React.js and PostgreSQL. Some Express too."
	got := MatchSkills(text)
	want := []string{"Go", "Node.js", "React", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchSkills = %v, want %v", got, want)
	}
}

func TestMatchSkillsEmpty(t *testing.T) {
	if got := MatchSkills("Managed a bakery for ten years."); len(got) != 0 {
		t.Errorf("MatchSkills = %v, want none", got)
	}
}

func TestGenerateBankOnly(t *testing.T) {
	llmClient := &fakeLLM{}
	gen := &Generator{LLM: llmClient}

	out := gen.Generate(context.Background(), []string{"JavaScript", "Python"})
	if llmClient.calls != 0 {
		t.Errorf("model called %d times for bank skills", llmClient.calls)
	}
	if len(out["JavaScript"]) != 3 || len(out["Python"]) != 3 {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestGenerateUnknownSkillUsesModel(t *testing.T) {
	llmClient := &fakeLLM{response: `{"Kubernetes":["Q1","Q2","Q3"]}`}
	gen := &Generator{LLM: llmClient}

	out := gen.Generate(context.Background(), []string{"JavaScript", "Kubernetes"})
	if llmClient.calls != 1 {
		t.Fatalf("model calls = %d, want 1", llmClient.calls)
	}
	if !strings.Contains(llmClient.prompts[0], "Kubernetes") {
		t.Errorf("prompt missing unknown skill: %q", llmClient.prompts[0])
	}
	if strings.Contains(llmClient.prompts[0], "JavaScript") {
		t.Errorf("bank skill sent to the model: %q", llmClient.prompts[0])
	}
	if !reflect.DeepEqual(out["Kubernetes"], []string{"Q1", "Q2", "Q3"}) {
		t.Errorf("Kubernetes questions = %v", out["Kubernetes"])
	}
	if len(out["JavaScript"]) != 3 {
		t.Errorf("JavaScript questions = %v", out["JavaScript"])
	}
}

func TestGenerateDegradesOnModelFailure(t *testing.T) {
	llmClient := &fakeLLM{err: errors.New("provider down")}
	gen := &Generator{LLM: llmClient}

	out := gen.Generate(context.Background(), []string{"JavaScript", "Kubernetes"})
	if len(out["JavaScript"]) != 3 {
		t.Errorf("bank skill lost on model failure: %v", out)
	}
	if _, ok := out["Kubernetes"]; ok {
		t.Errorf("unknown skill present despite model failure: %v", out)
	}
}

func TestGenerateDegradesOnUnparseableModelOutput(t *testing.T) {
	llmClient := &fakeLLM{response: "Sorry, I can't help with that."}
	gen := &Generator{LLM: llmClient}

	out := gen.Generate(context.Background(), []string{"Kubernetes"})
	if len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
}

func TestGenerateWithoutModel(t *testing.T) {
	gen := &Generator{}
	out := gen.Generate(context.Background(), []string{"JavaScript", "Kubernetes"})
	if len(out["JavaScript"]) != 3 {
		t.Errorf("bank skill missing: %v", out)
	}
	if _, ok := out["Kubernetes"]; ok {
		t.Errorf("unknown skill answered without a model: %v", out)
	}
}
