package llm

import (
	_ "embed"
	"fmt"
	"strings"
)

var (
	//go:embed prompts/job_recommendations.txt
	jobRecommendationsTemplate string
	//go:embed prompts/analysis.txt
	analysisTemplate string
	//go:embed prompts/questions.txt
	questionsTemplate string
)

// JobRecommendationsPrompt asks for exactly five job objects as a JSON array.
func JobRecommendationsPrompt(resumeText string) string {
	return fmt.Sprintf(jobRecommendationsTemplate, resumeText)
}

// AnalysisPrompt asks for one structured analysis object.
func AnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(analysisTemplate, resumeText)
}

// QuestionsPrompt asks for three interview questions per skill.
func QuestionsPrompt(skills []string) string {
	return fmt.Sprintf(questionsTemplate, strings.Join(skills, ", "))
}
