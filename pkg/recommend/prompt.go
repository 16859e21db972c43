package recommend

import (
	"fmt"
	"strings"
)

// ToolFields is the per-tool structure requested from the model.
var ToolFields = []string{
	"Tool Name",
	"Core Purpose",
	"How it suits the user's problem",
	"Key Features (4-6 bullet points)",
	"Pros",
	"Cons",
	"Approx Monthly Pricing (USD)",
	"Website Link",
}

// BuildPrompt asks for a ranked list of up to topK tools, each on a line starting
// with "<rank>. <Tool Name> - " so ExtractToolNames can recover the names.
func BuildPrompt(problem, companySize string, topK int) string {
	if topK <= 0 {
		topK = DefaultTopK
	}
	minK := 3
	if topK < minK {
		minK = topK
	}

	var prompt strings.Builder
	prompt.WriteString("You are an expert AI SaaS Tool Recommender.\n")
	fmt.Fprintf(&prompt, "Analyze the user's problem and company size, and recommend the top %d-%d SaaS tools, ranked from 1 to %d, in professional markdown format.\n\n", minK, topK, topK)
	fmt.Fprintf(&prompt, "Problem: %s\n", strings.TrimSpace(problem))
	fmt.Fprintf(&prompt, "Company Size: %s\n\n", strings.TrimSpace(companySize))
	prompt.WriteString("Each tool must include:\n")
	for _, field := range ToolFields {
		fmt.Fprintf(&prompt, "- %s\n", field)
	}
	prompt.WriteString("\nStart every tool with a single line formatted exactly as \"<rank>. <Tool Name> - <one sentence summary>\".\n")
	prompt.WriteString("Do not number any other line.\n")
	return prompt.String()
}
