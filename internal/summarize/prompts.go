package summarize

import "sort"

// DefaultPromptName selects the built-in lecture-notes template.
const DefaultPromptName = "default"

// Content here is deliberately short; callers override with -prompt for
// anything beyond the built-ins.
var promptTemplates = map[string]string{
	"default": "Summarize the following transcript as structured lecture notes. " +
		"Use Markdown headings, keep the key arguments and any concrete numbers, " +
		"and end with a short list of takeaways.",
	"concise": "Summarize the following transcript in at most ten bullet points. " +
		"Keep only the essential claims and conclusions.",
	"outline": "Extract the structure of the following transcript as a nested " +
		"Markdown outline. Preserve the speaker's own section ordering.",
	"article": "Rewrite the following transcript as a short readable article " +
		"in Markdown with an introduction, body sections, and a conclusion.",
}

// PromptByName resolves a template name, falling back to the default
// template for unknown names.
func PromptByName(name string) string {
	if p, ok := promptTemplates[name]; ok {
		return p
	}
	return promptTemplates[DefaultPromptName]
}

// PromptNames lists the registered template names in sorted order.
func PromptNames() []string {
	names := make([]string, 0, len(promptTemplates))
	for name := range promptTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
