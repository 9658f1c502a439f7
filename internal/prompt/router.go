package prompt

import (
	"strings"
)

// Intent is the kind of answer a question asks for.
type Intent string

const (
	IntentGeneral     Intent = "general"
	IntentTranslation Intent = "translation"
)

// TranslationKeywords route a question to the translation template when any
// of them appears anywhere in the lower-cased query. Matching is by
// substring, so "from" and "to" also catch ordinary questions such as
// "what is this about, from start to finish?".
var TranslationKeywords = []string{"translate", "translation", "convert", "from", "to", "language"}

const translationTemplate = `You are a highly skilled language translation AI.
The user has uploaded a PDF document, and your task is to translate its content from the source language to the target language specified in the user's query.
Here is the extracted content of the document (sections and tables).

--- DOCUMENT CONTENT ---
{{context}}
--- END OF DOCUMENT CONTENT ---

User's Instruction: "{{query}}"

TRANSLATED CONTENT:
`

const generalTemplate = `You are an expert AI assistant specialized in understanding and analyzing document contents.
The user has uploaded a PDF document (sections and tables are extracted below).

Based on the content and your general knowledge, answer the user's question.
If the answer is explicitly present in the context, use it.
Otherwise, try to infer a reasonable answer from the context or mention if it is related to the document.
If the document is irrelevant, you can answer based on your knowledge.

--- DOCUMENT CONTEXT ---
{{context}}
--- END OF CONTEXT ---

USER'S QUESTION: "{{query}}"

ANSWER:
`

// Classify decides the intent of a query.
func Classify(query string) Intent {
	q := strings.ToLower(query)
	for _, kw := range TranslationKeywords {
		if strings.Contains(q, kw) {
			return IntentTranslation
		}
	}
	return IntentGeneral
}

// Build classifies the query and fills the matching template with the
// document context and the raw query.
func Build(query, context string) (string, Intent) {
	intent := Classify(query)
	tmpl := generalTemplate
	if intent == IntentTranslation {
		tmpl = translationTemplate
	}
	r := strings.NewReplacer("{{context}}", context, "{{query}}", query)
	return r.Replace(tmpl), intent
}
