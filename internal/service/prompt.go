package service

import (
	"fmt"
	"strings"
)

// promptTemplate frames the model as a medical document assistant. The
// retrieved chunks form the document block; the model is told to admit
// when the documents don't contain the answer and to reason toward a
// full diagnosis rather than quoting fragments.
const promptTemplate = `You are MediChat, an intelligent medical document assistant.
Based on the following medical documents, provide accurate and helpful answers.
If the information is not in the documents, clearly state that.
Combine the documents with your own medical reasoning to give a full diagnosis of the problem.

Medical Documents:
%s

User Question: %s

Answer:`

func buildPrompt(question string, contextChunks []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(contextChunks, "\n\n"), question)
}
