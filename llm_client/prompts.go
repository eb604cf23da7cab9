package llm_client

import (
	"fmt"

	"pdfanalyzer/document_type"
)

const textPlaceholder = "{text_placeholder}"

// Character budgets standing in for token budgets, tuned per template
// verbosity. Question answering uses the same context budget for every
// profile.
const (
	contractInputLimit = 4000
	resumeInputLimit   = 3000
	genericInputLimit  = 3500
	answerContextLimit = 4000
)

type extractionProfile struct {
	system     string
	template   string
	inputLimit int
}

var extractionProfiles = map[document_type.Type]extractionProfile{
	document_type.Contract: {
		system:     "You are an expert contract analyst. Extract key contract information and return structured data.",
		inputLimit: contractInputLimit,
		template: `Analyze the following contract document and extract key information.
Return a structured response with the following fields:

- parties: Names/entities of all parties involved
- contract_type: Type of contract (employment, service, lease, etc.)
- effective_date: When the contract becomes effective
- expiration_date: When the contract expires (if applicable)
- key_terms: Important terms and conditions
- payment_terms: Payment structure and amounts
- obligations: Key obligations of each party
- termination_conditions: How the contract can be terminated
- governing_law: Applicable law/jurisdiction
- summary: Brief overview of the contract

Document text:
{text_placeholder}

Please provide a structured response focusing on the most important contract elements.`,
	},
	document_type.Resume: {
		system:     "You are an expert resume parser. Extract key information and return structured data.",
		inputLimit: resumeInputLimit,
		template: `Analyze the following resume text and extract key information.
Return a structured response with the following fields:

- name: Full name of the person
- email: Email address if found
- phone: Phone number if found
- location: Current location/address
- skills: List of technical and professional skills
- experience: List of work experience with company, position, duration
- education: Educational background
- summary: Brief professional summary

Document text:
{text_placeholder}

Please provide a structured response focusing on the most important information.`,
	},
	document_type.Generic: {
		system:     "You are an expert document analyst. Extract key information from any document type and return structured data.",
		inputLimit: genericInputLimit,
		template: `Analyze the following document and extract key information.
Return a structured response with the following fields:

- document_type: What type of document this appears to be
- key_entities: Important people, organizations, or entities mentioned
- dates: Important dates mentioned
- key_terms: Important terms, conditions, or concepts
- financial_info: Any monetary amounts, costs, or financial terms
- obligations: Any responsibilities or requirements mentioned
- summary: Brief overview of the document content

Document text:
{text_placeholder}

Please provide a structured response focusing on the most important information.`,
	},
}

var answerSystemMessages = map[document_type.Type]string{
	document_type.Contract: "You are a helpful assistant that answers questions about contracts based on the provided information.",
	document_type.Resume:   "You are a helpful assistant that answers questions about resumes based on the provided information.",
	document_type.Generic:  "You are a helpful assistant that answers questions about documents based on the provided information.",
}

// profileFor falls back to the generic profile for any type outside the
// known set, so the dispatch is total.
func profileFor(docType document_type.Type) extractionProfile {
	if p, ok := extractionProfiles[docType]; ok {
		return p
	}
	return extractionProfiles[document_type.Generic]
}

func answerSystemFor(docType document_type.Type) string {
	if s, ok := answerSystemMessages[docType]; ok {
		return s
	}
	return answerSystemMessages[document_type.Generic]
}

func answerPrompt(question, docContext string, docType document_type.Type) string {
	truncated := truncate(docContext, answerContextLimit)

	switch docType {
	case document_type.Contract:
		return fmt.Sprintf(`Based on the following contract information, answer this question: %q

Contract information:
%s

Provide a clear, concise answer based on the information available in the contract.
If the information is not available, say "Information not found in the contract."`, question, truncated)

	case document_type.Resume:
		return fmt.Sprintf(`Based on the following resume information, answer this question: %q

Resume information:
%s

IMPORTANT: Look carefully at the structured data above. If the information is present in any form, provide the answer.

For percentage/grade questions:
- Look for any numerical values like "75%%", "90%%", "9.8 GPA", etc.
- "BTech" typically refers to "Bachelor of Technology" or "Bachelor of Computer Science and Engineering"
- "B.Tech", "BE", "Bachelor of Engineering", "Bachelor of Computer Science" are all equivalent to BTech

For degree questions:
- "Bachelor of Computer Science and Engineering" = BTech/BE
- "Bachelor of Technology" = BTech
- "Bachelor of Engineering" = BE

Provide a clear, concise answer based on the information available in the resume.
If the information is truly not available, say "Information not found in the resume."`, question, truncated)

	default:
		return fmt.Sprintf(`Based on the following document information, answer this question: %q

Document information:
%s

Provide a clear, concise answer based on the information available in the document.
If the information is not available, say "Information not found in the document."`, question, truncated)
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
