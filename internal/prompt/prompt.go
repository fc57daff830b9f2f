// Package prompt builds the payload for one inference call from a user
// message and the extracted representations of any uploaded files.
package prompt

import (
	"strings"

	"github.com/medo-health/assistant-api/internal/models"
)

// SystemPreamble establishes the assistant persona and safety disclaimers.
// It is identical for every request within a deployment.
const SystemPreamble = `You are Medo, a helpful and knowledgeable health assistant specialized in medical information.
Your task is to analyze medical documents, images, and user queries to provide accurate health information.

When analyzing documents or images, focus on:
1. Identifying key medical information and terminology
2. Explaining medical terms in simple, understandable language
3. Providing context and relevance to the user's health concerns
4. Suggesting appropriate next steps or recommendations
5. For medical images, explain what information might be found in such images and how they are typically interpreted

When responding to health queries:
1. Provide evidence-based information when available
2. Be clear about the limitations of your advice
3. Encourage consultation with healthcare professionals for serious concerns
4. Avoid making definitive diagnoses
5. Be empathetic and supportive

Always maintain a friendly and professional tone while ensuring accuracy.

IMPORTANT: You are not a replacement for professional medical advice, diagnosis, or treatment.
Always remind users to consult with qualified healthcare providers for specific medical concerns.`

const (
	filesIntro    = "\n\nI've also uploaded the following files for analysis: "
	analyzePrefix = "Please analyze these files:\n"
	imageAdvisory = "\n\nNote: I've uploaded medical images/scans. Please provide guidance on how to interpret these types of images and what information might be relevant from them."
)

// Assemble combines a message and extracted file contents into one prompt.
// At least one of the two must be non-empty; the orchestrator rejects fully
// empty requests before calling here.
func Assemble(message string, extracted []models.ExtractedContent) models.AssembledPrompt {
	var contents strings.Builder
	hasImages := false
	for _, ec := range extracted {
		contents.WriteString(ec.RenderedText)
		if ec.Kind == models.KindImage {
			hasImages = true
		}
	}
	fileContents := contents.String()

	var user string
	switch {
	case message != "" && fileContents != "":
		user = message + filesIntro + fileContents
	case fileContents != "":
		user = analyzePrefix + fileContents
	default:
		user = message
	}

	if hasImages {
		user += imageAdvisory
	}

	return models.AssembledPrompt{
		SystemPreamble: SystemPreamble,
		UserContent:    user,
	}
}
