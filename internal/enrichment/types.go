package enrichment

import (
	"context"

	"github.com/suykerbuyk/vibe-digest/internal/distill"
	"github.com/suykerbuyk/vibe-digest/internal/topic"
)

// Summarizer produces a model-written summary for one project. Any error
// means the caller should fall back to heuristic distillation.
type Summarizer interface {
	Summarize(ctx context.Context, data ConversationData) (distill.ProjectSummary, error)
}

// ConversationData is a project's topics flattened into parallel ordered
// lists for prompt construction.
type ConversationData struct {
	Project          string
	UserMessages     []string
	AssistantActions []string
	Timestamps       []string
}

// Flatten collects the intents, step descriptions and timestamps of topics.
func Flatten(project string, topics []topic.Topic) ConversationData {
	data := ConversationData{Project: project}
	for _, t := range topics {
		data.UserMessages = append(data.UserMessages, t.UserIntent)
		data.Timestamps = append(data.Timestamps, t.Timestamp)
		for _, s := range t.Steps {
			data.AssistantActions = append(data.AssistantActions, s.Description)
		}
	}
	return data
}

// Envelope of an OpenAI-compatible chat completion, accepted when the
// configured command wraps such an API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// analysisJSON is the expected JSON structure of a model response.
type analysisJSON struct {
	ProjectTitle   string         `json:"project_title"`
	ProjectPurpose string         `json:"project_purpose"`
	MainActivities []activityJSON `json:"main_activities"`
	Achievements   []string       `json:"achievements"`
	Challenges     []string       `json:"challenges"`
	Insights       string         `json:"insights"`
}

type activityJSON struct {
	Category         string `json:"category"`
	Description      string `json:"description"`
	Impact           string `json:"impact"`
	TechnicalDetails string `json:"technical_details,omitempty"`
}
