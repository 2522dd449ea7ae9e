package sentiment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const ollamaPrompt = `Classify the sentiment of the text as:
1 (positive)
0 (neutral)
-1 (negative)
Answer with the number only.

Text:
`

// OllamaScorer asks a local Ollama model for a -1 / 0 / 1 polarity.
// Failures are logged and scored as neutral.
type OllamaScorer struct {
	host   string
	model  string
	client *resty.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaScorer creates a scorer that calls host/api/generate
func NewOllamaScorer(host, model string) *OllamaScorer {
	return &OllamaScorer{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: resty.New().SetTimeout(90 * time.Second),
	}
}

func (o *OllamaScorer) Name() string {
	return "ollama"
}

func (o *OllamaScorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	answer, err := o.generate(ollamaPrompt + text)
	if err != nil {
		logrus.Warnf("Ollama sentiment request failed, scoring as neutral: %v", err)
		return 0
	}

	return parsePolarityAnswer(answer)
}

func (o *OllamaScorer) generate(prompt string) (string, error) {
	resp, err := o.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(ollamaRequest{Model: o.model, Prompt: prompt, Stream: false}).
		Post(o.host + "/api/generate")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("ollama unexpected response: %s", string(resp.Body()))
	}

	return parsed.Response, nil
}

func parsePolarityAnswer(answer string) float64 {
	answer = strings.ToLower(strings.TrimSpace(answer))
	answer = strings.TrimRight(answer, ".")

	switch answer {
	case "1", "+1", "positive":
		return 1
	case "-1", "- 1", "negative":
		return -1
	default:
		return 0
	}
}
