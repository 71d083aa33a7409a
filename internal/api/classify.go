package api

import "context"

// ClassifyRequest represents the POST /api/classify request.
type ClassifyRequest struct {
	Text           string `json:"text"`
	ConversationID string `json:"conversation_id,omitempty"`
	Channel        string `json:"channel,omitempty"`
	Language       string `json:"language,omitempty"`
}

// ClassificationResult represents the POST /api/classify response.
type ClassificationResult struct {
	Intent            string  `json:"intent"`
	Sentiment         string  `json:"sentiment"`
	Urgency           string  `json:"urgency"`
	Confidence        float64 `json:"confidence"`
	SuggestedPriority string  `json:"suggested_priority"`
	Language          string  `json:"language"`
}

// Classify classifies a customer message.
func (c *Client) Classify(ctx context.Context, req ClassifyRequest) (*ClassificationResult, error) {
	var result ClassificationResult
	if err := c.post(ctx, "/api/classify", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
