package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fuelcosmos-api/config"
)

// ExtractedReceipt is the best-effort structured data the external
// extraction service pulls out of a receipt photo. Any field may be
// missing; the client reviews the values before creating an entry with
// sourceType PHOTO_AI.
type ExtractedReceipt struct {
	OdometerKm  *float64 `json:"odometerKm,omitempty"`
	FuelVolumeL *float64 `json:"fuelVolumeL,omitempty"`
	TotalCost   *float64 `json:"totalCost,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// ReceiptExtractionService calls the opaque external AI service that
// parses receipt photos. It owns no extraction logic of its own.
type ReceiptExtractionService struct {
	config *config.Config
	client *http.Client
}

func NewReceiptExtractionService(cfg *config.Config) *ReceiptExtractionService {
	return &ReceiptExtractionService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type extractRequest struct {
	PhotoURL string `json:"photoUrl"`
}

// ExtractFromPhoto submits a receipt photo URL for extraction and returns
// whatever structured data the service could recover.
func (s *ReceiptExtractionService) ExtractFromPhoto(ctx context.Context, photoURL string) (*ExtractedReceipt, error) {
	body, err := json.Marshal(extractRequest{PhotoURL: photoURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.ExtractorURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.ExtractorAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.ExtractorAPIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var extracted ExtractedReceipt
	if err := json.NewDecoder(resp.Body).Decode(&extracted); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	return &extracted, nil
}
