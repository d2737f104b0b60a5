// Package domain holds the classify DTOs and service contract
package domain

import (
	"time"

	"snipjar/internal/core/category"
)

// MaxContentRunes caps a single piece of content accepted over HTTP
const MaxContentRunes = 65536

// ClassifyInput is one piece of clipboard content; blank content is allowed
type ClassifyInput struct {
	Content string `json:"content" validate:"max=65536" example:"jane.doe@example.com"`
}

// ClassifyOutput is a classification plus what clients need to render it
type ClassifyOutput struct {
	Category          category.Category `json:"category"           example:"email"`
	Confidence        float64           `json:"confidence"         example:"0.95"`
	Detector          string            `json:"detector,omitempty" example:"email"`
	Confident         bool              `json:"confident"          example:"true"`
	Icon              string            `json:"icon"               example:"envelope.fill"`
	Color             string            `json:"color"              example:"blue"`
	ClassifierVersion int               `json:"classifier_version" example:"1"`
}

// Item is a stored memo to reclassify
type Item struct {
	ID      string `json:"id"      validate:"required,max=128" example:"memo-42"`
	Content string `json:"content" validate:"max=65536"        example:"+82 10-1234-5678"`
}

// BatchInput is a reclassification request
type BatchInput struct {
	Items []Item `json:"items" validate:"required,min=1,dive"`
}

// ItemResult pairs an item id with its classification
type ItemResult struct {
	ID string `json:"id" example:"memo-42"`
	ClassifyOutput
}

// BatchOutput holds results in input order
type BatchOutput struct {
	Items []ItemResult `json:"items"`
}

// CorrectionInput is a user relabel
type CorrectionInput struct {
	Content  string            `json:"content"  validate:"max=65536"          example:"Seoul Gangnam-gu Teheran-ro 152"`
	Category category.Category `json:"category" validate:"required,category"  example:"address"`
}

// CorrectionAccepted acknowledges a relabel; corrections never fail once validated
type CorrectionAccepted struct {
	Accepted   bool              `json:"accepted"   example:"true"`
	Predicted  category.Category `json:"predicted"  example:"text"`
	Confidence float64           `json:"confidence" example:"0.3"`
}

// Correction is a stored relabel as exported for offline review
type Correction struct {
	ID         string            `json:"id"         example:"7b0c1a9e-3c55-4e0e-9d7a-2f1f7f0c8a11"`
	Content    string            `json:"content"    example:"Seoul Gangnam-gu Teheran-ro 152"`
	ContentKey string            `json:"content_key" example:"seoul gangnam-gu teheran-ro 152"`
	Script     string            `json:"script,omitempty" example:"Latin"`
	Predicted  category.Category `json:"predicted"  example:"text"`
	Confidence float64           `json:"confidence" example:"0.3"`
	Corrected  category.Category `json:"corrected"  example:"address"`
	CreatedAt  time.Time         `json:"created_at" example:"2025-03-01T12:00:00Z"`
}

// CategoryInfo describes one category for pickers
type CategoryInfo struct {
	Name  category.Category `json:"name"  example:"email"`
	Icon  string            `json:"icon"  example:"envelope.fill"`
	Color string            `json:"color" example:"blue"`
}
