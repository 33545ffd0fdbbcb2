// Package model defines data structures used throughout the application.
package model

import (
	"errors"
	"strings"
	"time"
)

// Validation errors for Resource.
var (
	ErrTextRequired = errors.New("text cannot be empty")
	ErrTextTooShort = errors.New("text must be at least 3 characters long")
)

// Validation constants.
const (
	MinTextLength  = 3
	DefaultCreator = "Unknown"
)

// Resource represents a text entry held by the store.
type Resource struct {
	ID      string `json:"id"`
	Creator string `json:"creator"`
	Text    string `json:"text"`
}

// ValidateText checks the text rule shared by create and update:
// required, with a trimmed length of at least MinTextLength.
func ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrTextRequired
	}

	if len(trimmed) < MinTextLength {
		return ErrTextTooShort
	}

	return nil
}

// CreatorOrDefault returns the supplied creator, or DefaultCreator when
// the value was omitted or blank.
func CreatorOrDefault(creator string) string {
	if strings.TrimSpace(creator) == "" {
		return DefaultCreator
	}
	return creator
}

// CreateResourceRequest is the payload for creating a resource. Validation
// and creator defaulting happen in the store, which is the single
// enforcement point for the text rule.
type CreateResourceRequest struct {
	Creator string `json:"creator,omitempty"`
	Text    string `json:"text"`
}

// UpdateResourceRequest is the payload for updating a resource's text.
// The id and creator of a resource are immutable after creation.
type UpdateResourceRequest struct {
	Text string `json:"text"`
}

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WebSocketMessage represents a message sent over WebSocket connection.
type WebSocketMessage struct {
	Type      string    `json:"type"`
	Resource  *Resource `json:"resource,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WebSocket message types.
const (
	WSMessageTypeRandomResource = "random_resource"
	WSMessageTypePing           = "ping"
	WSMessageTypePong           = "pong"
	WSMessageTypeError          = "error"
)

// NewRandomResourceMessage creates a new WebSocket message carrying a
// randomly selected resource.
func NewRandomResourceMessage(resource Resource) WebSocketMessage {
	return WebSocketMessage{
		Type:      WSMessageTypeRandomResource,
		Resource:  &resource,
		Timestamp: time.Now().UTC(),
	}
}
