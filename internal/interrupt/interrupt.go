// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package interrupt models the pause points a conversation turn can hit
// when the service needs a human decision before continuing, and the
// broker that holds exactly one such pause at a time.
package interrupt

import "encoding/json"

// Type identifies the kind of review the service is asking for.
type Type string

const (
	// TypeCacheReview asks whether a semantically similar cached answer
	// should be reused instead of re-running the query.
	TypeCacheReview Type = "cache_review"
	// TypeVisualizationReview asks whether a proposed chart script
	// should be executed.
	TypeVisualizationReview Type = "visualization_review"
	// TypeUnknown covers interrupt kinds this client does not recognize.
	TypeUnknown Type = ""
)

// Interrupt is a pause payload received from the service. Raw preserves
// the full payload; the typed views are populated for known kinds.
type Interrupt struct {
	Kind Type
	Raw  map[string]any

	CacheReview         *CacheReview
	VisualizationReview *VisualizationReview
}

// CacheReview carries the fields of a cache_review interrupt.
type CacheReview struct {
	Query          string  `json:"query"`
	CachedResponse string  `json:"cached_response"`
	Similarity     float64 `json:"similarity"`
}

// VisualizationReview carries the fields of a visualization_review interrupt.
type VisualizationReview struct {
	Code         string   `json:"code"`
	RowCount     int      `json:"row_count"`
	Columns      []string `json:"columns"`
	PreviewImage string   `json:"preview_image"`
	PreviewError string   `json:"preview_error"`
}

// Decision is the human's answer to an interrupt. It is sent to the
// resume endpoint verbatim. An empty (non-nil) decision is the neutral
// answer used when an interrupt is cancelled or unrecognized.
type Decision map[string]any

// EmptyDecision returns the neutral answer for cancelled or
// unrecognized interrupts.
func EmptyDecision() Decision {
	return Decision{}
}

// Parse decodes a raw interrupt payload into a typed Interrupt.
// Unknown or missing types yield Kind == TypeUnknown with Raw intact,
// so the caller can resolve them with an empty decision instead of
// stalling the turn.
func Parse(raw map[string]any) Interrupt {
	it := Interrupt{Kind: TypeUnknown, Raw: raw}
	if raw == nil {
		return it
	}

	kind, _ := raw["type"].(string)
	switch Type(kind) {
	case TypeCacheReview:
		var cr CacheReview
		if decodeInto(raw, &cr) {
			it.Kind = TypeCacheReview
			it.CacheReview = &cr
		}
	case TypeVisualizationReview:
		var vr VisualizationReview
		if decodeInto(raw, &vr) {
			it.Kind = TypeVisualizationReview
			it.VisualizationReview = &vr
		}
	}
	return it
}

// decodeInto round-trips a map through JSON into a typed struct.
func decodeInto(raw map[string]any, dst any) bool {
	b, err := json.Marshal(raw)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dst) == nil
}
