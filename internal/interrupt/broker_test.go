// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package interrupt

import "testing"

func TestBrokerResolve(t *testing.T) {
	b := NewBroker()

	ch, err := b.Await(Interrupt{Kind: TypeCacheReview})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := b.Pending(); !ok {
		t.Fatal("expected a pending interrupt")
	}

	b.Resolve(Decision{"action": "use_cached"})

	d := <-ch
	if d["action"] != "use_cached" {
		t.Errorf("decision = %v, want action use_cached", d)
	}
	if _, ok := b.Pending(); ok {
		t.Error("slot not cleared after resolve")
	}
}

func TestBrokerSecondAwaitFails(t *testing.T) {
	b := NewBroker()

	if _, err := b.Await(Interrupt{Kind: TypeCacheReview}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Await(Interrupt{Kind: TypeVisualizationReview}); err == nil {
		t.Fatal("expected error for second await while one is pending")
	}
}

func TestBrokerCancelPendingDeliversEmptyDecision(t *testing.T) {
	b := NewBroker()

	ch, err := b.Await(Interrupt{Kind: TypeVisualizationReview})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.CancelPending()

	d := <-ch
	if d == nil {
		t.Fatal("cancel delivered nil decision, want empty")
	}
	if len(d) != 0 {
		t.Errorf("decision = %v, want empty", d)
	}
	if _, ok := b.Pending(); ok {
		t.Error("slot not cleared after cancel")
	}
}

func TestBrokerCancelWithoutPendingIsNoop(t *testing.T) {
	b := NewBroker()
	b.CancelPending()
	b.Resolve(Decision{"ignored": true})
	if _, ok := b.Pending(); ok {
		t.Error("broker should stay empty")
	}
}

func TestBrokerNilDecisionBecomesEmpty(t *testing.T) {
	b := NewBroker()
	ch, _ := b.Await(Interrupt{Kind: TypeCacheReview})
	b.Resolve(nil)
	d := <-ch
	if d == nil || len(d) != 0 {
		t.Errorf("decision = %v, want empty non-nil", d)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		wantKind Type
	}{
		{
			name: "cache review",
			raw: map[string]any{
				"type":            "cache_review",
				"query":           "monthly sales",
				"cached_response": "...",
				"similarity":      0.93,
			},
			wantKind: TypeCacheReview,
		},
		{
			name: "visualization review",
			raw: map[string]any{
				"type":      "visualization_review",
				"code":      "plot(df)",
				"row_count": float64(12),
				"columns":   []any{"month", "total"},
			},
			wantKind: TypeVisualizationReview,
		},
		{
			name:     "unknown type",
			raw:      map[string]any{"type": "schema_review"},
			wantKind: TypeUnknown,
		},
		{
			name:     "missing type",
			raw:      map[string]any{"query": "x"},
			wantKind: TypeUnknown,
		},
		{
			name:     "nil payload",
			raw:      nil,
			wantKind: TypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Parse(tt.raw)
			if it.Kind != tt.wantKind {
				t.Fatalf("kind = %q, want %q", it.Kind, tt.wantKind)
			}
			switch tt.wantKind {
			case TypeCacheReview:
				if it.CacheReview == nil || it.CacheReview.Query != "monthly sales" {
					t.Errorf("cache review not decoded: %+v", it.CacheReview)
				}
				if it.CacheReview.Similarity != 0.93 {
					t.Errorf("similarity = %v, want 0.93", it.CacheReview.Similarity)
				}
			case TypeVisualizationReview:
				if it.VisualizationReview == nil || it.VisualizationReview.RowCount != 12 {
					t.Errorf("visualization review not decoded: %+v", it.VisualizationReview)
				}
				if len(it.VisualizationReview.Columns) != 2 {
					t.Errorf("columns = %v, want 2 entries", it.VisualizationReview.Columns)
				}
			}
		})
	}
}
