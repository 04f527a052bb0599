package vectorstore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	return f.vec, f.err
}

func TestEmbedChecksDimensions(t *testing.T) {
	tests := []struct {
		name    string
		emb     *fakeEmbedder
		dims    int
		wantErr string
	}{
		{name: "matching", emb: &fakeEmbedder{vec: []float32{0.1, 0.2, 0.3}}, dims: 3},
		{name: "unchecked", emb: &fakeEmbedder{vec: []float32{0.1}}, dims: 0},
		{name: "mismatch", emb: &fakeEmbedder{vec: []float32{0.1, 0.2}}, dims: 3, wantErr: "2 dimensions"},
		{name: "embedder down", emb: &fakeEmbedder{err: errors.New("down")}, dims: 3, wantErr: "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, tt.emb, tt.dims)
			vec, err := s.embed(context.Background(), "Rome, Italy")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("embed() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("embed() error = %v", err)
			}
			if got := len(vec.Slice()); got != len(tt.emb.vec) {
				t.Errorf("vector length = %d, want %d", got, len(tt.emb.vec))
			}
		})
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	s := New(nil, &fakeEmbedder{vec: []float32{1}}, 1)
	if _, err := s.Search(context.Background(), "   ", 3); err == nil {
		t.Fatal("expected error for blank query")
	}
}
