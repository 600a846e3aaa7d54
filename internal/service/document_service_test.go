package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "drops short words",
			query: "how do I cook basmati rice",
			want:  []string{"cook", "basmati", "rice"},
		},
		{
			name:  "lowercases and trims punctuation",
			query: "What is Photosynthesis?",
			want:  []string{"what", "photosynthesis"},
		},
		{
			name:  "caps at five keywords",
			query: "alpha bravo charlie delta echo foxtrot golf",
			want:  []string{"alpha", "bravo", "charlie", "delta", "echo"},
		},
		{
			name:  "empty query",
			query: "",
			want:  nil,
		},
		{
			name:  "only short words",
			query: "is it ok",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractKeywords(tt.query))
		})
	}
}
