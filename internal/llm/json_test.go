package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain JSON passes through",
			raw:  `{"name": "Backend"}`,
			want: `{"name": "Backend"}`,
		},
		{
			name: "json fence stripped",
			raw:  "```json\n{\"name\": \"Backend\"}\n```",
			want: `{"name": "Backend"}`,
		},
		{
			name: "bare fence stripped",
			raw:  "```\n{\"name\": \"Backend\"}\n```",
			want: `{"name": "Backend"}`,
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  \n {\"name\": \"Backend\"} \n ",
			want: `{"name": "Backend"}`,
		},
		{
			name: "unterminated fence",
			raw:  "```json\n{\"name\": \"Backend\"}",
			want: `{"name": "Backend"}`,
		},
		{
			name: "stray backticks trimmed",
			raw:  "`{\"name\": \"Backend\"}`",
			want: `{"name": "Backend"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.raw))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type target struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	tests := []struct {
		name    string
		raw     string
		want    target
		wantErr bool
	}{
		{
			name: "well-formed JSON",
			raw:  `{"name": "Backend", "count": 3}`,
			want: target{Name: "Backend", Count: 3},
		},
		{
			name: "fenced JSON",
			raw:  "```json\n{\"name\": \"Backend\", \"count\": 3}\n```",
			want: target{Name: "Backend", Count: 3},
		},
		{
			name: "trailing comma repaired",
			raw:  `{"name": "Backend", "count": 3,}`,
			want: target{Name: "Backend", Count: 3},
		},
		{
			name: "single quotes repaired",
			raw:  `{'name': 'Backend', 'count': 3}`,
			want: target{Name: "Backend", Count: 3},
		},
		{
			name: "truncated object repaired",
			raw:  `{"name": "Backend", "count": 3`,
			want: target{Name: "Backend", Count: 3},
		},
		{
			name:    "unusable text",
			raw:     `the model declined to answer`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got target
			err := decodeJSON(tt.raw, &got)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
