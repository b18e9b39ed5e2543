package validation

import (
	"context"
	"testing"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRequest struct {
	Title     string `json:"title" validate:"required,max=5"`
	Thumbnail string `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Count     int    `json:"count" validate:"gte=1,lte=3"`
	Kind      string `json:"kind" validate:"oneof=a b"`
}

func TestStructValidator(t *testing.T) {
	tests := []struct {
		name     string
		input    taggedRequest
		expected map[string][]string
	}{
		{
			name:     "valid",
			input:    taggedRequest{Title: "Go", Count: 2, Kind: "a"},
			expected: nil,
		},
		{
			name:  "required and range",
			input: taggedRequest{Count: 0, Kind: "a"},
			expected: map[string][]string{
				"title": {"must not be empty"},
				"count": {"must be greater than or equal to 1"},
			},
		},
		{
			name:  "length url and oneof",
			input: taggedRequest{Title: "toolong", Thumbnail: "nope", Count: 4, Kind: "c"},
			expected: map[string][]string{
				"title":     {"must be at most 5 characters"},
				"thumbnail": {"must be an absolute URL"},
				"count":     {"must be less than or equal to 3"},
				"kind":      {"must be one of: a b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures, err := NewStruct[taggedRequest]().Validate(context.Background(), tt.input)
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Empty(t, failures)
				return
			}
			assert.Equal(t, tt.expected, domain.NewFailureSet(failures...).Map())
		})
	}
}

func TestNestedStructValidator(t *testing.T) {
	content := domain.NewQuizContent(domain.QuizQuestion{Prompt: "", Choices: []string{"a"}})

	failures, err := NewNestedStruct[domain.LessonContent]("content").Validate(context.Background(), content)
	require.NoError(t, err)

	set := domain.NewFailureSet(failures...)
	assert.Equal(t, []string{"must not be empty"}, set.Messages("content.questions[0].prompt"))
	assert.Equal(t, []string{"must have at least 2 items"}, set.Messages("content.questions[0].choices"))
}

func TestStructFailures_NonStruct(t *testing.T) {
	failures, err := StructFailures("", 42)
	require.NoError(t, err)
	assert.Empty(t, failures)

	var nilContent *domain.VideoContent
	failures, err = StructFailures("", nilContent)
	require.NoError(t, err)
	assert.Empty(t, failures)
}
