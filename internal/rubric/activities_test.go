package rubric

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/internal/llm"
	"github.com/hireloop/panelist/pkg/activity"
	"github.com/hireloop/panelist/pkg/events"
)

// mockClient implements llm.Client with configurable behavior per method.
type mockClient struct {
	generateRubric func(ctx context.Context, prompt string) (*domain.Rubric, error)
}

func (m *mockClient) GenerateRubric(ctx context.Context, prompt string) (*domain.Rubric, error) {
	return m.generateRubric(ctx, prompt)
}

func (m *mockClient) ExtractWorkingMemory(context.Context, string) (*domain.WorkingMemory, error) {
	return nil, errors.New("unexpected ExtractWorkingMemory call")
}

func (m *mockClient) GenerateReview(context.Context, string) (*domain.AgentReview, error) {
	return nil, errors.New("unexpected GenerateReview call")
}

func newTestActivities(client llm.Client) *Activities {
	return NewActivities(activity.NewBaseActivities(events.NewNoOpEventSink()), client)
}

func validInput() domain.GenerateRubricInput {
	return domain.GenerateRubricInput{
		JobDescription: "Senior Backend Engineer building distributed schedulers in Go.",
		Resume:         "Eight years of backend work, four of them on consensus systems.",
		CompanyContext: "Infrastructure team of twelve, strong on-call culture.",
		CategoryCount:  5,
	}
}

func TestGenerateRubricRejectsBlankJobDescription(t *testing.T) {
	activities := newTestActivities(&mockClient{
		generateRubric: func(context.Context, string) (*domain.Rubric, error) {
			t.Fatal("gateway must not be called for invalid input")
			return nil, nil
		},
	})

	input := validInput()
	input.JobDescription = "   \n\t  "

	_, err := activities.GenerateRubric(context.Background(), input)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr, "error should be ApplicationError")
	assert.Equal(t, domain.ErrTypeInput, appErr.Type())
	assert.True(t, appErr.NonRetryable(), "input errors must not be retried")
}

func TestGenerateRubricRejectsBlankResume(t *testing.T) {
	activities := newTestActivities(&mockClient{
		generateRubric: func(context.Context, string) (*domain.Rubric, error) {
			t.Fatal("gateway must not be called for invalid input")
			return nil, nil
		},
	})

	input := validInput()
	input.Resume = ""

	_, err := activities.GenerateRubric(context.Background(), input)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrTypeInput, appErr.Type())
	assert.True(t, appErr.NonRetryable())
}

func TestGenerateRubricClassifiesGatewayFailures(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		wantType string
	}{
		{
			name:     "transport failure is a generation error",
			cause:    fmt.Errorf("%w: connection reset", llm.ErrGeneration),
			wantType: domain.ErrTypeGeneration,
		},
		{
			name:     "non-conforming output is a schema error",
			cause:    fmt.Errorf("%w: weights sum to 0.9", llm.ErrSchemaValidation),
			wantType: domain.ErrTypeSchemaValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activities := newTestActivities(&mockClient{
				generateRubric: func(context.Context, string) (*domain.Rubric, error) {
					return nil, tt.cause
				},
			})

			_, err := activities.GenerateRubric(context.Background(), validInput())

			var appErr *temporal.ApplicationError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantType, appErr.Type())
			assert.False(t, appErr.NonRetryable(), "gateway failures must stay retryable")
		})
	}
}

func TestGenerateRubricReturnsRubricWithWarnings(t *testing.T) {
	rubric := testRubric(t)
	rubric.Categories[0].Name = "Skills" // triggers the specificity lint

	activities := newTestActivities(&mockClient{
		generateRubric: func(_ context.Context, prompt string) (*domain.Rubric, error) {
			assert.Contains(t, prompt, "exactly 5 categories")
			return rubric, nil
		},
	})

	output, err := activities.GenerateRubric(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, rubric.RoleTitle, output.Rubric.RoleTitle)
	assert.Len(t, output.Rubric.Categories, 5)
	require.NotEmpty(t, output.Warnings, "generic category name should produce a warning")
	assert.True(t, findingContaining(output.Warnings, "too generic"))
}

func TestGenerateRubricCleanOutputHasNoWarnings(t *testing.T) {
	activities := newTestActivities(&mockClient{
		generateRubric: func(context.Context, string) (*domain.Rubric, error) {
			return testRubric(t), nil
		},
	})

	output, err := activities.GenerateRubric(context.Background(), validInput())

	require.NoError(t, err)
	assert.Empty(t, output.Warnings)
}
