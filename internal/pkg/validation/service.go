package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/validateai/ValidateAI/app/models"
	"github.com/validateai/ValidateAI/app/repository"
	"github.com/validateai/ValidateAI/internal/pkg/analysis"
	"github.com/validateai/ValidateAI/internal/pkg/entitlements"
	"github.com/validateai/ValidateAI/internal/pkg/search"
)

// ErrLimitReached is the policy outcome for an exhausted quota. It is not
// a failure: the caller maps it to a distinct "upgrade to continue"
// response and no external call has been made.
var ErrLimitReached = errors.New("validation limit reached")

// Augmenter provides search context for an idea. Implementations never
// fail; degraded placeholder results stand in for errors.
type Augmenter interface {
	Augment(ctx context.Context, idea string) []search.Result
}

// Analyzer produces a structured evaluation. The result is always fully
// shaped; the error is a side channel marking degraded output.
type Analyzer interface {
	Analyze(ctx context.Context, idea string, results []search.Result) (*analysis.Result, error)
}

// Outcome is what a completed validation run hands back to the transport
// layer.
type Outcome struct {
	Analysis      *analysis.Result
	SearchResults []search.Result
	Degraded      bool
	User          *models.User // nil in store-less mode
}

// Service drives the validation pipeline: resolve identity, check
// entitlement, augment, analyze, persist, commit.
type Service struct {
	users       repository.UserRepository
	validations repository.ValidationRepository
	augmenter   Augmenter
	analyzer    Analyzer
}

// NewService builds the orchestrator. The repositories may be nil when no
// database is configured; the pipeline then skips identity, quota and
// persistence and still produces an analysis.
func NewService(users repository.UserRepository, validations repository.ValidationRepository, augmenter Augmenter, analyzer Analyzer) *Service {
	return &Service{
		users:       users,
		validations: validations,
		augmenter:   augmenter,
		analyzer:    analyzer,
	}
}

// Validate runs one idea through the full pipeline.
//
// The entitlement check runs before any external call so denied requests
// cost nothing. The validation record is deliberately persisted before the
// entitlement counters are touched: a crash between the two leaves a
// recorded validation without a consumed credit, which favors the user.
// That ordering is documented behavior, do not swap it.
func (s *Service) Validate(ctx context.Context, idea, anonymousID string) (*Outcome, error) {
	var user *models.User

	if s.users != nil {
		resolved, err := s.users.GetOrCreateByAnonymousID(anonymousID)
		if err != nil {
			return fallbackOutcome(), fmt.Errorf("resolve identity: %w", err)
		}
		user = resolved

		if !entitlements.CanValidate(user) {
			return nil, ErrLimitReached
		}
	} else {
		log.Println("No database configured, skipping entitlement checks")
	}

	searchResults := s.augmenter.Augment(ctx, idea)

	result, analysisErr := s.analyzer.Analyze(ctx, idea, searchResults)
	if analysisErr != nil {
		log.Printf("Analysis degraded: %v", analysisErr)
	}

	outcome := &Outcome{
		Analysis:      result,
		SearchResults: searchResults,
		Degraded:      analysisErr != nil,
		User:          user,
	}

	if user != nil {
		record, err := buildRecord(user.ID, idea, outcome)
		if err != nil {
			return outcome, fmt.Errorf("encode validation record: %w", err)
		}
		if err := s.validations.Create(record); err != nil {
			return outcome, fmt.Errorf("persist validation: %w", err)
		}

		if err := s.users.CommitValidation(user.ID, user.IsPaid); err != nil {
			// The record is already written; failing the request now would
			// charge the user nothing and show them an error for a
			// validation that exists. Log and let it through.
			log.Printf("Error committing validation for user %d: %v", user.ID, err)
		}
	}

	return outcome, nil
}

func buildRecord(userID uint, idea string, outcome *Outcome) (*models.Validation, error) {
	analysisJSON, err := json.Marshal(outcome.Analysis)
	if err != nil {
		return nil, err
	}
	searchJSON, err := json.Marshal(outcome.SearchResults)
	if err != nil {
		return nil, err
	}
	return &models.Validation{
		UUID:              uuid.NewString(),
		UserID:            userID,
		IdeaDescription:   idea,
		AnalysisJSON:      string(analysisJSON),
		SearchResultsJSON: string(searchJSON),
		Degraded:          outcome.Degraded,
	}, nil
}

func fallbackOutcome() *Outcome {
	return &Outcome{
		Analysis:      analysis.FallbackResult(),
		SearchResults: search.FallbackResults(),
		Degraded:      true,
	}
}
