package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/validateai/ValidateAI/app/models"
	"github.com/validateai/ValidateAI/app/repository"
	"github.com/validateai/ValidateAI/internal/pkg/analysis"
	"github.com/validateai/ValidateAI/internal/pkg/search"
)

type fakeUserRepo struct {
	users map[string]*models.User

	resolveErr error
	commitErr  error

	calls *[]string
}

func newFakeUserRepo(calls *[]string) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), calls: calls}
}

func (f *fakeUserRepo) record(name string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, name)
	}
}

func (f *fakeUserRepo) GetOrCreateByAnonymousID(anonymousID string) (*models.User, error) {
	f.record("resolve")
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	if u, ok := f.users[anonymousID]; ok {
		return u, nil
	}
	u := &models.User{ID: uint(len(f.users) + 1), AnonymousID: anonymousID}
	f.users[anonymousID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByAnonymousID(anonymousID string) (*models.User, error) {
	if u, ok := f.users[anonymousID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) CommitValidation(userID uint, isPaid bool) error {
	f.record("commit")
	if f.commitErr != nil {
		return f.commitErr
	}
	for _, u := range f.users {
		if u.ID != userID {
			continue
		}
		if isPaid {
			if u.ValidationCredits > 0 {
				u.ValidationCredits--
			}
			u.LifetimeValidations++
		} else {
			u.ValidationCount++
		}
	}
	return nil
}

func (f *fakeUserRepo) ActivateSubscription(ref repository.AccountRef, subscriptionID string, expiresAt time.Time) error {
	return nil
}

func (f *fakeUserRepo) DeactivateSubscription(ref repository.AccountRef) error {
	return nil
}

type fakeValidationRepo struct {
	created   []*models.Validation
	createErr error

	calls *[]string
}

func (f *fakeValidationRepo) Create(v *models.Validation) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "persist")
	}
	if f.createErr != nil {
		return f.createErr
	}
	v.ID = uint(len(f.created) + 1)
	f.created = append(f.created, v)
	return nil
}

func (f *fakeValidationRepo) ListByUserID(userID uint, limit int) ([]models.Validation, error) {
	var out []models.Validation
	for _, v := range f.created {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeValidationRepo) CountByUserID(userID uint) (int64, error) {
	list, _ := f.ListByUserID(userID, 0)
	return int64(len(list)), nil
}

type spyAugmenter struct {
	calls   int
	results []search.Result
}

func (s *spyAugmenter) Augment(ctx context.Context, idea string) []search.Result {
	s.calls++
	if s.results != nil {
		return s.results
	}
	return []search.Result{{Title: "t", Link: "#", Snippet: "s", DisplayLink: "d"}}
}

type spyAnalyzer struct {
	calls  int
	result *analysis.Result
	err    error
}

func (s *spyAnalyzer) Analyze(ctx context.Context, idea string, results []search.Result) (*analysis.Result, error) {
	s.calls++
	if s.result != nil {
		return s.result, s.err
	}
	return &analysis.Result{OneLiner: "fine", ViabilityScore: "8/10"}, s.err
}

func TestValidateFreeQuotaThenDenied(t *testing.T) {
	users := newFakeUserRepo(nil)
	validations := &fakeValidationRepo{}
	augmenter := &spyAugmenter{}
	analyzer := &spyAnalyzer{}
	svc := NewService(users, validations, augmenter, analyzer)

	for i := 0; i < models.FreeValidationLimit; i++ {
		outcome, err := svc.Validate(context.Background(), "idea", "anon-1")
		require.NoError(t, err, "validation %d should pass", i+1)
		assert.False(t, outcome.Degraded)
		require.NotNil(t, outcome.User)
	}

	outcome, err := svc.Validate(context.Background(), "idea", "anon-1")
	assert.ErrorIs(t, err, ErrLimitReached)
	assert.Nil(t, outcome)

	// Denied requests cost nothing: no search, no AI call, no record.
	assert.Equal(t, models.FreeValidationLimit, augmenter.calls)
	assert.Equal(t, models.FreeValidationLimit, analyzer.calls)
	assert.Len(t, validations.created, models.FreeValidationLimit)
	assert.Equal(t, models.FreeValidationLimit, users.users["anon-1"].ValidationCount)
}

func TestValidatePaidUserBurnsCredits(t *testing.T) {
	users := newFakeUserRepo(nil)
	svc := NewService(users, &fakeValidationRepo{}, &spyAugmenter{}, &spyAnalyzer{})

	user, err := users.GetOrCreateByAnonymousID("anon-paid")
	require.NoError(t, err)
	user.IsPaid = true
	user.ValidationCredits = 2
	user.ValidationCount = 99 // free counter must not matter for paid users

	_, err = svc.Validate(context.Background(), "idea", "anon-paid")
	require.NoError(t, err)
	_, err = svc.Validate(context.Background(), "idea", "anon-paid")
	require.NoError(t, err)

	assert.Equal(t, 0, user.ValidationCredits)
	assert.Equal(t, 2, user.LifetimeValidations)

	_, err = svc.Validate(context.Background(), "idea", "anon-paid")
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestValidatePersistsBeforeCommitting(t *testing.T) {
	var calls []string
	users := newFakeUserRepo(&calls)
	validations := &fakeValidationRepo{calls: &calls}
	svc := NewService(users, validations, &spyAugmenter{}, &spyAnalyzer{})

	_, err := svc.Validate(context.Background(), "idea", "anon-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"resolve", "persist", "commit"}, calls)
}

func TestValidateRecordCarriesPayloads(t *testing.T) {
	users := newFakeUserRepo(nil)
	validations := &fakeValidationRepo{}
	svc := NewService(users, validations, &spyAugmenter{}, &spyAnalyzer{})

	_, err := svc.Validate(context.Background(), "my idea", "anon-1")
	require.NoError(t, err)

	require.Len(t, validations.created, 1)
	record := validations.created[0]
	assert.NotEmpty(t, record.UUID)
	assert.Equal(t, "my idea", record.IdeaDescription)
	assert.Contains(t, record.AnalysisJSON, "8/10")
	assert.Contains(t, record.SearchResultsJSON, `"title":"t"`)
	assert.False(t, record.Degraded)
}

func TestValidateDegradedAnalysisStillSucceeds(t *testing.T) {
	users := newFakeUserRepo(nil)
	validations := &fakeValidationRepo{}
	analyzer := &spyAnalyzer{
		result: analysis.ConfigurationRequiredResult(),
		err:    errors.New("gemini not configured"),
	}
	svc := NewService(users, validations, &spyAugmenter{}, analyzer)

	outcome, err := svc.Validate(context.Background(), "idea", "anon-1")
	require.NoError(t, err)
	assert.True(t, outcome.Degraded)
	require.Len(t, validations.created, 1)
	assert.True(t, validations.created[0].Degraded)
	// A degraded run still consumes quota.
	assert.Equal(t, 1, users.users["anon-1"].ValidationCount)
}

func TestValidateResolveFailureReturnsFallbackOutcome(t *testing.T) {
	users := newFakeUserRepo(nil)
	users.resolveErr = errors.New("db gone")
	augmenter := &spyAugmenter{}
	analyzer := &spyAnalyzer{}
	svc := NewService(users, &fakeValidationRepo{}, augmenter, analyzer)

	outcome, err := svc.Validate(context.Background(), "idea", "anon-1")
	assert.Error(t, err)
	require.NotNil(t, outcome)
	assert.True(t, outcome.Degraded)
	assert.NotNil(t, outcome.Analysis)
	assert.NotEmpty(t, outcome.SearchResults)
	assert.Equal(t, 0, augmenter.calls)
	assert.Equal(t, 0, analyzer.calls)
}

func TestValidateCommitFailureDoesNotFailRequest(t *testing.T) {
	users := newFakeUserRepo(nil)
	users.commitErr = errors.New("deadlock")
	validations := &fakeValidationRepo{}
	svc := NewService(users, validations, &spyAugmenter{}, &spyAnalyzer{})

	outcome, err := svc.Validate(context.Background(), "idea", "anon-1")
	require.NoError(t, err)
	assert.NotNil(t, outcome.Analysis)
	assert.Len(t, validations.created, 1)
}

func TestValidatePersistFailureSurfacesError(t *testing.T) {
	users := newFakeUserRepo(nil)
	validations := &fakeValidationRepo{createErr: errors.New("disk full")}
	svc := NewService(users, validations, &spyAugmenter{}, &spyAnalyzer{})

	outcome, err := svc.Validate(context.Background(), "idea", "anon-1")
	assert.Error(t, err)
	require.NotNil(t, outcome, "outcome still carried for the error response")
	// Quota is not consumed when the record never landed.
	assert.Equal(t, 0, users.users["anon-1"].ValidationCount)
}

func TestValidateStoreLessMode(t *testing.T) {
	augmenter := &spyAugmenter{}
	analyzer := &spyAnalyzer{}
	svc := NewService(nil, nil, augmenter, analyzer)

	for i := 0; i < 10; i++ {
		outcome, err := svc.Validate(context.Background(), "idea", "anon-1")
		require.NoError(t, err)
		assert.Nil(t, outcome.User)
		assert.NotNil(t, outcome.Analysis)
	}
	// No quota without a store.
	assert.Equal(t, 10, augmenter.calls)
	assert.Equal(t, 10, analyzer.calls)
}
