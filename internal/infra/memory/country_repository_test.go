package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"country-quiz-game/internal/domain"
)

func TestCountryRepositoryCaches(t *testing.T) {
	source := &countingSource{CountrySource: NewStaticCountrySource(sampleCountries())}
	repo := NewCountryRepository(source, time.Minute)

	if _, err := repo.GetCountries(context.Background()); err != nil {
		t.Fatalf("get countries: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected source called once, got %d", source.calls)
	}

	if _, err := repo.GetCountries(context.Background()); err != nil {
		t.Fatalf("get countries 2: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls %d", source.calls)
	}
}

func TestCountryRepositoryRefreshesAfterTTL(t *testing.T) {
	source := &countingSource{CountrySource: NewStaticCountrySource(sampleCountries())}
	repo := NewCountryRepository(source, time.Minute)

	now := time.Date(2025, 3, 21, 10, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetCountries(context.Background())
	// Jitter extends the TTL by at most 10%, so two minutes is past expiry.
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetCountries(context.Background())

	if source.calls != 2 {
		t.Fatalf("expected refresh after expiry, source calls %d", source.calls)
	}
}

func TestCountryRepositoryServesStaleOnFailure(t *testing.T) {
	source := &flakySource{countries: sampleCountries()}
	repo := NewCountryRepository(source, time.Minute)

	now := time.Date(2025, 3, 21, 10, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	first, err := repo.GetCountries(context.Background())
	if err != nil {
		t.Fatalf("get countries: %v", err)
	}

	source.fail = true
	now = now.Add(2 * time.Minute)

	stale, err := repo.GetCountries(context.Background())
	if err != nil {
		t.Fatalf("expected stale list, got error: %v", err)
	}
	if len(stale) != len(first) {
		t.Fatalf("expected %d stale countries, got %d", len(first), len(stale))
	}
}

func TestCountryRepositoryErrorsWithNothingCached(t *testing.T) {
	source := &flakySource{fail: true}
	repo := NewCountryRepository(source, time.Minute)

	if _, err := repo.GetCountries(context.Background()); err == nil {
		t.Fatalf("expected error with no cache to fall back to")
	}
}

type countingSource struct {
	CountrySource
	calls int
}

func (s *countingSource) LoadCountries(ctx context.Context) ([]domain.Country, error) {
	s.calls++
	return s.CountrySource.LoadCountries(ctx)
}

type flakySource struct {
	countries []domain.Country
	fail      bool
}

func (s *flakySource) LoadCountries(context.Context) ([]domain.Country, error) {
	if s.fail {
		return nil, errors.New("upstream down")
	}
	return s.countries, nil
}

func sampleCountries() []domain.Country {
	return []domain.Country{
		{
			Name:       domain.CountryName{Common: "France"},
			Capital:    []string{"Paris"},
			Population: 67_000_000,
			Flags:      domain.CountryFlags{PNG: "https://flagcdn.com/w320/fr.png"},
			CCA3:       "FRA",
		},
		{
			Name:       domain.CountryName{Common: "Japan"},
			Capital:    []string{"Tokyo"},
			Population: 125_000_000,
			Flags:      domain.CountryFlags{PNG: "https://flagcdn.com/w320/jp.png"},
			CCA3:       "JPN",
		},
	}
}
