package memory

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"country-quiz-game/internal/domain"
)

// CountrySource fetches the reference dataset from a backing provider (HTTP
// directory, fixture, etc).
type CountrySource interface {
	LoadCountries(ctx context.Context) ([]domain.Country, error)
}

// CountryRepository memoizes the country list with a TTL so quiz starts do
// not refetch the dataset. A failed refresh falls back to the last good list;
// with nothing cached the error propagates to the caller.
type CountryRepository struct {
	source CountrySource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	countries []domain.Country
	expiresAt time.Time
}

func NewCountryRepository(source CountrySource, ttl time.Duration) *CountryRepository {
	return &CountryRepository{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CountryRepository) GetCountries(ctx context.Context) ([]domain.Country, error) {
	now := r.clock()

	r.mu.RLock()
	if r.countries != nil && r.expiresAt.After(now) {
		countries := r.countries
		r.mu.RUnlock()
		return countries, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("countries", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.countries != nil && r.expiresAt.After(now) {
			countries := r.countries
			r.mu.RUnlock()
			return countries, nil
		}
		stale := r.countries
		r.mu.RUnlock()

		countries, err := r.source.LoadCountries(ctx)
		if err != nil {
			if stale != nil {
				log.Printf("refresh countries: %v (serving stale list)", err)
				return stale, nil
			}
			return nil, err
		}

		r.mu.Lock()
		r.countries = countries
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return countries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Country), nil
}

func (r *CountryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticCountrySource serves a fixed list (useful for tests/demos).
type StaticCountrySource struct {
	countries []domain.Country
}

func NewStaticCountrySource(countries []domain.Country) *StaticCountrySource {
	return &StaticCountrySource{countries: countries}
}

func (s *StaticCountrySource) LoadCountries(_ context.Context) ([]domain.Country, error) {
	return s.countries, nil
}
