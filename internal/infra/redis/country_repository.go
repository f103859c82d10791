package redis

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"country-quiz-game/internal/domain"
)

const (
	// countriesKey holds the JSON country list with a TTL.
	countriesKey = "countries:all"
	// staleCountriesKey holds the last good list without a TTL, used as the
	// fallback when a refresh fails.
	staleCountriesKey = "countries:stale"
)

// CountrySource fetches the reference dataset from a backing provider.
type CountrySource interface {
	LoadCountries(ctx context.Context) ([]domain.Country, error)
}

// CountryRepository caches the country list in Redis and falls back to a
// source on cache miss, so the cache survives process restarts and is shared
// across instances.
type CountryRepository struct {
	client *redis.Client
	source CountrySource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCountryRepository(client *redis.Client, source CountrySource, ttl time.Duration) *CountryRepository {
	return &CountryRepository{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CountryRepository) GetCountries(ctx context.Context) ([]domain.Country, error) {
	if countries, ok := r.cached(ctx, countriesKey); ok {
		return countries, nil
	}

	result, err, _ := r.sf.Do(countriesKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if countries, ok := r.cached(ctx, countriesKey); ok {
			return countries, nil
		}

		countries, err := r.source.LoadCountries(ctx)
		if err != nil {
			if stale, ok := r.cached(ctx, staleCountriesKey); ok {
				log.Printf("refresh countries: %v (serving stale list)", err)
				return stale, nil
			}
			return nil, err
		}

		data, err := json.Marshal(countries)
		if err != nil {
			return nil, err
		}
		pipe := r.client.Pipeline()
		pipe.Set(ctx, countriesKey, data, r.ttlWithJitter())
		pipe.Set(ctx, staleCountriesKey, data, 0)
		_, _ = pipe.Exec(ctx)

		return countries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Country), nil
}

func (r *CountryRepository) cached(ctx context.Context, key string) ([]domain.Country, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var countries []domain.Country
	if err := json.Unmarshal(raw, &countries); err != nil {
		log.Printf("decode cached countries at %s: %v", key, err)
		return nil, false
	}
	return countries, true
}

func (r *CountryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
