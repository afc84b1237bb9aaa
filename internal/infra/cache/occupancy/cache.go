// Package occupancy кэширует занятые интервалы мастера на календарный день
package occupancy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// DefaultTTL время жизни записи, если в конфиге не задано
const DefaultTTL = 60 * time.Second

// generationTTL время жизни счётчика поколений дня. Должно быть намного
// больше окна между чтением поколения и записью в кэш.
const generationTTL = 24 * time.Hour

var (
	// ErrCacheMiss возвращается, когда записи в кэше нет
	ErrCacheMiss = errors.New("occupancy.cache: miss")

	// ErrCache возвращается при ошибке обращения к Redis
	ErrCache = errors.New("occupancy.cache: redis error")

	// ErrStaleFill возвращается из Set, если после чтения поколения день был инвалидирован
	ErrStaleFill = errors.New("occupancy.cache: generation changed, fill skipped")
)

// Cache интерфейс кэша занятости, его используют usecase'ы.
//
// Заполнение после промаха идёт в три шага: Generation, чтение из БД,
// Set с прочитанным поколением. Invalidate увеличивает поколение, поэтому
// данные, прочитанные из БД до коммита бронирования, в кэш не попадут.
type Cache interface {
	Get(ctx context.Context, professionalID int64, day time.Time) ([]domain.Interval, error)
	Generation(ctx context.Context, professionalID int64, day time.Time) (int64, error)
	Set(ctx context.Context, professionalID int64, day time.Time, generation int64, intervals []domain.Interval) error
	Invalidate(ctx context.Context, professionalID int64, day time.Time) error
}

// RedisCache кэш занятости в Redis, значения в JSON
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache создает кэш поверх клиента Redis
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Key возвращает ключ occupancy:{professionalID}:{YYYY-MM-DD}.
// day должен быть уже приведён к зоне календаря.
func Key(professionalID int64, day time.Time) string {
	return fmt.Sprintf("occupancy:%d:%s", professionalID, day.Format(domain.DateFormat))
}

// GenerationKey возвращает ключ счётчика поколений occupancy:gen:{professionalID}:{YYYY-MM-DD}
func GenerationKey(professionalID int64, day time.Time) string {
	return fmt.Sprintf("occupancy:gen:%d:%s", professionalID, day.Format(domain.DateFormat))
}

// Get возвращает интервалы из кэша или ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, professionalID int64, day time.Time) ([]domain.Interval, error) {
	raw, err := c.client.Get(ctx, Key(professionalID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %w", ErrCache, err)
	}

	var intervals []domain.Interval
	if err := json.Unmarshal(raw, &intervals); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrCache, err)
	}
	return intervals, nil
}

// Generation возвращает текущее поколение дня, 0 если дня ещё не инвалидировали
func (c *RedisCache) Generation(ctx context.Context, professionalID int64, day time.Time) (int64, error) {
	gen, err := readGeneration(ctx, c.client, GenerationKey(professionalID, day))
	if err != nil {
		return 0, fmt.Errorf("%w: generation: %w", ErrCache, err)
	}
	return gen, nil
}

// Set сохраняет интервалы дня с TTL, только если поколение дня всё ещё равно generation.
// Иначе возвращает ErrStaleFill и ничего не пишет.
func (c *RedisCache) Set(ctx context.Context, professionalID int64, day time.Time, generation int64, intervals []domain.Interval) error {
	if intervals == nil {
		intervals = []domain.Interval{}
	}
	raw, err := json.Marshal(intervals)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrCache, err)
	}

	key, genKey := Key(professionalID, day), GenerationKey(professionalID, day)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return ErrStaleFill
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleFill), errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%w: professional_id=%d, day=%s", ErrStaleFill, professionalID, day.Format(domain.DateFormat))
	default:
		return fmt.Errorf("%w: set: %w", ErrCache, err)
	}
}

// Invalidate увеличивает поколение дня и удаляет запись одной транзакцией
func (c *RedisCache) Invalidate(ctx context.Context, professionalID int64, day time.Time) error {
	key, genKey := Key(professionalID, day), GenerationKey(professionalID, day)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalidate: %w", ErrCache, err)
	}
	return nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter, genKey string) (int64, error) {
	gen, err := cmd.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Noop кэш, который ничего не хранит. Используется, когда Redis выключен.
type Noop struct{}

func (Noop) Get(context.Context, int64, time.Time) ([]domain.Interval, error) {
	return nil, ErrCacheMiss
}

func (Noop) Generation(context.Context, int64, time.Time) (int64, error) { return 0, nil }

func (Noop) Set(context.Context, int64, time.Time, int64, []domain.Interval) error { return nil }

func (Noop) Invalidate(context.Context, int64, time.Time) error { return nil }
