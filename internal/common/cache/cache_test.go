package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourist-guide/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute, time.Minute)

	_, ok := c.Get(ctx, "geo:paris")
	assert.False(t, ok)

	value := []byte(`{"lat":48.85,"lon":2.35}`)
	c.Set(ctx, "geo:paris", value, time.Minute)
	value[0] = 'X'

	got, ok := c.Get(ctx, "geo:paris")
	require.True(t, ok)
	assert.Equal(t, `{"lat":48.85,"lon":2.35}`, string(got))
	assert.Equal(t, 1, c.Len())
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute, time.Minute)

	c.Set(ctx, "short", []byte("x"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
}

func TestRedis_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	c := NewRedis(client, "tg:", logger.NewTestLogger(t))

	c.Set(ctx, "geo:rome", []byte("payload"), time.Hour)
	assert.True(t, mr.Exists("tg:geo:rome"))
	assert.Equal(t, time.Hour, mr.TTL("tg:geo:rome"))

	got, ok := c.Get(ctx, "geo:rome")
	require.True(t, ok)
	assert.Equal(t, "payload", string(got))

	mr.FastForward(2 * time.Hour)
	_, ok = c.Get(ctx, "geo:rome")
	assert.False(t, ok)
}

func TestRedis_BackendErrorsAreMisses(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	c := NewRedis(db, "", logger.NewNoOpLogger())

	mock.ExpectGet("geo:oslo").SetErr(errors.New("connection reset"))
	_, ok := c.Get(ctx, "geo:oslo")
	assert.False(t, ok)

	mock.ExpectSet("geo:oslo", []byte("v"), time.Minute).SetErr(errors.New("read only replica"))
	assert.NotPanics(t, func() { c.Set(ctx, "geo:oslo", []byte("v"), time.Minute) })

	mock.ExpectGet("geo:bern").RedisNil()
	_, ok = c.Get(ctx, "geo:bern")
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute, time.Minute)

	var out coords
	assert.False(t, GetJSON(ctx, c, "geocoding", "geo:lima", &out))

	SetJSON(ctx, c, "geo:lima", coords{Lat: -12.04, Lon: -77.04}, time.Minute)
	require.True(t, GetJSON(ctx, c, "geocoding", "geo:lima", &out))
	assert.Equal(t, coords{Lat: -12.04, Lon: -77.04}, out)

	c.Set(ctx, "geo:broken", []byte("{"), time.Minute)
	assert.False(t, GetJSON(ctx, c, "geocoding", "geo:broken", &out))
}

func TestNilAndNopCaches(t *testing.T) {
	ctx := context.Background()
	var out coords

	assert.False(t, GetJSON(ctx, nil, "geocoding", "k", &out))
	assert.NotPanics(t, func() { SetJSON(ctx, nil, "k", out, time.Minute) })

	SetJSON(ctx, Nop{}, "k", out, time.Minute)
	assert.False(t, GetJSON(ctx, Nop{}, "geocoding", "k", &out))
}
