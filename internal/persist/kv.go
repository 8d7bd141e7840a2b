package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofrs/flock"
	"github.com/redis/go-redis/v9"
)

// MemoryKV keeps values in memory.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (s *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// lockTimeout bounds how long FileKV waits for another process.
const lockTimeout = 5 * time.Second

// FileKV stores all keys in one JSON object file. Writes go through a
// temp file and rename under an exclusive lock on path+".lock".
type FileKV struct {
	path string
	lock *flock.Flock
}

// NewFileKV creates a store backed by path. The directory is created if needed.
func NewFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileKV{path: path, lock: flock.New(path + ".lock")}, nil
}

// Path returns the data file path.
func (s *FileKV) Path() string { return s.path }

func (s *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.acquire(ctx, false); err != nil {
		return "", false, err
	}
	defer s.lock.Unlock()

	m, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (s *FileKV) Set(ctx context.Context, key, value string) error {
	if err := s.acquire(ctx, true); err != nil {
		return err
	}
	defer s.lock.Unlock()

	m, err := s.read()
	if err != nil {
		// an unreadable file is replaced rather than blocking every save
		m = map[string]string{}
	}
	m[key] = value

	b, err := sonic.ConfigStd.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileKV) acquire(ctx context.Context, exclusive bool) error {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = s.lock.TryLockContext(ctx, 20*time.Millisecond)
	} else {
		ok, err = s.lock.TryRLockContext(ctx, 20*time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	if !ok {
		return fmt.Errorf("lock %s: busy", s.lock.Path())
	}
	return nil
}

func (s *FileKV) read() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	m := map[string]string{}
	if err := sonic.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return m, nil
}

// RedisKV stores values as plain redis strings under a key prefix.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV wraps client. prefix is prepended to every key.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

// DialRedis parses a redis:// URL and returns a store using it.
func DialRedis(url, prefix string) (*RedisKV, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	return NewRedisKV(redis.NewClient(opts), prefix), nil
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// Close releases the redis connection pool.
func (s *RedisKV) Close() error {
	return s.client.Close()
}
