package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/hvztracker/internal/dependencies/clock"
	"github.com/mcoot/hvztracker/internal/dependencies/random"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Errors
var (
	ErrInvalidAPIKey   = errors.New("invalid api key")
	ErrMalformedAPIKey = errors.New("api key must have the form prefix.secret")
)

const (
	keyAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	prefixLength = 8
	secretLength = 32
)

// IssuedKey is returned once when a key is created. Key is never stored.
type IssuedKey struct {
	Key    string
	Prefix string
	Name   string
}

// Config holds configuration for the auth service
type Config struct {
	// Cost is the bcrypt cost for new keys
	Cost int
	// CacheTTL is how long a successfully verified key skips bcrypt
	CacheTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Cost:     bcrypt.DefaultCost,
		CacheTTL: 5 * time.Minute,
	}
}

type verified struct {
	name      string
	expiresAt time.Time
}

// Service issues and validates API keys for the companion bot and operators
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	mu       sync.RWMutex
	verified map[[sha256.Size]byte]verified
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	def := DefaultConfig()
	if cfg.Cost == 0 {
		cfg.Cost = def.Cost
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		random:   random,
		logger:   logger.With(slog.String("component", "auth")),
		cfg:      cfg,
		verified: make(map[[sha256.Size]byte]verified),
	}
}

// CreateKey issues a new key. The plaintext is only available in the result.
func (s *Service) CreateKey(ctx context.Context, name string) (*IssuedKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrEmptyName
	}
	prefix := s.random.String(prefixLength, keyAlphabet)
	secret := s.random.String(secretLength, keyAlphabet)
	if err := s.store(ctx, name, prefix, secret); err != nil {
		return nil, err
	}
	return &IssuedKey{Key: prefix + "." + secret, Prefix: prefix, Name: name}, nil
}

// Bootstrap registers an operator-supplied key, replacing any key with the
// same prefix
func (s *Service) Bootstrap(ctx context.Context, key string) error {
	prefix, secret, err := splitKey(key)
	if err != nil {
		return err
	}
	s.invalidate()
	return s.store(ctx, "bootstrap", prefix, secret)
}

// ValidateKey checks key and returns the name it was issued under
func (s *Service) ValidateKey(ctx context.Context, key string) (string, error) {
	prefix, secret, err := splitKey(key)
	if err != nil {
		return "", ErrInvalidAPIKey
	}

	digest := sha256.Sum256([]byte(key))
	now := s.clock.Now()
	s.mu.RLock()
	v, ok := s.verified[digest]
	s.mu.RUnlock()
	if ok && now.Before(v.expiresAt) {
		return v.name, nil
	}

	stored, err := s.storage.GetAPIKey(ctx, prefix)
	if err != nil {
		if errors.Is(err, model.ErrAPIKeyNotFound) {
			return "", ErrInvalidAPIKey
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.SecretHash), []byte(secret)); err != nil {
		return "", ErrInvalidAPIKey
	}

	s.mu.Lock()
	s.verified[digest] = verified{name: stored.Name, expiresAt: now.Add(s.cfg.CacheTTL)}
	s.mu.Unlock()
	return stored.Name, nil
}

// CleanVerified drops expired cache entries (call periodically)
func (s *Service) CleanVerified() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for digest, v := range s.verified {
		if !now.Before(v.expiresAt) {
			delete(s.verified, digest)
		}
	}
}

func (s *Service) store(ctx context.Context, name, prefix, secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cfg.Cost)
	if err != nil {
		return err
	}
	key := &model.APIKey{
		Prefix:     prefix,
		Name:       name,
		SecretHash: string(hash),
		CreatedAt:  s.clock.Now(),
	}
	if err := s.storage.SaveAPIKey(ctx, key); err != nil {
		return err
	}
	s.logger.Info("api key stored",
		slog.String("prefix", prefix),
		slog.String("name", name),
	)
	return nil
}

// invalidate forgets every cached verification. Digests do not record their
// prefix, so replacing one key clears the whole cache.
func (s *Service) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.verified)
}

func splitKey(key string) (prefix, secret string, err error) {
	prefix, secret, ok := strings.Cut(strings.TrimSpace(key), ".")
	if !ok || prefix == "" || secret == "" {
		return "", "", ErrMalformedAPIKey
	}
	return prefix, secret, nil
}
