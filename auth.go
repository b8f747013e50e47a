package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminTokenExpiry = 12 * time.Hour
	adminSubject     = "admin"
	loginRateWindow  = 60 * time.Second
	maxLoginAttempts = 10
	secretLen        = 32
	jwtSecretKey     = "jwt_secret"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAdminDisabled = errors.New("admin api disabled")
	ErrRateLimited   = errors.New("too many login attempts")
)

// Auth guards the operator API. There is a single admin identity whose
// bcrypt hash comes from config; successful logins receive an HS256 token.
type Auth struct {
	passHash  []byte
	jwtSecret []byte
	now       func() time.Time

	// Rate limiting for login attempts (IP -> attempts)
	rateMu  sync.Mutex
	rateMap map[string]*rateEntry
}

type rateEntry struct {
	Count   int
	ResetAt time.Time
}

// NewAuth creates the admin authenticator. An empty secretHex loads the
// persisted secret from db, or generates one.
func NewAuth(passHash, secretHex string, db *DB) (*Auth, error) {
	var secret []byte
	if secretHex != "" {
		b, err := hex.DecodeString(secretHex)
		if err != nil {
			return nil, fmt.Errorf("jwt secret: %w", err)
		}
		if len(b) < 16 {
			return nil, fmt.Errorf("jwt secret: need at least 16 bytes, got %d", len(b))
		}
		secret = b
	} else {
		b, err := loadOrCreateSecret(db)
		if err != nil {
			return nil, err
		}
		secret = b
	}

	return &Auth{
		passHash:  []byte(passHash),
		jwtSecret: secret,
		now:       time.Now,
		rateMap:   make(map[string]*rateEntry),
	}, nil
}

// loadOrCreateSecret loads the JWT secret from the database, or generates
// and persists a new one if none exists.
func loadOrCreateSecret(db *DB) ([]byte, error) {
	if db != nil {
		if h := db.GetSetting(jwtSecretKey); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == secretLen {
				return b, nil
			}
		}
	}
	secret := make([]byte, secretLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate jwt secret: %w", err)
	}
	if db != nil {
		if err := db.SetSetting(jwtSecretKey, hex.EncodeToString(secret)); err != nil {
			log.Printf("warning: could not persist JWT secret: %v", err)
		}
	}
	return secret, nil
}

// Enabled reports whether an admin password is configured
func (a *Auth) Enabled() bool {
	return len(a.passHash) > 0
}

// Login checks the admin password and returns a signed token
func (a *Auth) Login(password, ip string) (string, error) {
	if !a.Enabled() {
		return "", ErrAdminDisabled
	}
	if !a.checkRate(ip) {
		return "", ErrRateLimited
	}
	if err := bcrypt.CompareHashAndPassword(a.passHash, []byte(password)); err != nil {
		return "", ErrUnauthorized
	}
	return a.generateToken()
}

// ValidateToken checks signature, expiry and subject of an admin token
func (a *Auth) ValidateToken(tokenStr string) error {
	if !a.Enabled() {
		return ErrAdminDisabled
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ErrUnauthorized
	}
	if sub, _ := claims["sub"].(string); sub != adminSubject {
		return ErrUnauthorized
	}
	return nil
}

func (a *Auth) generateToken() (string, error) {
	now := a.now()
	claims := jwt.MapClaims{
		"sub": adminSubject,
		"exp": now.Add(adminTokenExpiry).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

func (a *Auth) checkRate(ip string) bool {
	a.rateMu.Lock()
	defer a.rateMu.Unlock()

	now := a.now()
	entry, ok := a.rateMap[ip]
	if !ok || now.After(entry.ResetAt) {
		a.rateMap[ip] = &rateEntry{Count: 1, ResetAt: now.Add(loginRateWindow)}
		return true
	}
	entry.Count++
	return entry.Count <= maxLoginAttempts
}
