package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds startup settings. Values are fixed once the server starts.
type Config struct {
	Addr              string
	Width             uint
	Height            uint
	TickInterval      time.Duration
	LogFile           string
	Debug             bool
	Bots              int
	DBPath            string
	AdminPasswordHash string
	JWTSecret         string
	PublicURL         string
	AccountsEnabled   bool
	Mode              string
	ClientDir         string
}

// LoadConfig reads an optional .env file, then parses args. Flags default
// to their KANONO_* environment variables.
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	fset := flag.NewFlagSet("kanono", flag.ContinueOnError)
	fset.StringVar(&cfg.Addr, "addr", envString("KANONO_ADDR", ":3000"), "HTTP listen address")
	fset.UintVar(&cfg.Width, "width", envUint("KANONO_WIDTH", 4000), "world width")
	fset.UintVar(&cfg.Height, "height", envUint("KANONO_HEIGHT", 4000), "world height")
	fset.DurationVar(&cfg.TickInterval, "tick", envDuration("KANONO_TICK", TickInterval), "tick interval")
	fset.StringVar(&cfg.LogFile, "log", envString("KANONO_LOG_FILE", "kanono.log"), "log file, empty for stderr only")
	fset.BoolVar(&cfg.Debug, "debug", envBool("KANONO_DEBUG", false), "log every dispatched packet")
	fset.IntVar(&cfg.Bots, "bots", envInt("KANONO_BOTS", 0), "bot tanks to add at startup")
	fset.StringVar(&cfg.DBPath, "db", envString("KANONO_DB", ""), "sqlite path for analytics, empty to disable")
	fset.StringVar(&cfg.AdminPasswordHash, "admin-hash", envString("KANONO_ADMIN_HASH", ""), "bcrypt hash of the admin password")
	fset.StringVar(&cfg.JWTSecret, "jwt-secret", envString("KANONO_JWT_SECRET", ""), "hex admin token secret")
	fset.StringVar(&cfg.PublicURL, "public-url", envString("KANONO_PUBLIC_URL", ""), "URL encoded in /invite.png")
	fset.BoolVar(&cfg.AccountsEnabled, "accounts", envBool("KANONO_ACCOUNTS", true), "advertise accounts in RoomInfo")
	fset.StringVar(&cfg.Mode, "mode", envString("KANONO_MODE", "ffa"), "game mode name")
	fset.StringVar(&cfg.ClientDir, "client", envString("KANONO_CLIENT_DIR", ""), "static client directory")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	// RoomInfo carries the bounds as u16
	if c.Width == 0 || c.Width > math.MaxUint16 {
		return fmt.Errorf("width %d out of range", c.Width)
	}
	if c.Height == 0 || c.Height > math.MaxUint16 {
		return fmt.Errorf("height %d out of range", c.Height)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	if c.Bots < 0 {
		return fmt.Errorf("bots must not be negative")
	}
	return nil
}

// RoomInfo is the first packet every client receives
func (c Config) RoomInfo() RoomInfo {
	return RoomInfo{
		Width:           uint16(c.Width),
		Height:          uint16(c.Height),
		Mode:            c.Mode,
		AccountsEnabled: c.AccountsEnabled,
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return def
	}
	return n
}

func envUint(key string, def uint) uint {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 0)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return def
	}
	return uint(n)
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return def
	}
	return d
}
