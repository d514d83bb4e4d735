package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the server settings. Flags win over environment variables,
// which win over the defaults.
type Config struct {
	Addr         string
	AllowOrigins string
	WSBufferSize int
	Debug        bool
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		WSBufferSize: 1024,
	}
}

// Load parses args (without the program name) with CHESS_* environment fallbacks.
func Load(args []string) (Config, error) {
	def := Default()

	bufSize, err := getenvInt("CHESS_WS_BUFFER", def.WSBufferSize)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", def.Addr), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", def.AllowOrigins), "comma-separated CORS origins")
	wsBuf := fs.Int("ws-buffer", bufSize, "websocket read/write buffer size in bytes")
	debug := fs.Bool("debug", getenvBool("CHESS_DEBUG", def.Debug), "log every request")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:         *addr,
		AllowOrigins: *origins,
		WSBufferSize: *wsBuf,
		Debug:        *debug,
	}
	if cfg.WSBufferSize <= 0 {
		return Config{}, fmt.Errorf("ws-buffer must be positive, got %d", cfg.WSBufferSize)
	}
	return cfg, nil
}

// Origins splits AllowOrigins for the websocket origin check.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
