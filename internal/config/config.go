package config

import (
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	CodecSigned   = "signed"
	CodecUnsigned = "unsigned"

	SecretsBcrypt    = "bcrypt"
	SecretsPlaintext = "plaintext"
)

type Config struct {
	Public  Public
	private Private
	Users   []UserEntry
}

type Public struct {
	Addr           string   `yaml:"addr" validate:"required"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
	SecureCookies  bool     `yaml:"secure_cookies"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// TokenCodec picks the token implementation: "signed" (HS256) or
	// "unsigned" (the teaching-mode encoding with an opaque signature).
	TokenCodec string `yaml:"token_codec" validate:"omitempty,oneof=signed unsigned"`
	// SecretScheme picks how stored secrets are compared: "bcrypt" or "plaintext".
	SecretScheme string `yaml:"secret_scheme" validate:"omitempty,oneof=bcrypt plaintext"`

	// Login rate limiting (per client IP).
	LoginRatePerSecond float64 `yaml:"login_rate_per_second"`
	LoginBurst         float64 `yaml:"login_burst"`
}

type Private struct {
	// TokenKey signs tokens when token_codec is "signed".
	TokenKey string `yaml:"token_key"`
}

// UserEntry seeds the in-memory user directory.
type UserEntry struct {
	Id          string `yaml:"id" validate:"required"`
	Email       string `yaml:"email" validate:"required,email"`
	DisplayName string `yaml:"display_name"`
	Role        string `yaml:"role" validate:"required,oneof=member admin"`
	Secret      string `yaml:"secret" validate:"required"`

	Locked          bool `yaml:"locked"`
	UnlockInMinutes int  `yaml:"unlock_in_minutes"` // relative, resolved at load
}

type usersFile struct {
	Users []UserEntry `yaml:"users"`
}

func (c *Config) TokenKey() string {
	return c.private.TokenKey
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml, private.yaml and users.yaml from configFolder.
// Panics on missing files or invalid contents; there is no meaningful way to
// run without a config.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	var users usersFile
	mustLoadPath(path.Join(configFolder, "users.yaml"), &users)

	if public.TokenCodec == "" {
		public.TokenCodec = CodecSigned
	}
	if public.SecretScheme == "" {
		public.SecretScheme = SecretsBcrypt
	}
	if public.LoginRatePerSecond == 0 {
		public.LoginRatePerSecond = 1
	}
	if public.LoginBurst == 0 {
		public.LoginBurst = 5
	}

	cfg := &Config{public, private, users.Users}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&public); err != nil {
		panic("invalid public config: " + err.Error())
	}
	for _, u := range cfg.Users {
		if err := validate.Struct(&u); err != nil {
			panic("invalid user entry " + u.Email + ": " + err.Error())
		}
	}
	if public.TokenCodec == CodecSigned && private.TokenKey == "" {
		panic("token_key is required when token_codec is signed")
	}

	return cfg
}
