package setup

import (
	"github.com/practice-labs/loginsvc/internal/config"
	"github.com/practice-labs/loginsvc/internal/directory"
	"github.com/practice-labs/loginsvc/internal/handler"
	"github.com/practice-labs/loginsvc/internal/middleware"
	"github.com/practice-labs/loginsvc/internal/secret"
	"github.com/practice-labs/loginsvc/internal/service"
	"github.com/practice-labs/loginsvc/internal/token"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	Config         *config.Config
	Auth           *service.Auth
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
}

// Build wires the service from config: directory snapshot, secret verifier,
// token codec, auth pipeline, HTTP handler and middleware.
func Build(cfg *config.Config) *Dependencies {
	dir := directory.FromConfig(cfg.Users)

	var secrets secret.Verifier
	switch cfg.Public.SecretScheme {
	case config.SecretsPlaintext:
		secrets = secret.Plaintext{}
	default:
		secrets = secret.Bcrypt{}
	}

	var codec token.Codec
	switch cfg.Public.TokenCodec {
	case config.CodecUnsigned:
		codec = token.NewUnsigned()
	default:
		codec = token.NewSigned(cfg.TokenKey())
	}

	auth := service.NewAuth(dir, secrets, codec)
	h := handler.New(auth, cfg)
	authMw := middleware.NewAuth(auth)

	return &Dependencies{
		Config:         cfg,
		Auth:           auth,
		Handler:        h,
		AuthMiddleware: authMw,
	}
}
