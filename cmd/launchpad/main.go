package main

import (
	"crypto/rand"
	"crypto/rsa"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/adapters/events"
	"github.com/moonforge/launchpad/adapters/store"
	"github.com/moonforge/launchpad/adapters/tokenizer"
	"github.com/moonforge/launchpad/adapters/verifier"
	"github.com/moonforge/launchpad/ports"
	"github.com/moonforge/launchpad/service"
	"github.com/moonforge/launchpad/transport/http"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Signing key is supplied out-of-band; a fresh ephemeral key is only
	// acceptable for local development since restarts invalidate all
	// outstanding tokens.
	signKey, err := loadSigningKey(log)
	if err != nil {
		log.Fatal("failed to load signing key", zap.Error(err))
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("failed to parse Redis URL", zap.Error(err))
	}
	redisClient := redis.NewClient(opts)

	wmLogger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		wmLogger,
	)
	if err != nil {
		log.Fatal("failed to create Redis publisher", zap.Error(err))
	}

	tok := tokenizer.NewJWTTokenizer(signKey, tokenizer.DefaultAccessTTL)
	eventPub := events.NewWatermillPublisher(publisher)

	authService := service.NewAuthService(
		store.NewRedisChallengeStore(redisClient),
		store.NewRedisUserDirectory(redisClient),
		selectVerifier(log),
		tok,
		eventPub,
		log,
	)
	coinService := service.NewCoinService(
		store.NewRedisCoinStore(redisClient),
		eventPub,
		log,
	)

	router := http.SetupRouter(authService, coinService)

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":9000"
	}

	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func loadSigningKey(log *zap.Logger) (*rsa.PrivateKey, error) {
	keyFile := os.Getenv("JWT_PRIVATE_KEY_FILE")
	if keyFile == "" {
		log.Warn("JWT_PRIVATE_KEY_FILE not set, generating ephemeral signing key")
		return rsa.GenerateKey(rand.Reader, 2048)
	}

	pemBytes, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
}

func selectVerifier(log *zap.Logger) ports.SignatureVerifier {
	scheme := os.Getenv("AUTH_SCHEME")
	switch scheme {
	case "ed25519":
		return verifier.NewEd25519Verifier()
	case "", "ethereum":
		return verifier.NewEthereumVerifier()
	default:
		log.Warn("unknown AUTH_SCHEME, falling back to ethereum", zap.String("scheme", scheme))
		return verifier.NewEthereumVerifier()
	}
}
