package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moonforge/launchpad/core"
	"github.com/moonforge/launchpad/ports"
)

const (
	defaultChallengeTTL = 5 * time.Minute
	nonceBytes          = 32
)

// AuthService handles wallet challenge/response authentication.
//
// The per-address protocol state is implicit: a wallet is in the
// "challenge issued" state exactly while the store holds a live challenge
// for it, and every Login call is a fresh transition evaluated against
// current store contents.
type AuthService struct {
	challenges ports.ChallengeStore
	users      ports.UserDirectory
	verifier   ports.SignatureVerifier
	tokenizer  ports.TokenIssuer
	eventPub   ports.EventPublisher
	log        *zap.Logger

	challengeTTL time.Duration
	now          func() time.Time
}

// NewAuthService creates a new authentication service. The event publisher
// may be nil, in which case no events are emitted.
func NewAuthService(
	challenges ports.ChallengeStore,
	users ports.UserDirectory,
	verifier ports.SignatureVerifier,
	tokenizer ports.TokenIssuer,
	eventPub ports.EventPublisher,
	log *zap.Logger,
) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		challenges:   challenges,
		users:        users,
		verifier:     verifier,
		tokenizer:    tokenizer,
		eventPub:     eventPub,
		log:          log,
		challengeTTL: defaultChallengeTTL,
		now:          time.Now,
	}
}

// CreateChallenge issues a fresh challenge for the address. Outstanding
// challenges for the same address are left untouched; only the newest one
// is ever considered at verification time.
func (s *AuthService) CreateChallenge(ctx context.Context, address string) (*core.Challenge, error) {
	if address == "" {
		return nil, core.ErrInvalidAddress
	}

	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	nonce := hex.EncodeToString(buf)

	now := s.now()
	challenge := &core.Challenge{
		ID:        uuid.New().String(),
		Address:   address,
		Nonce:     nonce,
		Text:      core.ChallengePrefix + nonce,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.challengeTTL),
	}

	if err := s.challenges.Save(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to save challenge: %w", err)
	}

	return challenge, nil
}

// Login verifies a signed challenge and exchanges it for an access token.
//
// Every authentication-path failure collapses to core.ErrInvalidSignature:
// callers cannot tell a missing challenge from a stale message from a bad
// signature. The distinctions live only in debug logs.
func (s *AuthService) Login(ctx context.Context, address, signature, message string) (string, error) {
	challenge, err := s.challenges.Latest(ctx, address)
	if err != nil {
		if errors.Is(err, core.ErrChallengeNotFound) {
			s.log.Debug("login with no outstanding challenge", zap.String("address", address))
			return "", core.ErrInvalidSignature
		}
		return "", fmt.Errorf("failed to load challenge: %w", err)
	}

	if message != challenge.Text {
		s.log.Debug("login message does not match stored challenge", zap.String("address", address))
		return "", core.ErrInvalidSignature
	}

	ok, err := s.verifier.Verify([]byte(message), signature, address)
	if err != nil {
		// Verifier backends may reject malformed input with an error; that
		// is a failed verification, not a reason to abort the flow.
		s.log.Debug("signature verification errored", zap.String("address", address), zap.Error(err))
		return "", core.ErrInvalidSignature
	}
	if !ok {
		// The challenge stays in the store: the client may retry with a
		// corrected signature until it expires.
		s.log.Debug("signature verification failed", zap.String("address", address))
		return "", core.ErrInvalidSignature
	}

	user, err := s.ensureUser(ctx, address)
	if err != nil {
		return "", fmt.Errorf("failed to ensure user: %w", err)
	}

	// The verification already succeeded; a failed delete must not flip
	// the result. An undeleted record is reaped by TTL.
	if err := s.challenges.Delete(ctx, challenge.ID); err != nil {
		s.log.Warn("failed to consume challenge",
			zap.String("challenge_id", challenge.ID),
			zap.Error(err))
	}

	token, err := s.tokenizer.Mint(address)
	if err != nil {
		return "", fmt.Errorf("failed to mint access token: %w", err)
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishLogin(ctx, user.WalletAddress); err != nil {
			s.log.Warn("failed to publish login event", zap.Error(err))
		}
	}

	return token, nil
}

// ValidateAccessToken checks a bearer token and resolves its user. A token
// for a user deleted after minting fails here.
func (s *AuthService) ValidateAccessToken(ctx context.Context, token string) (*core.User, error) {
	address, err := s.tokenizer.Validate(token)
	if err != nil {
		return nil, core.ErrInvalidToken
	}

	user, err := s.users.FindByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}

// ensureUser finds the user for an address, creating it on first login.
// Existing records are never modified.
func (s *AuthService) ensureUser(ctx context.Context, address string) (*core.User, error) {
	user, err := s.users.FindByAddress(ctx, address)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, core.ErrUserNotFound) {
		return nil, err
	}

	user = &core.User{
		ID:            uuid.New().String(),
		WalletAddress: address,
		CreatedAt:     s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishUserCreated(ctx, user.ID, user.WalletAddress); err != nil {
			s.log.Warn("failed to publish user created event", zap.Error(err))
		}
	}

	return user, nil
}
