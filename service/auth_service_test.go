package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moonforge/launchpad/adapters/store"
	"github.com/moonforge/launchpad/core"
	"github.com/moonforge/launchpad/ports"
)

const goodSignature = "good"

// fakeVerifier accepts only the fixed goodSignature value.
type fakeVerifier struct {
	err   error
	calls int
}

func (v *fakeVerifier) Verify(message []byte, signature string, address string) (bool, error) {
	v.calls++
	if v.err != nil {
		return false, v.err
	}
	return signature == goodSignature, nil
}

type fakeUsers struct {
	byAddress map[string]*core.User
	created   int
	findErr   error
}

var _ ports.UserDirectory = (*fakeUsers)(nil)

func (f *fakeUsers) FindByAddress(_ context.Context, address string) (*core.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byAddress[address]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (f *fakeUsers) Create(_ context.Context, user *core.User) error {
	if f.byAddress == nil {
		f.byAddress = map[string]*core.User{}
	}
	cpy := *user
	f.byAddress[user.WalletAddress] = &cpy
	f.created++
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	for address, u := range f.byAddress {
		if u.ID == id {
			delete(f.byAddress, address)
		}
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Mint(address string) (string, error) {
	return "token:" + address, nil
}

func (fakeIssuer) Validate(token string) (string, error) {
	address, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return "", core.ErrInvalidToken
	}
	return address, nil
}

type fakeEvents struct {
	logins       int
	userCreated  int
	coinsCreated int
	err          error
}

var _ ports.EventPublisher = (*fakeEvents)(nil)

func (f *fakeEvents) PublishLogin(context.Context, string) error {
	f.logins++
	return f.err
}

func (f *fakeEvents) PublishUserCreated(context.Context, string, string) error {
	f.userCreated++
	return f.err
}

func (f *fakeEvents) PublishCoinCreated(context.Context, string, string) error {
	f.coinsCreated++
	return f.err
}

// failingDeleteStore simulates a store that can read and write but not
// delete.
type failingDeleteStore struct {
	ports.ChallengeStore
}

func (failingDeleteStore) Delete(context.Context, string) error {
	return errors.New("store unavailable")
}

type authFixture struct {
	svc        *AuthService
	challenges *store.MemoryChallengeStore
	users      *fakeUsers
	verifier   *fakeVerifier
	events     *fakeEvents
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		challenges: store.NewMemoryChallengeStore(),
		users:      &fakeUsers{},
		verifier:   &fakeVerifier{},
		events:     &fakeEvents{},
	}
	f.svc = NewAuthService(f.challenges, f.users, f.verifier, fakeIssuer{}, f.events, nil)
	return f
}

func TestCreateChallengeRejectsEmptyAddress(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.CreateChallenge(context.Background(), "")
	require.ErrorIs(t, err, core.ErrInvalidAddress)
}

func TestCreateChallengeTextContainsNonce(t *testing.T) {
	f := newAuthFixture(t)

	challenge, err := f.svc.CreateChallenge(context.Background(), "0xabc")
	require.NoError(t, err)
	require.NotEmpty(t, challenge.Nonce)
	require.True(t, strings.HasPrefix(challenge.Text, core.ChallengePrefix))
	require.Contains(t, challenge.Text, challenge.Nonce)
	require.Equal(t, "0xabc", challenge.Address)
}

func TestCreateChallengeNoncesAreDistinct(t *testing.T) {
	f := newAuthFixture(t)

	first, err := f.svc.CreateChallenge(context.Background(), "0xabc")
	require.NoError(t, err)
	second, err := f.svc.CreateChallenge(context.Background(), "0xabc")
	require.NoError(t, err)

	require.NotEqual(t, first.Nonce, second.Nonce)
	require.NotEqual(t, first.Text, second.Text)
}

func TestLoginSucceedsExactlyOncePerChallenge(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	challenge, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	token, err := f.svc.Login(ctx, "0xabc", goodSignature, challenge.Text)
	require.NoError(t, err)
	require.Equal(t, "token:0xabc", token)

	// Challenge is consumed; replaying the same signed message fails.
	_, err = f.svc.Login(ctx, "0xabc", goodSignature, challenge.Text)
	require.ErrorIs(t, err, core.ErrInvalidSignature)
}

func TestLoginWithoutChallengeFails(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), "0xnobody", goodSignature, "anything")
	require.ErrorIs(t, err, core.ErrInvalidSignature)
	require.Zero(t, f.verifier.calls)
}

func TestLoginRejectsMismatchedMessage(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	// Even a valid signature over different text must fail before the
	// verifier is consulted.
	_, err = f.svc.Login(ctx, "0xabc", goodSignature, "wrong text")
	require.ErrorIs(t, err, core.ErrInvalidSignature)
	require.Zero(t, f.verifier.calls)
}

func TestLoginOnlyAcceptsMostRecentChallenge(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	older, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)
	newer, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "0xabc", goodSignature, older.Text)
	require.ErrorIs(t, err, core.ErrInvalidSignature)

	token, err := f.svc.Login(ctx, "0xabc", goodSignature, newer.Text)
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestLoginRetryAfterBadSignature(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	challenge, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "0xabc", "bogus", challenge.Text)
	require.ErrorIs(t, err, core.ErrInvalidSignature)

	// The challenge survives a failed signature check; a corrected retry
	// succeeds.
	token, err := f.svc.Login(ctx, "0xabc", goodSignature, challenge.Text)
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestLoginTreatsVerifierErrorAsFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.verifier.err = errors.New("malformed input")
	ctx := context.Background()

	challenge, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "0xabc", goodSignature, challenge.Text)
	require.ErrorIs(t, err, core.ErrInvalidSignature)
}

func TestLoginCreatesUserOnceAcrossLogins(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "0xabc", goodSignature, first.Text)
	require.NoError(t, err)
	require.Equal(t, 1, f.users.created)
	require.Equal(t, 1, f.events.userCreated)

	second, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "0xabc", goodSignature, second.Text)
	require.NoError(t, err)
	require.Equal(t, 1, f.users.created)
	require.Equal(t, 1, f.events.userCreated)
	require.Equal(t, 2, f.events.logins)
}

func TestLoginSwallowsConsumeFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.svc.challenges = failingDeleteStore{f.challenges}
	ctx := context.Background()

	challenge, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	// Verification already passed; a failed delete must not flip the
	// result.
	token, err := f.svc.Login(ctx, "0xabc", goodSignature, challenge.Text)
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestLoginRejectsExpiredChallenge(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	challenge, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	// Move the store clock past the TTL.
	f.challenges.Now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	_, err = f.svc.Login(ctx, "0xabc", goodSignature, challenge.Text)
	require.ErrorIs(t, err, core.ErrInvalidSignature)
}

func TestValidateAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	challenge, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)
	token, err := f.svc.Login(ctx, "0xabc", goodSignature, challenge.Text)
	require.NoError(t, err)

	user, err := f.svc.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "0xabc", user.WalletAddress)

	_, err = f.svc.ValidateAccessToken(ctx, "garbage")
	require.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestValidateAccessTokenFailsForDeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	challenge, err := f.svc.CreateChallenge(ctx, "0xabc")
	require.NoError(t, err)
	token, err := f.svc.Login(ctx, "0xabc", goodSignature, challenge.Text)
	require.NoError(t, err)

	user, err := f.users.FindByAddress(ctx, "0xabc")
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, user.ID))

	_, err = f.svc.ValidateAccessToken(ctx, token)
	require.ErrorIs(t, err, core.ErrInvalidToken)
}
