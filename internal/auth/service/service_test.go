package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"raally_backend/internal/auth/provider"
	"raally_backend/internal/auth/repository"
	"raally_backend/internal/auth/token"
	"raally_backend/internal/events"
	"raally_backend/platform/apperr"
	"raally_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeConfig struct{}

func (fakeConfig) GetJWTSecret() string                 { return "test-secret" }
func (fakeConfig) GetTokenTTL() time.Duration           { return time.Hour }
func (fakeConfig) GetInvitationTokenTTL() time.Duration { return time.Hour }
func (fakeConfig) GetFrontendURL() string               { return "http://localhost:3000" }

type fakeBus struct {
	published []events.Event
	syncErr   error
}

func (b *fakeBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *fakeBus) PublishSync(ctx context.Context, event events.Event) error {
	if b.syncErr != nil {
		return b.syncErr
	}
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Subscribe(eventName string, handler events.Handler) {}

type providerLink struct {
	provider  string
	subjectID string
}

type fakeRepo struct {
	users       map[uuid.UUID]repository.User
	links       map[providerLink]uuid.UUID
	memberships map[uuid.UUID]struct {
		tenantID uuid.UUID
		roles    []string
	}
	invitations map[string]fakeInvitation // keyed by token hash
	tenants     int
}

type fakeInvitation struct {
	tenantID uuid.UUID
	issuedAt time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users: make(map[uuid.UUID]repository.User),
		links: make(map[providerLink]uuid.UUID),
		memberships: make(map[uuid.UUID]struct {
			tenantID uuid.UUID
			roles    []string
		}),
		invitations: make(map[string]fakeInvitation),
	}
}

func (r *fakeRepo) CreateUser(ctx context.Context, params repository.CreateUserParams) (repository.User, error) {
	user := repository.User{
		ID:            uuid.New(),
		Email:         strings.ToLower(params.Email),
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		PasswordHash:  params.PasswordHash,
		EmailVerified: params.EmailVerified,
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeRepo) GetUserByEmail(ctx context.Context, email string) (repository.User, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, user := range r.users {
		if user.Email == needle {
			return user, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (r *fakeRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (r *fakeRepo) GetUserByProvider(ctx context.Context, providerName, subjectID string) (repository.User, error) {
	userID, ok := r.links[providerLink{providerName, subjectID}]
	if !ok {
		return repository.User{}, apperr.NotFound("identity link not found")
	}
	return r.users[userID], nil
}

func (r *fakeRepo) LinkProvider(ctx context.Context, userID uuid.UUID, providerName, subjectID string) error {
	r.links[providerLink{providerName, subjectID}] = userID
	return nil
}

func (r *fakeRepo) DefaultMembership(ctx context.Context, userID uuid.UUID) (uuid.UUID, []string, error) {
	m, ok := r.memberships[userID]
	if !ok {
		return uuid.Nil, nil, apperr.NotFound("no tenant membership")
	}
	return m.tenantID, m.roles, nil
}

func (r *fakeRepo) AcceptInvitation(ctx context.Context, tokenHash string, userID uuid.UUID, issuedAfter time.Time) (uuid.UUID, error) {
	invite, ok := r.invitations[tokenHash]
	if !ok || invite.issuedAt.Before(issuedAfter) {
		return uuid.Nil, apperr.NotFound("invitation not found")
	}
	delete(r.invitations, tokenHash)
	r.memberships[userID] = struct {
		tenantID uuid.UUID
		roles    []string
	}{invite.tenantID, []string{"member"}}
	return invite.tenantID, nil
}

func (r *fakeRepo) CreateTenantWithOwner(ctx context.Context, name string, userID uuid.UUID) (uuid.UUID, error) {
	tenantID := uuid.New()
	r.tenants++
	r.memberships[userID] = struct {
		tenantID uuid.UUID
		roles    []string
	}{tenantID, []string{"admin"}}
	return tenantID, nil
}

var _ repository.AuthRepository = (*fakeRepo)(nil)

// stubProvider satisfies the provider interface for registry wiring; the
// sign-in tests feed identities directly without a code exchange.
type stubProvider struct{ name string }

func (p stubProvider) Name() string                 { return p.name }
func (p stubProvider) AuthURL(state string) string  { return "https://example.test/auth?state=" + state }
func (p stubProvider) Exchange(ctx context.Context, code string) (provider.VerifiedIdentity, error) {
	return provider.VerifiedIdentity{}, nil
}

func newTestService(repo repository.AuthRepository) (*Service, *fakeBus) {
	bus := &fakeBus{}
	registry := provider.NewRegistry(stubProvider{name: "google"})
	return New(repo, registry, fakeConfig{}, bus, logger.New("development")), bus
}

func parseToken(t *testing.T, signed string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	return claims
}

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"", "", ""},
		{"   ", "", ""},
		{"Ada", "Ada", ""},
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"Ada  King  Lovelace", "Ada", "King Lovelace"},
	}
	for _, tc := range cases {
		first, last := splitFullName(tc.in)
		if first != tc.first || last != tc.last {
			t.Fatalf("splitFullName(%q) = (%q, %q), want (%q, %q)", tc.in, first, last, tc.first, tc.last)
		}
	}
}

func TestSignInFromSocialResolvesExistingLink(t *testing.T) {
	repo := newFakeRepo()
	user, _ := repo.CreateUser(context.Background(), repository.CreateUserParams{Email: "ada@example.test"})
	_ = repo.LinkProvider(context.Background(), user.ID, "google", "sub-1")
	svc, _ := newTestService(repo)

	signed, err := svc.SignInFromSocial(context.Background(), provider.VerifiedIdentity{
		Provider:  "google",
		SubjectID: "sub-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := parseToken(t, signed)
	if claims["sub"] != user.ID.String() {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if len(repo.users) != 1 {
		t.Fatal("resolving a stored link must not create a new user")
	}
}

func TestSignInFromSocialMatchesEmailCaseInsensitively(t *testing.T) {
	repo := newFakeRepo()
	user, _ := repo.CreateUser(context.Background(), repository.CreateUserParams{Email: "ada@example.test"})
	svc, _ := newTestService(repo)

	_, err := svc.SignInFromSocial(context.Background(), provider.VerifiedIdentity{
		Provider:      "google",
		SubjectID:     "sub-2",
		Email:         "ADA@Example.Test",
		EmailVerified: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.users) != 1 {
		t.Fatal("an email match must not create a new user")
	}
	if repo.links[providerLink{"google", "sub-2"}] != user.ID {
		t.Fatal("the social identity must be linked to the matched account")
	}
}

func TestSignInFromSocialCreatesUserWithSplitName(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.SignInFromSocial(context.Background(), provider.VerifiedIdentity{
		Provider:      "google",
		SubjectID:     "sub-3",
		Email:         "grace@example.test",
		EmailVerified: true,
		FullName:      "Grace Brewster Hopper",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := repo.GetUserByEmail(context.Background(), "grace@example.test")
	if err != nil {
		t.Fatalf("expected user to be created: %v", err)
	}
	if user.FirstName != "Grace" || user.LastName != "Brewster Hopper" {
		t.Fatalf("expected split name (Grace, Brewster Hopper), got (%q, %q)", user.FirstName, user.LastName)
	}
}

func TestSignInFromSocialRejectsMissingEmail(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.SignInFromSocial(context.Background(), provider.VerifiedIdentity{
		Provider:  "google",
		SubjectID: "sub-4",
	})
	if apperr.GetKey(err) != KeyNoEmail {
		t.Fatalf("expected %s code, got %v", KeyNoEmail, err)
	}
}

func TestSignInFromSocialRejectsUnknownProvider(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.SignInFromSocial(context.Background(), provider.VerifiedIdentity{
		Provider:  "myspace",
		SubjectID: "sub-5",
		Email:     "x@example.test",
	})
	if apperr.GetKey(err) != KeyInvalidProvider {
		t.Fatalf("expected %s code, got %v", KeyInvalidProvider, err)
	}
}

func TestSignUpAndSignInRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	signed, err := svc.SignUp(context.Background(), "ada@example.test", "correct horse battery", "Ada Lovelace")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	claims := parseToken(t, signed)
	if claims["email"] != "ada@example.test" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}

	if _, err := svc.SignIn(context.Background(), "ada@example.test", "correct horse battery"); err != nil {
		t.Fatalf("sign in with the right password: %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "ada@example.test", "wrong"); apperr.GetKey(err) != KeyInvalidCreds {
		t.Fatalf("expected invalid credentials code, got %v", err)
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.SignUp(context.Background(), "ada@example.test", "password123", ""); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	_, err := svc.SignUp(context.Background(), "ADA@example.test", "password123", "")
	if apperr.GetKey(err) != KeyEmailTaken {
		t.Fatalf("expected email taken code, got %v", err)
	}
}

func TestHandleOnboardCreatesTenantAndScopesToken(t *testing.T) {
	repo := newFakeRepo()
	svc, bus := newTestService(repo)
	user, _ := repo.CreateUser(context.Background(), repository.CreateUserParams{Email: "ada@example.test"})

	signed, err := svc.HandleOnboard(context.Background(), user.ID, "", "Acme Corp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := parseToken(t, signed)
	if claims["tenant_id"] == nil {
		t.Fatal("onboarded token must carry the tenant claim")
	}
	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 1 || roles[0] != "admin" {
		t.Fatalf("expected sole admin role, got %v", claims["roles"])
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected a tenant created event, got %d events", len(bus.published))
	}
	if _, ok := bus.published[0].(events.TenantCreated); !ok {
		t.Fatalf("expected TenantCreated, got %T", bus.published[0])
	}
}

func TestHandleOnboardRequiresTenantNameWithoutInvitation(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	user, _ := repo.CreateUser(context.Background(), repository.CreateUserParams{Email: "ada@example.test"})

	_, err := svc.HandleOnboard(context.Background(), user.ID, "", "   ")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHandleOnboardAcceptsInvitation(t *testing.T) {
	repo := newFakeRepo()
	svc, bus := newTestService(repo)
	user, _ := repo.CreateUser(context.Background(), repository.CreateUserParams{Email: "ada@example.test"})

	tenantID := uuid.New()
	rawToken := "raw-invitation-token"
	repo.invitations[token.HashSHA256(rawToken)] = fakeInvitation{tenantID: tenantID, issuedAt: time.Now()}

	signed, err := svc.HandleOnboard(context.Background(), user.ID, rawToken, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := parseToken(t, signed)
	if claims["tenant_id"] != tenantID.String() {
		t.Fatalf("expected tenant claim %s, got %v", tenantID, claims["tenant_id"])
	}
	if len(bus.published) != 0 {
		t.Fatal("accepting an invitation must not create a tenant")
	}
}

func TestHandleOnboardRejectsUnknownInvitation(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	user, _ := repo.CreateUser(context.Background(), repository.CreateUserParams{Email: "ada@example.test"})

	_, err := svc.HandleOnboard(context.Background(), user.ID, "bogus-token", "")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for an unknown invitation, got %v", err)
	}
}

func TestHandleOnboardRejectsExpiredInvitation(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	user, _ := repo.CreateUser(context.Background(), repository.CreateUserParams{Email: "ada@example.test"})

	rawToken := "stale-invitation-token"
	repo.invitations[token.HashSHA256(rawToken)] = fakeInvitation{
		tenantID: uuid.New(),
		issuedAt: time.Now().Add(-2 * fakeConfig{}.GetInvitationTokenTTL()),
	}

	_, err := svc.HandleOnboard(context.Background(), user.ID, rawToken, "")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for an expired invitation, got %v", err)
	}
	if len(repo.memberships) != 0 {
		t.Fatal("an expired invitation must not grant a membership")
	}
}

func TestHandleOnboardFailsWhenCreationEventFails(t *testing.T) {
	repo := newFakeRepo()
	svc, bus := newTestService(repo)
	bus.syncErr = errors.New("subscriber down")
	user, _ := repo.CreateUser(context.Background(), repository.CreateUserParams{Email: "ada@example.test"})

	_, err := svc.HandleOnboard(context.Background(), user.ID, "", "Acme Corp")
	if err == nil {
		t.Fatal("expected the subscriber failure to surface")
	}
}
