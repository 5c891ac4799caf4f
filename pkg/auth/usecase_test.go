package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/dragonball/pkg/password"
)

type fakeUsers struct {
	byEmail map[string]*User
	nextID  int64

	createErr error
	touchErr  error

	touchCalls int
}

var _ UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, n NewUser) (User, error) {
	if f.createErr != nil {
		return User{}, f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*User{}
	}
	for _, u := range f.byEmail {
		if u.Email == n.Email || u.Username == n.Username {
			return User{}, ErrUserAlreadyExists
		}
	}
	f.nextID++
	u := User{
		ID:           f.nextID,
		Username:     n.Username,
		Email:        n.Email,
		PasswordHash: n.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.byEmail[n.Email] = &u
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return *u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (User, error) {
	for _, u := range f.byEmail {
		if u.Username == username {
			return *u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			pub := *u
			pub.PasswordHash = ""
			return pub, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeUsers) TouchLogin(_ context.Context, _ int64) error {
	f.touchCalls++
	return f.touchErr
}

type fakeTokens struct {
	genErr   error
	parseErr error
	claims   Claims
}

var _ TokenService = (*fakeTokens)(nil)

func (f *fakeTokens) Generate(_ context.Context, u User) (string, error) {
	if f.genErr != nil {
		return "", f.genErr
	}
	return "tok-for-" + u.Username, nil
}

func (f *fakeTokens) Parse(string) (Claims, error) {
	if f.parseErr != nil {
		return Claims{}, f.parseErr
	}
	return f.claims, nil
}

func newService(users *fakeUsers, tokens *fakeTokens) AuthUseCase {
	return NewAuthService(users, tokens, zap.NewNop())
}

func TestRegister_SuccessAndDuplicate(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{}
	s := newService(users, &fakeTokens{})

	res, err := s.Register(context.Background(), "goku", "goku@z.com", "Saiyan1!")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" || res.User.Username != "goku" {
		t.Fatalf("unexpected result: %+v", res)
	}

	stored := users.byEmail["goku@z.com"]
	if stored.PasswordHash == "Saiyan1!" || stored.PasswordHash == "" {
		t.Fatalf("stored password must be a hash, got %q", stored.PasswordHash)
	}
	if ok, _ := password.Verify("Saiyan1!", stored.PasswordHash); !ok {
		t.Fatalf("stored hash does not verify against original password")
	}

	_, err = s.Register(context.Background(), "goku2", "goku@z.com", "Saiyan1!")
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("want ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	t.Parallel()

	s := newService(&fakeUsers{}, &fakeTokens{})
	if _, err := s.Register(context.Background(), "", "goku@z.com", "Saiyan1!"); err == nil {
		t.Fatalf("want validation error on empty username")
	}
}

func TestLogin_WrongPasswordAndUnknownUser(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{}
	s := newService(users, &fakeTokens{})
	if _, err := s.Register(context.Background(), "goku", "goku@z.com", "Saiyan1!"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := s.Login(context.Background(), "goku@z.com", "wrong-pass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials for wrong password, got %v", err)
	}

	_, err = s.Login(context.Background(), "vegeta@z.com", "Saiyan1!")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLogin_TouchFailureIsTolerated(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{touchErr: errors.New("db down")}
	s := newService(users, &fakeTokens{})
	if _, err := s.Register(context.Background(), "goku", "goku@z.com", "Saiyan1!"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := s.Login(context.Background(), "goku@z.com", "Saiyan1!")
	if err != nil {
		t.Fatalf("login must survive a failed timestamp update: %v", err)
	}
	if users.touchCalls != 1 {
		t.Fatalf("TouchLogin calls = %d, want 1", users.touchCalls)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
}

func TestVerify_ResolvesUserAndMapsFailures(t *testing.T) {
	t.Parallel()

	users := &fakeUsers{}
	tokens := &fakeTokens{}
	s := newService(users, tokens)
	res, err := s.Register(context.Background(), "goku", "goku@z.com", "Saiyan1!")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	tokens.claims = Claims{ID: res.User.ID, Email: res.User.Email, Username: res.User.Username}
	pub, err := s.Verify(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if pub.ID != res.User.ID || pub.Username != "goku" {
		t.Fatalf("unexpected user: %+v", pub)
	}

	// token for a user no longer in the store
	tokens.claims = Claims{ID: 9999}
	if _, err := s.Verify(context.Background(), res.Token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for vanished user, got %v", err)
	}

	tokens.parseErr = ErrTokenExpired
	if _, err := s.Verify(context.Background(), res.Token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}
