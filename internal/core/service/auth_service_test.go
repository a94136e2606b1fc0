package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/db/memory"
)

type authFixture struct {
	svc      *AuthService
	users    *memory.UserRepository
	preRegs  *memory.PreRegistrationRepository
	denylist *memory.TokenDenylist
	notifier *recordingNotifier
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:    memory.NewUserRepository(),
		preRegs:  memory.NewPreRegistrationRepository(),
		denylist: memory.NewTokenDenylist(),
		notifier: &recordingNotifier{},
	}
	f.svc = NewAuthService(AuthDeps{
		Users:            f.users,
		PreRegistrations: f.preRegs,
		Transactor:       memory.NewTransactor(),
		Denylist:         f.denylist,
		Notifier:         f.notifier,
		Tokens:           NewTokenIssuer("secret", time.Hour),
	}, nop)
	f.svc.hashCost = bcrypt.MinCost

	f.preRegister(t, &domain.PreRegistration{
		FullName: "Asha Rao",
		Email:    "asha@campus.edu",
		Role:     domain.RoleStudent,
		RoleFields: domain.RoleFields{
			StudentID:   "R190001",
			Department:  "CSE",
			YearOfStudy: "E-3",
		},
		PhoneNumber: "9000000001",
	})
	return f
}

func (f *authFixture) preRegister(t *testing.T, p *domain.PreRegistration) {
	t.Helper()
	if err := f.preRegs.Create(context.Background(), p); err != nil {
		t.Fatalf("pre-register: %v", err)
	}
}

func ashaSignup() ports.SignupInput {
	return ports.SignupInput{
		Email:    "  Asha@Campus.edu ",
		Password: "s3cret!",
		Role:     domain.RoleStudent,
		Fields: domain.RoleFields{
			StudentID:   "R190001",
			Department:  "CSE",
			YearOfStudy: "E-3",
		},
	}
}

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestAuthService_Signup_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.svc.Signup(ctx, ashaSignup())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected token")
	}
	u := res.User
	if u.Email != "asha@campus.edu" || u.FullName != "Asha Rao" || u.Role != domain.RoleStudent {
		t.Errorf("unexpected user %+v", u)
	}
	if u.StudentID != "R190001" || u.PhoneNumber != "9000000001" || !u.IsActive {
		t.Errorf("identity fields not copied from pre-registration: %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret!")) != nil {
		t.Error("password not hashed correctly")
	}

	claims, err := f.svc.Authenticate(ctx, res.Token)
	if err != nil {
		t.Fatalf("token does not authenticate: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != domain.RoleStudent {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := f.preRegs.FindUnregistered(ctx, "asha@campus.edu", domain.RoleStudent); !errors.Is(err, domain.ErrPreRegistrationNotFound) {
		t.Errorf("pre-registration should be consumed, got %v", err)
	}
	if f.notifier.count() != 1 {
		t.Errorf("expected welcome notification, got %d", f.notifier.count())
	}
}

func TestAuthService_Signup_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *ports.SignupInput)
		want   error
	}{
		{"short password", func(in *ports.SignupInput) { in.Password = "12345" }, domain.ErrValidation},
		{"bad email", func(in *ports.SignupInput) { in.Email = "not-an-email" }, domain.ErrValidation},
		{"unknown role", func(in *ports.SignupInput) { in.Role = "guest" }, domain.ErrValidation},
		{"wrong role", func(in *ports.SignupInput) { in.Role = domain.RoleFaculty }, domain.ErrNotPreRegistered},
		{"unknown email", func(in *ports.SignupInput) { in.Email = "nobody@campus.edu" }, domain.ErrNotPreRegistered},
		{"wrong department", func(in *ports.SignupInput) { in.Fields.Department = "ECE" }, domain.ErrFieldMismatch},
		{"wrong year", func(in *ports.SignupInput) { in.Fields.YearOfStudy = "E-4" }, domain.ErrFieldMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			in := ashaSignup()
			tt.mutate(&in)

			_, err := f.svc.Signup(context.Background(), in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			users, _ := f.users.List(context.Background(), "")
			if len(users) != 0 {
				t.Errorf("no user should be created, found %d", len(users))
			}
		})
	}
}

func TestAuthService_Signup_FieldMismatchNamesField(t *testing.T) {
	f := newAuthFixture(t)
	in := ashaSignup()
	in.Fields.StudentID = "R190002"

	_, err := f.svc.Signup(context.Background(), in)
	var fm *domain.FieldMismatchError
	if !errors.As(err, &fm) || fm.Field != "Student ID" {
		t.Fatalf("expected Student ID mismatch, got %v", err)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	f := newAuthFixture(t)
	if _, err := f.svc.Signup(context.Background(), ashaSignup()); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := f.svc.Signup(context.Background(), ashaSignup()); !errors.Is(err, domain.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

// failingMarkRepo simulates a concurrent signup consuming the record between
// the lookup and the conditional update.
type failingMarkRepo struct {
	*memory.PreRegistrationRepository
}

func (r failingMarkRepo) MarkRegistered(context.Context, string, time.Time) error {
	return domain.ErrPreRegistrationNotFound
}

func TestAuthService_Signup_RollsBackUserWhenRecordTaken(t *testing.T) {
	f := newAuthFixture(t)
	f.svc.preRegs = failingMarkRepo{f.preRegs}

	_, err := f.svc.Signup(context.Background(), ashaSignup())
	if !errors.Is(err, domain.ErrNotPreRegistered) {
		t.Fatalf("expected ErrNotPreRegistered, got %v", err)
	}
	if _, err := f.users.FindByEmail(context.Background(), "asha@campus.edu"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user should have been removed, got %v", err)
	}
}

func TestAuthService_Signup_ConcurrentOnlyOneWins(t *testing.T) {
	f := newAuthFixture(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Signup(context.Background(), ashaSignup()); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly one successful signup, got %d", success)
	}
	users, _ := f.users.List(context.Background(), domain.RoleStudent)
	if len(users) != 1 {
		t.Fatalf("expected one user, got %d", len(users))
	}
}

func TestAuthService_Signup_RoleSpecificFields(t *testing.T) {
	f := newAuthFixture(t)
	f.preRegister(t, &domain.PreRegistration{
		FullName:   "Dr. Ravi",
		Email:      "ravi@campus.edu",
		Role:       domain.RoleFaculty,
		RoleFields: domain.RoleFields{FacultyID: "F-12", Department: "ECE", Designation: "Professor"},
	})
	f.preRegister(t, &domain.PreRegistration{
		FullName:   "Meera",
		Email:      "meera@alumni.org",
		Role:       domain.RoleAlumni,
		RoleFields: domain.RoleFields{AlumniID: "AL-2019-7", GraduationYear: "2019"},
	})

	fac, err := f.svc.Signup(context.Background(), ports.SignupInput{
		Email: "ravi@campus.edu", Password: "password", Role: domain.RoleFaculty,
		Fields: domain.RoleFields{FacultyID: "F-12", Department: "ECE"},
	})
	if err != nil {
		t.Fatalf("faculty signup: %v", err)
	}
	if fac.User.Designation != "Professor" {
		t.Errorf("designation should be copied from pre-registration, got %q", fac.User.Designation)
	}

	_, err = f.svc.Signup(context.Background(), ports.SignupInput{
		Email: "meera@alumni.org", Password: "password", Role: domain.RoleAlumni,
		Fields: domain.RoleFields{AlumniID: "AL-2019-7", GraduationYear: "2020"},
	})
	var fm *domain.FieldMismatchError
	if !errors.As(err, &fm) || fm.Field != "Graduation year" {
		t.Fatalf("expected graduation year mismatch, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	signed, err := f.svc.Signup(ctx, ashaSignup())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	res, err := f.svc.Login(ctx, "ASHA@campus.edu", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.ID != signed.User.ID || res.Token == "" {
		t.Errorf("unexpected login result %+v", res)
	}

	for name, creds := range map[string][2]string{
		"wrong password": {"asha@campus.edu", "nope-nope"},
		"unknown email":  {"ghost@campus.edu", "s3cret!"},
	} {
		if _, err := f.svc.Login(ctx, creds[0], creds[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}

	if _, err := f.users.SetActive(ctx, signed.User.ID, false, time.Now()); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := f.svc.Login(ctx, "asha@campus.edu", "s3cret!"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("deactivated: expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Eligibility, password and logout
// ---------------------------------------------------------------------------

func TestAuthService_CheckEligibility(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	el, err := f.svc.CheckEligibility(ctx, "asha@campus.edu", domain.RoleStudent)
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if el.FullName != "Asha Rao" || el.Fields.StudentID != "R190001" {
		t.Errorf("unexpected eligibility %+v", el)
	}

	if _, err := f.svc.CheckEligibility(ctx, "asha@campus.edu", domain.RoleAlumni); !errors.Is(err, domain.ErrNotEligible) {
		t.Errorf("expected ErrNotEligible for wrong role, got %v", err)
	}

	if _, err := f.svc.Signup(ctx, ashaSignup()); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := f.svc.CheckEligibility(ctx, "asha@campus.edu", domain.RoleStudent); !errors.Is(err, domain.ErrNotEligible) {
		t.Errorf("expected ErrNotEligible after signup, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	res, _ := f.svc.Signup(ctx, ashaSignup())

	if err := f.svc.ChangePassword(ctx, res.User.ID, "wrong", "newpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := f.svc.ChangePassword(ctx, res.User.ID, "s3cret!", "123"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := f.svc.ChangePassword(ctx, res.User.ID, "s3cret!", "newpass1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := f.svc.Login(ctx, "asha@campus.edu", "newpass1"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	res, _ := f.svc.Signup(ctx, ashaSignup())

	claims, err := f.svc.Authenticate(ctx, res.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if err := f.svc.Logout(ctx, claims); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, res.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected revoked token to fail, got %v", err)
	}

	other, _ := f.svc.Login(ctx, "asha@campus.edu", "s3cret!")
	if _, err := f.svc.Authenticate(ctx, other.Token); err != nil {
		t.Fatalf("a fresh token should still work: %v", err)
	}
}

func TestAuthService_AuthenticateRejectsDeactivatedAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	res, err := f.svc.Signup(ctx, ashaSignup())
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, err := f.users.SetActive(ctx, res.User.ID, false, time.Now()); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, res.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected token of a deactivated account to fail, got %v", err)
	}

	if _, err := f.users.SetActive(ctx, res.User.ID, true, time.Now()); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, res.Token); err != nil {
		t.Fatalf("expected token to work again after reactivation, got %v", err)
	}
}

type brokenDenylist struct{}

func (brokenDenylist) Revoke(context.Context, string, time.Duration) error {
	return fmt.Errorf("redis down")
}

func (brokenDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, fmt.Errorf("redis down")
}

func TestAuthService_AuthenticateFailsOpenOnDenylistOutage(t *testing.T) {
	f := newAuthFixture(t)
	res, _ := f.svc.Signup(context.Background(), ashaSignup())
	f.svc.denylist = brokenDenylist{}

	if _, err := f.svc.Authenticate(context.Background(), res.Token); err != nil {
		t.Fatalf("expected token to be accepted, got %v", err)
	}
}
