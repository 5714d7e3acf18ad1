package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	usererrors "github.com/Mthinuay/SingularXpress/internal/user/errors"
)

type fakeUserRepo struct {
	createFn            func(ctx context.Context, u *User) error
	findAllFn           func(ctx context.Context) ([]User, error)
	findByIDFn          func(ctx context.Context, id uuid.UUID) (*User, error)
	findByEmailFn       func(ctx context.Context, email string) (*User, error)
	existsByEmailFn     func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	updateFn            func(ctx context.Context, u *User) error
	deleteFn            func(ctx context.Context, id uuid.UUID) error
	createResetTokenFn  func(ctx context.Context, token *PasswordResetToken) error
	findResetTokenFn    func(ctx context.Context, email, otp string) (*PasswordResetToken, error)
	deleteResetTokenFn  func(ctx context.Context, id int64) error
	deleteExpiredFn     func(ctx context.Context, before time.Time) error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *User) error { return f.createFn(ctx, u) }
func (f *fakeUserRepo) FindAll(ctx context.Context) ([]User, error) {
	return f.findAllFn(ctx)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	return f.existsByEmailFn(ctx, email, excludeID)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *User) error { return f.updateFn(ctx, u) }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeUserRepo) CreateResetToken(ctx context.Context, token *PasswordResetToken) error {
	return f.createResetTokenFn(ctx, token)
}
func (f *fakeUserRepo) FindResetToken(ctx context.Context, email, otp string) (*PasswordResetToken, error) {
	return f.findResetTokenFn(ctx, email, otp)
}
func (f *fakeUserRepo) DeleteResetToken(ctx context.Context, id int64) error {
	return f.deleteResetTokenFn(ctx, id)
}
func (f *fakeUserRepo) DeleteExpiredResetTokens(ctx context.Context, before time.Time) error {
	if f.deleteExpiredFn != nil {
		return f.deleteExpiredFn(ctx, before)
	}
	return nil
}

type fakeMailer struct {
	resetEmails        int
	confirmationEmails int
	lastOTP            string
	err                error
}

func (f *fakeMailer) SendPasswordResetEmail(ctx context.Context, email, otp string) error {
	f.resetEmails++
	f.lastOTP = otp
	return f.err
}

func (f *fakeMailer) SendPasswordResetConfirmation(ctx context.Context, email string) error {
	f.confirmationEmails++
	return f.err
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func testUser(t *testing.T, password string) *User {
	return &User{
		ID:           uuid.New(),
		UserName:     "thandi.smith",
		Email:        "thandi.smith@singular.co.za",
		PasswordHash: hashPassword(t, password),
		FirstName:    "Thandi",
		LastName:     "Smith",
		CreatedOn:    time.Now().Add(-24 * time.Hour),
	}
}

func TestService_Login_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := testUser(t, "Str0ng!Pass")
	u.FailedLoginAttempts = 2

	var updated *User
	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			assert.Equal(t, u.Email, email)
			return u, nil
		},
		updateFn: func(ctx context.Context, user *User) error {
			updated = user
			return nil
		},
	}

	svc := NewService(repo, &fakeMailer{}, zap.NewNop())
	access, refresh, resp, err := svc.Login(context.Background(), u.Email, "Str0ng!Pass")
	require.NoError(t, err)

	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, u.ID.String(), resp.ID)
	assert.Equal(t, u.Email, resp.Email)

	require.NotNil(t, updated)
	assert.Zero(t, updated.FailedLoginAttempts)
	assert.Nil(t, updated.LockoutEnd)
}

func TestService_Login_WrongPasswordCountsDown(t *testing.T) {
	u := testUser(t, "Str0ng!Pass")

	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) { return u, nil },
		updateFn:      func(ctx context.Context, user *User) error { return nil },
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), u.Email, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 attempt(s) remaining")
	assert.Equal(t, 1, u.FailedLoginAttempts)

	_, _, _, err = svc.Login(context.Background(), u.Email, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 attempt(s) remaining")
	assert.Equal(t, 2, u.FailedLoginAttempts)
}

func TestService_Login_ThirdFailureLocksAccount(t *testing.T) {
	u := testUser(t, "Str0ng!Pass")
	u.FailedLoginAttempts = 2

	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) { return u, nil },
		updateFn:      func(ctx context.Context, user *User) error { return nil },
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), u.Email, "wrong")
	require.ErrorIs(t, err, usererrors.ErrAccountLocked)

	assert.Equal(t, 3, u.FailedLoginAttempts)
	require.NotNil(t, u.LockoutEnd)
	assert.WithinDuration(t, time.Now().Add(lockoutDuration), *u.LockoutEnd, 2*time.Second)
}

func TestService_Login_RejectedWhileLocked(t *testing.T) {
	u := testUser(t, "Str0ng!Pass")
	u.FailedLoginAttempts = 3
	lockedUntil := time.Now().Add(3*time.Minute + 15*time.Second)
	u.LockoutEnd = &lockedUntil

	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) { return u, nil },
		updateFn: func(ctx context.Context, user *User) error {
			t.Fatal("locked account must not be updated")
			return nil
		},
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	// Password yang benar pun ditolak selama akun terkunci.
	_, _, _, err := svc.Login(context.Background(), u.Email, "Str0ng!Pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Account locked. Please try again in 3 minutes")
}

func TestService_Login_ExpiredLockoutAllowsRetry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := testUser(t, "Str0ng!Pass")
	u.FailedLoginAttempts = 3
	expired := time.Now().Add(-time.Minute)
	u.LockoutEnd = &expired

	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) { return u, nil },
		updateFn:      func(ctx context.Context, user *User) error { return nil },
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), u.Email, "Str0ng!Pass")
	require.NoError(t, err)
	assert.Zero(t, u.FailedLoginAttempts)
	assert.Nil(t, u.LockoutEnd)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), "ghost@singular.co.za", "whatever")
	require.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
}

func TestService_ForgotPassword_KnownEmail(t *testing.T) {
	u := testUser(t, "Str0ng!Pass")
	mailer := &fakeMailer{}

	var created *PasswordResetToken
	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) { return u, nil },
		createResetTokenFn: func(ctx context.Context, token *PasswordResetToken) error {
			created = token
			return nil
		},
	}
	svc := NewService(repo, mailer, zap.NewNop())

	message, err := svc.ForgotPassword(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, forgotPasswordMessage, message)

	require.NotNil(t, created)
	assert.Equal(t, u.Email, created.Email)
	assert.Len(t, created.OTP, 4)
	assert.WithinDuration(t, time.Now().Add(otpExpiry), created.ExpiresAt, 2*time.Second)

	assert.Equal(t, 1, mailer.resetEmails)
	assert.Equal(t, created.OTP, mailer.lastOTP)
}

func TestService_ForgotPassword_UnknownEmailStaysSilent(t *testing.T) {
	mailer := &fakeMailer{}
	repo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createResetTokenFn: func(ctx context.Context, token *PasswordResetToken) error {
			t.Fatal("no reset token expected for unknown email")
			return nil
		},
	}
	svc := NewService(repo, mailer, zap.NewNop())

	message, err := svc.ForgotPassword(context.Background(), "ghost@singular.co.za")
	require.NoError(t, err)
	assert.Equal(t, forgotPasswordMessage, message)
	assert.Zero(t, mailer.resetEmails)
}

func TestService_VerifyOTP_ValidTokenIsConsumed(t *testing.T) {
	token := &PasswordResetToken{
		ID:        9,
		Email:     "thandi.smith@singular.co.za",
		OTP:       "0421",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	var deletedID int64
	repo := &fakeUserRepo{
		findResetTokenFn: func(ctx context.Context, email, otp string) (*PasswordResetToken, error) {
			assert.Equal(t, token.Email, email)
			assert.Equal(t, token.OTP, otp)
			return token, nil
		},
		deleteResetTokenFn: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	resp, err := svc.VerifyOTP(context.Background(), token.Email, token.OTP)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "OTP is valid.", resp.Message)
	assert.Equal(t, token.ID, deletedID)
}

func TestService_VerifyOTP_Expired(t *testing.T) {
	token := &PasswordResetToken{
		ID:        9,
		Email:     "thandi.smith@singular.co.za",
		OTP:       "0421",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	var deletedID int64
	repo := &fakeUserRepo{
		findResetTokenFn: func(ctx context.Context, email, otp string) (*PasswordResetToken, error) {
			return token, nil
		},
		deleteResetTokenFn: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	_, err := svc.VerifyOTP(context.Background(), token.Email, token.OTP)
	require.ErrorIs(t, err, usererrors.ErrInvalidOTP)
	assert.Equal(t, token.ID, deletedID)
}

func TestService_VerifyOTP_WrongCode(t *testing.T) {
	repo := &fakeUserRepo{
		findResetTokenFn: func(ctx context.Context, email, otp string) (*PasswordResetToken, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	_, err := svc.VerifyOTP(context.Background(), "thandi.smith@singular.co.za", "9999")
	require.ErrorIs(t, err, usererrors.ErrInvalidOTP)
}

func TestService_UpdatePassword(t *testing.T) {
	t.Run("weak password rejected", func(t *testing.T) {
		u := testUser(t, "Str0ng!Pass")
		repo := &fakeUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*User, error) { return u, nil },
		}
		svc := NewService(repo, &fakeMailer{}, zap.NewNop())

		_, err := svc.UpdatePassword(context.Background(), u.Email, "short")
		require.ErrorIs(t, err, usererrors.ErrWeakPassword)
	})

	t.Run("same password rejected", func(t *testing.T) {
		u := testUser(t, "Str0ng!Pass")
		repo := &fakeUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*User, error) { return u, nil },
		}
		svc := NewService(repo, &fakeMailer{}, zap.NewNop())

		_, err := svc.UpdatePassword(context.Background(), u.Email, "Str0ng!Pass")
		require.ErrorIs(t, err, usererrors.ErrSamePassword)
	})

	t.Run("success rehashes and confirms", func(t *testing.T) {
		u := testUser(t, "Str0ng!Pass")
		oldHash := u.PasswordHash
		mailer := &fakeMailer{}

		repo := &fakeUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*User, error) { return u, nil },
			updateFn:      func(ctx context.Context, user *User) error { return nil },
		}
		svc := NewService(repo, mailer, zap.NewNop())

		message, err := svc.UpdatePassword(context.Background(), u.Email, "N3w!Passw0rd")
		require.NoError(t, err)
		assert.Equal(t, "Password updated successfully.", message)

		assert.NotEqual(t, oldHash, u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("N3w!Passw0rd")))
		assert.NotNil(t, u.ModifiedOn)
		assert.Equal(t, 1, mailer.confirmationEmails)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := &fakeUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(repo, &fakeMailer{}, zap.NewNop())

		_, err := svc.UpdatePassword(context.Background(), "ghost@singular.co.za", "N3w!Passw0rd")
		require.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestService_Create(t *testing.T) {
	validReq := func() CreateUserRequest {
		return CreateUserRequest{
			UserName:  "lindiwe.dube",
			Email:     "lindiwe.dube@singular.co.za",
			Password:  "Str0ng!Pass",
			FirstName: "Lindiwe",
			LastName:  "Dube",
		}
	}

	t.Run("success", func(t *testing.T) {
		var created *User
		repo := &fakeUserRepo{
			existsByEmailFn: func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
				assert.Equal(t, uuid.Nil, excludeID)
				return false, nil
			},
			createFn: func(ctx context.Context, u *User) error {
				created = u
				return nil
			},
		}
		svc := NewService(repo, &fakeMailer{}, zap.NewNop())

		resp, err := svc.Create(context.Background(), validReq())
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.NotEqual(t, "Str0ng!Pass", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("Str0ng!Pass")))
		assert.Equal(t, created.ID.String(), resp.ID)
		assert.Equal(t, "lindiwe.dube@singular.co.za", resp.Email)
	})

	t.Run("wrong domain rejected", func(t *testing.T) {
		repo := &fakeUserRepo{
			createFn: func(ctx context.Context, u *User) error {
				t.Fatal("create must not be called")
				return nil
			},
		}
		svc := NewService(repo, &fakeMailer{}, zap.NewNop())

		req := validReq()
		req.Email = "lindiwe.dube@gmail.com"
		_, err := svc.Create(context.Background(), req)
		require.ErrorIs(t, err, usererrors.ErrInvalidEmailDomain)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{}, &fakeMailer{}, zap.NewNop())

		req := validReq()
		req.Password = "password"
		_, err := svc.Create(context.Background(), req)
		require.ErrorIs(t, err, usererrors.ErrWeakPassword)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo := &fakeUserRepo{
			existsByEmailFn: func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
				return true, nil
			},
			createFn: func(ctx context.Context, u *User) error {
				t.Fatal("create must not be called")
				return nil
			},
		}
		svc := NewService(repo, &fakeMailer{}, zap.NewNop())

		_, err := svc.Create(context.Background(), validReq())
		require.ErrorIs(t, err, usererrors.ErrEmailAlreadyRegistered)
	})
}

func TestService_Update_EmailConflictExcludesSelf(t *testing.T) {
	u := testUser(t, "Str0ng!Pass")

	repo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) {
			assert.Equal(t, u.ID, id)
			return u, nil
		},
		existsByEmailFn: func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
			assert.Equal(t, u.ID, excludeID)
			return false, nil
		},
		updateFn: func(ctx context.Context, user *User) error { return nil },
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	resp, err := svc.Update(context.Background(), u.ID.String(), UpdateUserRequest{
		UserName:  "thandi.s",
		Email:     u.Email,
		FirstName: "Thandi",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "thandi.s", resp.UserName)
	assert.NotNil(t, u.ModifiedOn)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := &fakeUserRepo{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &fakeMailer{}, zap.NewNop())

	err := svc.Delete(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestService_GetByID_InvalidUUID(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, &fakeMailer{}, zap.NewNop())

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is invalid")
}
