package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
)

// MinPasswordLength is the shortest password registration accepts
const MinPasswordLength = 8

// RegisterInput is what a new local account supplies
type RegisterInput struct {
	Email    string
	Password string
	RoleID   int
	FullName string
	Username string
}

// GoogleUserInfo is the subset of the Google userinfo response used for sign-in
type GoogleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserService handles accounts, credentials and admin changes to users
type UserService struct {
	db     *gorm.DB
	audit  *AuditLogger
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewUserService wires a UserService
func NewUserService(db *gorm.DB, audit *AuditLogger, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{db: db, audit: audit, hasher: hasher, tokens: tokens}
}

var errBadCredentials = apperror.Unauthenticated("email or password is incorrect")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active recruiter or job seeker account.
func (s *UserService) Register(in RegisterInput) (model.User, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, apperror.Validation("email", "email is not valid")
	}
	if len(in.Password) < MinPasswordLength {
		return model.User{}, apperror.Validation("password", "password should be at least %d characters", MinPasswordLength)
	}
	role, ok := model.ParseRole(in.RoleID)
	if !ok || role == model.RoleAdmin {
		return model.User{}, apperror.Validation("roleId", "roleId must be %d (recruiter) or %d (job seeker)", model.RoleRecruiter, model.RoleJobSeeker)
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = email
	}

	var taken int64
	if err := s.db.Model(&model.User{}).Where("email = ? OR username = ?", email, username).Count(&taken).Error; err != nil {
		return model.User{}, apperror.Internal(err, "failed to check existing user")
	}
	if taken > 0 {
		return model.User{}, apperror.Conflict("email or username already exists")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, apperror.Internal(err, "failed to hash password")
	}

	user := model.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
		FullName: strings.TrimSpace(in.FullName),
		Active:   true,
	}
	if err := s.create(&user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// create inserts user plus an empty profile for job seekers in one transaction.
func (s *UserService) create(user *model.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(user).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperror.Conflict("email or username already exists")
			}
			return apperror.Internal(err, "failed to create user")
		}
		if user.Role == model.RoleJobSeeker {
			if err := tx.Create(&model.JobSeekerProfile{UserID: user.ID}).Error; err != nil {
				return apperror.Internal(err, "failed to create profile")
			}
		}
		return nil
	})
}

// Login checks credentials and issues an access token. Unknown email, wrong
// password and inactive account all get the same answer.
func (s *UserService) Login(email, password string) (model.LoginResponse, error) {
	var user model.User
	if err := s.db.Take(&user, "email = ?", normalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.LoginResponse{}, errBadCredentials
		}
		return model.LoginResponse{}, apperror.Internal(err, "failed to load user")
	}
	if user.Password == "" || !s.hasher.Verify(user.Password, password) || !user.Active {
		return model.LoginResponse{}, errBadCredentials
	}
	return s.issue(user)
}

func (s *UserService) issue(user model.User) (model.LoginResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.LoginResponse{}, apperror.Internal(err, "failed to generate access token")
	}
	return model.LoginResponse{AccessToken: token, UserID: user.ID, RoleID: user.Role}, nil
}

// GoogleLogin signs in the user linked to a Google account. An unknown
// account is linked by email, or registered as a job seeker.
func (s *UserService) GoogleLogin(info GoogleUserInfo) (model.LoginResponse, bool, error) {
	if info.ID == "" || info.Email == "" {
		return model.LoginResponse{}, false, apperror.Validation("code", "google account information is incomplete")
	}
	email := normalizeEmail(info.Email)

	var user model.User
	err := s.db.Where("google_id = ?", info.ID).Or("email = ?", email).Order("google_id IS NULL").Take(&user).Error
	switch {
	case err == nil:
		if !user.Active {
			return model.LoginResponse{}, false, apperror.Unauthenticated("account is deactivated")
		}
		if user.GoogleID == nil {
			if err := s.db.Model(&user).Update("google_id", info.ID).Error; err != nil {
				return model.LoginResponse{}, false, apperror.Internal(err, "failed to link google account")
			}
		}
		resp, err := s.issue(user)
		return resp, false, err

	case errors.Is(err, gorm.ErrRecordNotFound):
		googleID := info.ID
		user = model.User{
			Username: email,
			Email:    email,
			GoogleID: &googleID,
			Role:     model.RoleJobSeeker,
			FullName: info.Name,
			Active:   true,
		}
		if err := s.create(&user); err != nil {
			return model.LoginResponse{}, false, err
		}
		resp, err := s.issue(user)
		return resp, true, err

	default:
		return model.LoginResponse{}, false, apperror.Internal(err, "failed to load user")
	}
}

// Get returns a user by id
func (s *UserService) Get(id uuid.UUID) (model.User, error) {
	var user model.User
	if err := s.db.Take(&user, "id = ?", id).Error; err != nil {
		return user, storeError(err, "user %s not found", id)
	}
	return user, nil
}

// UpdateRole changes a user's role. Admin only, audited; an admin cannot change their own role.
func (s *UserService) UpdateRole(actor model.Actor, userID uuid.UUID, roleID int) (model.User, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return model.User{}, err
	}
	role, ok := model.ParseRole(roleID)
	if !ok {
		return model.User{}, apperror.Validation("roleId", "unknown role %d", roleID)
	}
	if userID == actor.UserID {
		return model.User{}, apperror.Validation("id", "admins cannot change their own role")
	}

	var user model.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&user, "id = ?", userID).Error; err != nil {
			return storeError(err, "user %s not found", userID)
		}
		if err := tx.Model(&user).Update("role", role).Error; err != nil {
			return apperror.Internal(err, "failed to update role")
		}
		user.Role = role
		if role == model.RoleJobSeeker {
			profile := model.JobSeekerProfile{UserID: user.ID}
			if err := tx.Where(model.JobSeekerProfile{UserID: user.ID}).FirstOrCreate(&profile).Error; err != nil {
				return apperror.Internal(err, "failed to create profile")
			}
		}
		return s.audit.Record(tx, model.AuditEntityUser, user.ID, model.AuditActionRoleChanged, actor.UserID)
	})
	return user, err
}

// SetActive activates or deactivates a user. Admin only, audited; an admin cannot deactivate themselves.
func (s *UserService) SetActive(actor model.Actor, userID uuid.UUID, active bool) (model.User, error) {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return model.User{}, err
	}
	if userID == actor.UserID && !active {
		return model.User{}, apperror.Validation("id", "admins cannot deactivate themselves")
	}

	action := model.AuditActionDeactivated
	if active {
		action = model.AuditActionActivated
	}

	var user model.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&user, "id = ?", userID).Error; err != nil {
			return storeError(err, "user %s not found", userID)
		}
		if err := tx.Model(&user).Update("active", active).Error; err != nil {
			return apperror.Internal(err, "failed to update user")
		}
		user.Active = active
		return s.audit.Record(tx, model.AuditEntityUser, user.ID, action, actor.UserID)
	})
	return user, err
}

// EnsureAdmin creates an admin with the given credentials when no admin exists.
// It reports whether one was created.
func (s *UserService) EnsureAdmin(email, password string) (bool, error) {
	if email == "" || password == "" {
		log.Info("Admin email or password not set, skipping admin creation")
		return false, nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return false, apperror.Internal(err, "failed to count admins")
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.CreateAdmin("", email, password); err != nil {
		return false, err
	}
	log.WithField("email", email).Info("Bootstrap admin created")
	return true, nil
}

// CreateAdmin inserts an active admin account. An empty username defaults to the email.
func (s *UserService) CreateAdmin(username, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, apperror.Validation("email", "email is not valid")
	}
	if len(password) < MinPasswordLength {
		return model.User{}, apperror.Validation("password", "password should be at least %d characters", MinPasswordLength)
	}
	if username = strings.TrimSpace(username); username == "" {
		username = email
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, apperror.Internal(err, "failed to hash password")
	}
	admin := model.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     model.RoleAdmin,
		FullName: "Administrator",
		Active:   true,
	}
	if err := s.create(&admin); err != nil {
		return model.User{}, err
	}
	return admin, nil
}
