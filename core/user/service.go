package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")
)

type Repository interface {
	CheckUsernameUniqueness(username, email string, excludedUsers ...User) error
	CreateUser(usr User) (User, error)
	QueryAllUsers() ([]User, error)
	QueryUsersByRole(role string) ([]User, error)
	GetUserByID(id int) (User, error)
	GetUserByEmail(email string) (User, error)
	GetUserByUsernameOrEmail(username string) (User, error)
	UpdateUser(id int, patch Patch) (User, error)
	DeleteUser(id int) (bool, error)
}

type Service struct {
	repo    Repository
	mailSvc core.EmailService
}

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) CheckUniqueness(uname, email string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(uname, email, exclUsers...); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Username:  nu.Username,
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Welcome to " + core.Conf.AppName,
		Body: fmt.Sprintf(
			"Hi %s,\n\nAn account has been created for you (username: %s, role: %s).\n"+
				"You can log in at %s.\n", usr.Name, usr.Username, usr.Role, core.Conf.Server.Address()),
	})
	return usr, nil
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) QueryByRole(role string) ([]User, error) {
	return svc.repo.QueryUsersByRole(role)
}

func (svc *Service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) GetByUsernameOrEmail(uname string) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(core.CleanString(uname, true /* lower */))
}

func (svc *Service) Update(id int, uu UpdateUser) (User, error) {
	patch := Patch{
		Username: uu.Username,
		Name:     uu.Name,
		Email:    uu.Email,
		Role:     uu.Role,
	}
	if uu.Password != "" {
		var tmp User
		if err := tmp.SetPassword(uu.Password); err != nil {
			return User{}, errors.Wrap(err, "hashing password")
		}
		patch.PasswordHash = tmp.PasswordHash
	}
	return svc.repo.UpdateUser(id, patch)
}

func (svc *Service) Delete(id int) (bool, error) {
	return svc.repo.DeleteUser(id)
}

func (svc *Service) SetLastLogin(usr User) (User, error) {
	now := time.Now().UTC()
	return svc.repo.UpdateUser(usr.ID, Patch{LastLogin: &now})
}

// RequestPasswordReset emails a one-time reset link to the account matching
// the given email address.
func (svc *Service) RequestPasswordReset(email string) error {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		return err
	}

	token := makeToken(usr)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Password Reset",
		Body: fmt.Sprintf(
			"Hi %s,\n\nUse the following credentials to reset your password:\n\nuid: %s\ntoken: %s\n",
			usr.Name, EncodeUID(usr), token),
	})
	return nil
}

func (svc *Service) ResetPassword(rp ResetUserPassword) error {
	id, err := decodeUID(rp.UID)
	if err != nil {
		return errInvalidToken
	}
	usr, err := svc.GetByID(id)
	if err != nil {
		return err
	}
	if err = verifyToken(usr, rp.Token); err != nil {
		return core.NewValidationError(err)
	}

	if err = usr.SetPassword(rp.Password); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	_, err = svc.repo.UpdateUser(usr.ID, Patch{PasswordHash: usr.PasswordHash})
	return err
}
