package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/academia/core"
)

// Roles
const (
	RoleAdmin          = "admin"
	RoleInstructor     = "instructor"
	RoleStudent        = "student"
	RoleProjectManager = "project_manager"
	RoleEmployee       = "employee"
	RoleFinance        = "finance"
)

var (
	AllRoles = []string{RoleAdmin, RoleInstructor, RoleStudent, RoleProjectManager, RoleEmployee, RoleFinance}

	Roles = []Role{
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Instructor", Value: RoleInstructor},
		{Name: "Student", Value: RoleStudent},
		{Name: "Project Manager", Value: RoleProjectManager},
		{Name: "Employee", Value: RoleEmployee},
		{Name: "Finance", Value: RoleFinance},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login" db:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool          { return u.Role == RoleAdmin }
func (u *User) IsInstructor() bool     { return u.Role == RoleInstructor }
func (u *User) IsStudent() bool        { return u.Role == RoleStudent }
func (u *User) IsProjectManager() bool { return u.Role == RoleProjectManager }
func (u *User) IsEmployee() bool       { return u.Role == RoleEmployee }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username        string `json:"username" validate:"required,min=3,alphanum_"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required,oneof=admin instructor student project_manager employee finance"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Fields left nil are not touched.
type UpdateUser struct {
	Username        *string `json:"username" validate:"omitempty,min=3,alphanum_"`
	Name            *string `json:"name" validate:"omitempty,min=1"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Role            *string `json:"role" validate:"omitempty,oneof=admin instructor student project_manager employee finance"`
	Password        string  `json:"password" validate:"omitempty"`
	PasswordConfirm string  `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, svc *Service) error {
	uname := origUsr.Username
	if uu.Username != nil {
		*uu.Username = core.CleanString(*uu.Username, true /* lower */)
		uname = *uu.Username
	}
	if uu.Name != nil {
		*uu.Name = core.CleanString(*uu.Name)
	}
	email := origUsr.Email
	if uu.Email != nil {
		*uu.Email = core.CleanString(*uu.Email, true /* lower */)
		email = *uu.Email
	}

	if err := core.Validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uname, email, origUsr)
}

// Patch is the storage-level partial update for a User; nil fields keep the
// stored value.
type Patch struct {
	Username     *string
	Name         *string
	Email        *string
	Role         *string
	PasswordHash []byte
	LastLogin    *time.Time
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate() error { return core.Validate.Struct(rp) }
