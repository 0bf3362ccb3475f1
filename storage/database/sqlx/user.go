package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/user"
)

const userCols = `id, username, name, email, role, password_hash, created_at, updated_at, last_login`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	excludedIDs := make([]int, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		excludedIDs = append(excludedIDs, usr.ID)
	}

	check := func(col, val string, sentinel error) error {
		query := `SELECT EXISTS (SELECT 1 FROM "user" WHERE ` + col + ` = ? AND id NOT IN (?))`
		query, args, err := sqlx.In(query, val, exclOrZero(excludedIDs))
		if err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
		var exists bool
		if err = repo.db.Get(&exists, repo.db.Rebind(query), args...); err != nil {
			return errors.Wrap(err, "checking uniqueness")
		}
		if exists {
			return sentinel
		}
		return nil
	}

	if err := check("username", username, user.ErrUsernameExists); err != nil {
		return err
	}
	return check("email", email, user.ErrEmailExists)
}

// exclOrZero keeps sqlx.In happy when there is nothing to exclude.
func exclOrZero(ids []int) []int {
	if len(ids) == 0 {
		return []int{0}
	}
	return ids
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	query := `
INSERT INTO "user" (username, name, email, role, password_hash, created_at, updated_at, last_login)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userCols
	err := repo.db.Get(
		&usr, query,
		usr.Username, usr.Name, usr.Email, usr.Role, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	)
	return usr, errors.Wrap(err, "creating user")
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	users := make([]user.User, 0)
	err := repo.db.Select(&users, `SELECT `+userCols+` FROM "user" ORDER BY id`)
	return users, errors.Wrap(err, "querying users")
}

func (repo *userRepository) QueryUsersByRole(role string) ([]user.User, error) {
	users := make([]user.User, 0)
	err := repo.db.Select(&users, `SELECT `+userCols+` FROM "user" WHERE role = $1 ORDER BY id`, role)
	return users, errors.Wrap(err, "querying users by role")
}

func (repo *userRepository) getUserBy(where string, args ...interface{}) (user.User, error) {
	var usr user.User
	err := repo.db.Get(&usr, `SELECT `+userCols+` FROM "user" WHERE `+where, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usr, user.ErrNotFound
		}
		return usr, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	return repo.getUserBy("id = $1", id)
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getUserBy("email = $1", email)
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	return repo.getUserBy("username = $1 OR email = $1", username)
}

func (repo *userRepository) UpdateUser(id int, patch user.Patch) (user.User, error) {
	query := `
UPDATE "user"
SET username      = COALESCE($2, username),
    name          = COALESCE($3, name),
    email         = COALESCE($4, email),
    role          = COALESCE($5, role),
    password_hash = COALESCE($6, password_hash),
    last_login    = COALESCE($7, last_login),
    updated_at    = NOW()
WHERE id = $1
RETURNING ` + userCols
	var usr user.User
	err := repo.db.Get(
		&usr, query, id,
		patch.Username, patch.Name, patch.Email, patch.Role, patch.PasswordHash, patch.LastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usr, user.ErrNotFound
		}
		return usr, errors.Wrap(err, "updating user")
	}
	return usr, nil
}

func (repo *userRepository) DeleteUser(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM "user" WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "deleting user")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "deleting user")
	}
	return n > 0, nil
}
