package user

import (
	"sort"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
)

func newUserWithPassword(pwd string) NewUser {
	return NewUser{
		Username:        "frodo",
		Name:            "Frodo Baggins",
		Email:           "frodo@test.cd",
		Role:            RoleStudent,
		Password:        pwd,
		PasswordConfirm: pwd,
	}
}

func passwordTag(t *testing.T, err error) string {
	t.Helper()

	if err == nil {
		return ""
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("err = %T(%v); want validator.ValidationErrors", err, err)
	}
	for _, vErr := range vErrs {
		if vErr.Field() == "password" {
			return vErr.Tag()
		}
	}
	return ""
}

func TestPasswordPolicy(t *testing.T) {
	commonPasswords = append(commonPasswords, "academia123!")
	sort.Strings(commonPasswords)

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "pwd", wantTag: pwdMinLenTag},
		{name: "whitespace", pwd: "G4nd alf!", wantTag: pwdNoSpaceTag},
		{name: "all numeric", pwd: "93846512", wantTag: pwdNotAllNumTag},
		{name: "no digit or special", pwd: "Gandalfgrey", wantTag: pwdComplexityTag},
		{name: "similar to name", pwd: "Frodo!Baggins1", wantTag: pwdAttrSimTag},
		{name: "common password", pwd: "Academia123!", wantTag: pwdNoCommonTag},
		{name: "passes", pwd: "G4ndalf!Grey", wantTag: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.Validate.Struct(newUserWithPassword(tt.pwd))
			if tag := passwordTag(t, err); tag != tt.wantTag {
				t.Errorf("password tag = %q; want %q", tag, tt.wantTag)
			}
		})
	}
}
