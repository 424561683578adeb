package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shire-forum/shire/internal/models"
)

func TestValidateSignup(t *testing.T) {
	valid := SignupForm{
		Username:  "bilbo",
		Password:  "ring-bearer",
		Password2: "ring-bearer",
		Race:      models.RaceHobbit,
		Class:     models.ClassRanger,
		Gender:    models.GenderMale,
	}

	tests := []struct {
		name   string
		mutate func(*SignupForm)
		want   string
	}{
		{"valid", func(*SignupForm) {}, ""},
		{"everything missing", func(f *SignupForm) { *f = SignupForm{} }, ErrMissingUsername},
		{"missing password", func(f *SignupForm) { f.Password = "" }, ErrMissingPassword},
		{"mismatch wins over length", func(f *SignupForm) {
			f.Password, f.Password2 = "abc", "abd"
		}, ErrPasswordMismatch},
		{"too short", func(f *SignupForm) { f.Password, f.Password2 = "abcd", "abcd" }, ErrPasswordTooShort},
		{"exactly five", func(f *SignupForm) { f.Password, f.Password2 = "abcde", "abcde" }, ""},
		{"missing race before class", func(f *SignupForm) { f.Race, f.Class = "", "" }, ErrMissingRace},
		{"unknown race", func(f *SignupForm) { f.Race = "Orc" }, ErrUnknownRace},
		{"missing class", func(f *SignupForm) { f.Class = "" }, ErrMissingClass},
		{"unknown class", func(f *SignupForm) { f.Class = "Bard" }, ErrUnknownClass},
		{"missing gender", func(f *SignupForm) { f.Gender = "" }, ErrMissingGender},
		{"unknown gender", func(f *SignupForm) { f.Gender = "Ent" }, ErrUnknownGender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			assert.Equal(t, tt.want, ValidateSignup(form))
		})
	}
}
