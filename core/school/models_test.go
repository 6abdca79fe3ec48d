package school

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/muziki/core"
)

func Test_Credentials_password(t *testing.T) {
	var c Credentials
	assert.NoError(t, c.SetPassword("s3cret"))
	assert.NotEmpty(t, c.PasswordHash)
	assert.NotEqual(t, "s3cret", string(c.PasswordHash))

	assert.NoError(t, c.CheckPassword("s3cret"))
	assert.Error(t, c.CheckPassword("wrong"))
}

func Test_NewRegistration_Validate(t *testing.T) {
	validate, _ := core.NewValidator()

	tests := []struct {
		name    string
		reg     NewRegistration
		wantErr error
	}{
		{name: "both missing reports username first", reg: NewRegistration{}, wantErr: ErrUsernameRequired},
		{name: "missing username", reg: NewRegistration{Password: "s3cret"}, wantErr: ErrUsernameRequired},
		{name: "missing password", reg: NewRegistration{Username: "bob"}, wantErr: ErrPasswordRequired},
		{name: "blank username is missing", reg: NewRegistration{Username: "   ", Password: "s3cret"}, wantErr: ErrUsernameRequired},
		{name: "ok", reg: NewRegistration{Username: "bob", Password: "s3cret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate(validate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr.Error())
		})
	}
}

func Test_NewRegistration_Validate_cleansUsername(t *testing.T) {
	validate, _ := core.NewValidator()

	reg := NewRegistration{Username: "  bob  ", Password: "s3cret"}
	assert.NoError(t, reg.Validate(validate))
	assert.Equal(t, "bob", reg.Username)
}
