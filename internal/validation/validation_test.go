package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid username", username: "gandalf", wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "whitespace only", username: "   ", wantErr: true},
		{name: "too short", username: "ab", wantErr: true},
		{name: "minimum length", username: "abc", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "hunter2", wantErr: false},
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "abc", wantErr: true},
		{name: "minimum length", password: "abcd", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "frodo@shire.example", wantErr: false},
		{name: "empty is allowed", email: "", wantErr: false},
		{name: "missing domain", email: "frodo@", wantErr: true},
		{name: "missing at sign", email: "frodo.shire.example", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}
