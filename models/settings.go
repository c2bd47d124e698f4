package models

import "time"

type AuthMethod string

const (
	AuthNone     AuthMethod = "none"
	AuthPIN      AuthMethod = "pin"
	AuthPassword AuthMethod = "password"
)

// AppSettings is the process-wide singleton settings document. Credentials are
// stored as bcrypt hashes; the plain PIN/password never reaches the store.
type AppSettings struct {
	ID           string     `bson:"_id" json:"id"`
	Language     string     `bson:"language" json:"language"`
	Theme        string     `bson:"theme" json:"theme"`
	AuthMethod   AuthMethod `bson:"auth_method" json:"auth_method"`
	PINHash      string     `bson:"pin_hash,omitempty" json:"-"`
	PINLength    int        `bson:"pin_length" json:"pin_length"`
	PasswordHash string     `bson:"password_hash,omitempty" json:"-"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// UserProfile is the singleton profile document, kept separate from settings
// so backup and reset can treat identity and credentials independently.
type UserProfile struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	PhotoURL  string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Fixed document ids inside the settings collection.
const (
	SettingsDocID = "app_settings"
	ProfileDocID  = "user_profile"
)
