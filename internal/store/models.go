package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the credential store record. VerificationToken holds the single
// active email-verification token and is cleared when it is consumed.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID                uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username          string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email             string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash      string     `bun:"password_hash,notnull" json:"-"`
	EmailVerified     bool       `bun:"is_email_verified" json:"is_email_verified"`
	VerificationToken *string    `bun:"verification_token,nullzero" json:"-"`
	CreatedAt         *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt         *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Project is an email-collection list owned by a user.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:prj"`

	ID          uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID      uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User        *User      `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Name        string     `bun:"name,notnull" json:"name,omitempty"`
	Description string     `bun:"description" json:"description,omitempty"`
	CreatedAt   *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// ProjectEmail is a collected address. (project_id, email) is unique.
type ProjectEmail struct {
	bun.BaseModel `bun:"table:project_emails,alias:pem"`

	ID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ProjectID uuid.UUID  `bun:"project_id,notnull,type:uuid" json:"project_id,omitempty"`
	Project   *Project   `bun:"rel:belongs-to,join:project_id=id" json:"-"`
	Email     string     `bun:"email,notnull" json:"email,omitempty"`
	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
