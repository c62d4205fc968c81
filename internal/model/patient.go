package model

import "time"

// Patient represents a registered patient account as stored in the
// `patients` table. Patients authenticate with an email and password
// and own doctor bookings through the patient_id foreign key. The
// json tags are omitted because these structs are used by the
// repository layer; handlers define their own response types.
//
// Fields:
//  ID           – primary key identifier of the patient.
//  FullName     – patient's display name.
//  Email        – unique email address used for login and booking lookup.
//  PasswordHash – bcrypt hashed password.
//  Phone        – optional contact number (nullable in the schema).
//  CreatedAt    – timestamp of registration.
//  UpdatedAt    – timestamp of last update.
type Patient struct {
	ID           int64     // patients.id
	FullName     string    // patients.full_name
	Email        string    // patients.email
	PasswordHash string    // patients.password_hash
	Phone        *string   // patients.phone (nullable)
	CreatedAt    time.Time // patients.created_at
	UpdatedAt    time.Time // patients.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a patient and carries expiry and
// revocation metadata. Only the SHA‑256 hash of the raw token is
// stored.
//
// Fields:
//  ID        – primary key identifier.
//  PatientID – owner of the token.
//  TokenHash – SHA‑256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        int64      // refresh_tokens.id
	PatientID int64      // refresh_tokens.patient_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
