// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned when the supplied password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotConfigured is returned when no operator password hash is configured.
	ErrNotConfigured = errors.New("operator credentials not configured")
)
