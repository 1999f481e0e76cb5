package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// operatorSubject はJWTのsubクレームに設定される識別子です。
// 単一オペレーター構成のため固定値です。
const operatorSubject = "operator"

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたサブジェクトの署名済みJWTトークンを生成します。
	GenerateToken(subject string) (string, error)
}

// authUsecase は単一オペレーターの認証ビジネスロジックを実装します。
// 認証情報は環境から注入されるbcryptハッシュ1件のみで、ユーザーストレージは持ちません。
type authUsecase struct {
	passwordHash string
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// passwordHashはオペレーターパスワードのbcryptハッシュです。
func NewAuthUsecase(passwordHash string, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		passwordHash: passwordHash,
		jwtGenerator: jwtGenerator,
	}
}

// Login はオペレーターを認証し、成功時にJWTトークンを返します。
// ハッシュが未設定の場合はErrNotConfigured、パスワード不一致の場合は
// ErrInvalidCredentialsを返します。
func (u *authUsecase) Login(ctx context.Context, password string) (string, error) {
	if u.passwordHash == "" {
		return "", ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return u.jwtGenerator.GenerateToken(operatorSubject)
}
