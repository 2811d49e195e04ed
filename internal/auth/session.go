package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/utils"
)

var (
	// ErrInvalidToken 令牌缺失、过期或签名不合法
	ErrInvalidToken = errors.New("invalid token")
	// ErrBadCredentials 登录凭据不正确
	ErrBadCredentials = errors.New("bad credentials")
)

// Claims 会话令牌声明
type Claims struct {
	jwt.RegisteredClaims
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

// Account 可登录账户（用户资料 + bcrypt 口令哈希）
type Account struct {
	User         model.User
	PasswordHash string
}

// SessionManager 登录与会话令牌管理
type SessionManager struct {
	secret   []byte
	issuer   string
	ttl      time.Duration
	accounts map[string]Account
}

// NewSessionManager 创建会话管理器
func NewSessionManager(secret string, issuer string, ttl time.Duration, accounts []Account) *SessionManager {
	byName := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byName[a.User.Username] = a
	}
	return &SessionManager{
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		accounts: byName,
	}
}

// Login 校验凭据并签发会话令牌
func (m *SessionManager) Login(username string, password string) (string, model.User, error) {
	account, ok := m.accounts[username]
	if !ok {
		return "", model.User{}, ErrBadCredentials
	}
	if !utils.VerifyPassword(password, account.PasswordHash) {
		return "", model.User{}, ErrBadCredentials
	}
	token, err := m.issue(account.User)
	if err != nil {
		return "", model.User{}, err
	}
	return token, account.User, nil
}

// VerifyCredential 校验用户口令，供电子签名门复用
func (m *SessionManager) VerifyCredential(username string, credential string) bool {
	account, ok := m.accounts[username]
	if !ok {
		return false
	}
	return utils.VerifyPassword(credential, account.PasswordHash)
}

// Validate 解析并校验会话令牌，返回用户信息
func (m *SessionManager) Validate(token string) (model.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return model.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return model.User{}, ErrInvalidToken
	}
	return model.User{
		Username:   claims.Subject,
		FullName:   claims.FullName,
		Role:       claims.Role,
		Department: claims.Department,
		Email:      claims.Email,
	}, nil
}

func (m *SessionManager) issue(user model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		FullName:   user.FullName,
		Role:       user.Role,
		Department: user.Department,
		Email:      user.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}
