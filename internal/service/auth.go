package service

import (
	"context"
	"errors"
	"time"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/config"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/redis"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	// ErrStaffDisabled 员工账号已停用
	ErrStaffDisabled = errors.New("员工账号已停用")
	// ErrInvalidToken 无效的访问令牌
	ErrInvalidToken = errors.New("无效的访问令牌")
	// ErrTokenRevoked 访问令牌已吊销
	ErrTokenRevoked = errors.New("访问令牌已吊销")
)

// revokedTokenKeyPrefix 吊销令牌在Redis中的键前缀
const revokedTokenKeyPrefix = "revoked_token:"

// TokenClaims 访问令牌声明
type TokenClaims struct {
	StaffID string `json:"staff_id"`
	RoleID  string `json:"role_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"`
	Staff       *model.Staff `json:"staff"`
}

// AuthService 认证服务接口
type AuthService interface {
	// Login 邮箱密码登录，签发访问令牌
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// ValidateToken 验证访问令牌并返回声明
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	// Logout 吊销访问令牌
	Logout(ctx context.Context, token string) error
}

// authService 认证服务实现
type authService struct {
	staffRepo repository.StaffRepository
	redis     *redis.Client
	jwtConfig config.JWTConfig
}

// NewAuthService 创建认证服务实例
func NewAuthService(staffRepo repository.StaffRepository, redisClient *redis.Client, jwtConfig config.JWTConfig) AuthService {
	return &authService{
		staffRepo: staffRepo,
		redis:     redisClient,
		jwtConfig: jwtConfig,
	}
}

// Login 邮箱密码登录，签发访问令牌
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrInvalidCredentials
	}
	if !staff.Active {
		return nil, ErrStaffDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expire := time.Duration(s.jwtConfig.AccessTokenExpire) * time.Second
	claims := &TokenClaims{
		StaffID: staff.ID,
		RoleID:  staff.RoleID,
		Email:   staff.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   s.jwtConfig.AccessTokenExpire,
		Staff:       staff,
	}, nil
}

// ValidateToken 验证访问令牌并返回声明
func (s *authService) ValidateToken(ctx context.Context, tokenStr string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	// 检查吊销列表
	revoked, err := s.redis.Exists(ctx, revokedTokenKeyPrefix+claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Logout 吊销访问令牌
func (s *authService) Logout(ctx context.Context, tokenStr string) error {
	claims, err := s.ValidateToken(ctx, tokenStr)
	if err != nil {
		return err
	}

	// 吊销记录只需保留到令牌自然过期
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return s.redis.Set(ctx, revokedTokenKeyPrefix+claims.ID, "1", remaining)
}
