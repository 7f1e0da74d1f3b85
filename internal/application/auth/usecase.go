package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/logistica-api/internal/application/dto"
	"github.com/tu-usuario/logistica-api/internal/domain"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
	"github.com/tu-usuario/logistica-api/internal/domain/repository"
	pkgjwt "github.com/tu-usuario/logistica-api/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase registro y login. Es la capa de sesión mínima: resuelve el tenant
// (equipo) que después viaja como TenantContext en cada operación.
type UseCase struct {
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, teamRepo repository.TeamRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, teamRepo: teamRepo, jwtCfg: jwtCfg}
}

// Register crea el equipo y su primer usuario (admin) y emite el token.
func (uc *UseCase) Register(_ context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	team := &entity.Team{
		ID:        uuid.New().String(),
		Name:      in.TeamName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.teamRepo.Create(team); err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TeamID:       team.ID,
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.issueToken(user)
}

// Login valida credenciales y emite el token.
func (uc *UseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, user.TeamID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:  token,
		UserID: user.ID,
		TeamID: user.TeamID,
		Role:   user.Role,
	}, nil
}
