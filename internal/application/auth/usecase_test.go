package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/auth"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/dto"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/domain"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/infrastructure/memory"
	pkgjwt "github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/pkg/jwt"
)

func newAuthUC() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "test",
	})
}

func TestRegisterUser(t *testing.T) {
	uc := newAuthUC()

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@soporte.local",
		Password: "s3cr3t0",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", user.Role, "el rol por defecto es staff")
	assert.NotEmpty(t, user.ID)

	// Email duplicado.
	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@soporte.local", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Rol desconocido.
	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "b@x.local", Password: "p", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Campos obligatorios.
	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc := newAuthUC()
	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "admin@soporte.local",
		Password: "clave-larga",
		Role:     "admin",
	})
	require.NoError(t, err)

	res, err := uc.Login(dto.LoginRequest{Email: "admin@soporte.local", Password: "clave-larga"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, res.User.ID)

	// El token lleva identidad y rol, listos para el middleware.
	userID, role, err := pkgjwt.Parse("test-secret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, "admin", role)

	// Password incorrecto.
	_, err = uc.Login(dto.LoginRequest{Email: "admin@soporte.local", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario inexistente.
	_, err = uc.Login(dto.LoginRequest{Email: "nadie@soporte.local", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
