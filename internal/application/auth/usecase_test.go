package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
	pkgjwt "github.com/tu-usuario/retail-pos/pkg/jwt"
)

func newUC(t *testing.T) *auth.UseCase {
	t.Helper()
	store := memory.NewStore()
	return auth.NewUseCase(store.Users(), auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "retail-pos-test",
	})
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newUC(t)
	created, err := uc.CreateUser("cajero1", "password123", "cajero1@tienda.local", "Cajero Uno", entity.RoleCashier)
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Username: "cajero1", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, created.ID, resp.User.ID)
	assert.Equal(t, entity.RoleCashier, resp.User.Role)

	// El token debe llevar identidad y rol.
	userID, username, role, err := pkgjwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "cajero1", username)
	assert.Equal(t, entity.RoleCashier, role)
}

func TestLogin_RechazoUniforme(t *testing.T) {
	uc := newUC(t)
	_, err := uc.CreateUser("cajero1", "password123", "", "", entity.RoleCashier)
	require.NoError(t, err)

	// Usuario inexistente y contraseña incorrecta devuelven el mismo error:
	// no se filtra cuál de los dos falló.
	_, err = uc.Login(dto.LoginRequest{Username: "no-existe", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Username: "cajero1", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EntradaVacia(t *testing.T) {
	uc := newUC(t)

	_, err := uc.Login(dto.LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Login(dto.LoginRequest{Username: "x", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUser_Validaciones(t *testing.T) {
	uc := newUC(t)

	_, err := uc.CreateUser("u1", "pw", "", "", "superusuario")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol desconocido")

	_, err = uc.CreateUser("", "pw", "", "", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser("u1", "pw", "", "", entity.RoleAdmin)
	require.NoError(t, err)
	_, err = uc.CreateUser("u1", "otra", "", "", entity.RoleCashier)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "username duplicado")
}
