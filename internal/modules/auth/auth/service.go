package auth

import (
	"errors"

	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = errors.New("Invalid credentials")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Login verifies the password against the stored bcrypt hash. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(email, password string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return &user, nil
}
