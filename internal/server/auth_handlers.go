// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"
	"strconv"
	"time"

	"offerhub/internal/models"
	"offerhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		WalletAddress string  `json:"wallet_address"`
		Username      string  `json:"username"`
		Email         *string `json:"email"`
		IsFreelancer  bool    `json:"is_freelancer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
		Email:         req.Email,
		IsFreelancer:  req.IsFreelancer,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	token, err := s.generateToken(user.ID, user.WalletAddress)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login. Wallet ownership is proven upstream
// (signature verification is out of scope here); possession of the wallet
// address resolves the account.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		WalletAddress string `json:"wallet_address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.Context(), req.WalletAddress)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	token, err := s.generateToken(user.ID, user.WalletAddress)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// generateToken creates a JWT token for the given user ID and wallet address
func (s *Server) generateToken(userID uint, walletAddress string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"wallet": walletAddress,                          // Wallet address (cached in token)
		"iss":    "offerhub-api",                         // Issuer
		"aud":    "offerhub-client",                      // Audience
		"exp":    now.Add(time.Hour * 24 * 7).Unix(),     // Expiration (7 days)
		"iat":    now.Unix(),                             // Issued at
		"nbf":    now.Unix(),                             // Not before
		"jti":    s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
