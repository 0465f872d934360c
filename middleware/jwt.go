package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"academy/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var errBadToken = errors.New("invalid or expired token")

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, username string) (string, error) {
	issuedAt := time.Now()
	claims := jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"iat":      issuedAt.Unix(),
		"exp":      issuedAt.Add(config.AppConfig.JWTTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// JWTMiddleware rejects requests without a valid bearer token and stores the user id in Locals("userId")
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	userID, err := parseToken(authHeader[len("Bearer "):])
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	c.Locals("userId", userID)
	return c.Next()
}

// OptionalJWT stores the user id when a valid bearer token is present and lets anonymous requests through
func OptionalJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if userID, err := parseToken(authHeader[len("Bearer "):]); err == nil {
			c.Locals("userId", userID)
		}
	}
	return c.Next()
}

func parseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, errBadToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errBadToken
	}
	// JWT numbers decode as float64
	userID, ok := claims["userId"].(float64)
	if !ok || userID <= 0 {
		return 0, errBadToken
	}
	return uint(userID), nil
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
