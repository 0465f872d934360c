package authController

import (
	"academy/middleware"
	"academy/services"
	"academy/utils"
	authValidator "academy/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := services.App.Identity.Register(c.UserContext(), services.RegisterInput{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: reqData.Password,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to Signup user!")
	}

	utils.SendWelcomeEmail(user.Email, user.Username)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registration successful! Please login.", user)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := services.App.Identity.Authenticate(c.UserContext(), reqData.Username, reqData.Password)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Login failed!")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to generate token!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user
func Me(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if err := services.RequireActor(actor); err != nil {
		return middleware.ServiceErrorResponse(c, err, "")
	}

	user, err := services.App.Identity.GetUser(c.UserContext(), actor.UserID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch user!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}
