package controllers

import (
	"regexp"
	"strings"

	"orghub-backend/models"
	"orghub-backend/services"
	"orghub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles login, session introspection and organization
// registration.
type AuthController struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

// NewAuthController creates a new AuthController.
func NewAuthController(db *gorm.DB, activity *services.ActivityService) *AuthController {
	return &AuthController{DB: db, Activity: activity}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterOrganizationRequest creates an organization together with its
// founder account.
type RegisterOrganizationRequest struct {
	OrganizationName string `json:"organization_name"`
	CompanyCode      string `json:"company_code"`
	Industry         string `json:"industry"`
	Address          string `json:"address"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

// SessionUser is the principal payload echoed to the frontend.
type SessionUser struct {
	ID          uint   `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	CompanyCode string `json:"company_code"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Login authenticates by email and password and issues a JWT.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Email and password are required",
		})
	}

	var user models.User
	err := ac.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil || !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid email or password",
		})
	}

	if user.Status != models.UserStatusActive {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Account is inactive",
		})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, user.CompanyCode)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": SessionUser{
			ID:          user.ID,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Role:        user.Role,
			CompanyCode: user.CompanyCode,
		},
	})
}

// Session echoes the authenticated principal, or loggedIn=false without a
// valid token.
func (ac *AuthController) Session(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return c.JSON(fiber.Map{"loggedIn": false})
	}

	claims, err := utils.ValidateJWT(tokenParts[1])
	if err != nil {
		return c.JSON(fiber.Map{"loggedIn": false})
	}

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		return c.JSON(fiber.Map{"loggedIn": false})
	}

	return c.JSON(fiber.Map{
		"loggedIn": true,
		"user": SessionUser{
			ID:          user.ID,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Role:        user.Role,
			CompanyCode: user.CompanyCode,
		},
	})
}

// Logout acknowledges a logout. Tokens are stateless; the client discards
// its copy.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// RegisterOrganization creates the tenant and its founder account in one
// transaction.
func (ac *AuthController) RegisterOrganization(c *fiber.Ctx) error {
	var req RegisterOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := ac.validateRegistration(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	var existingOrg models.Organization
	if err := ac.DB.Where("company_code = ?", req.CompanyCode).First(&existingOrg).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Company code already in use",
		})
	}

	var existingUser models.User
	if err := ac.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existingUser).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Email already exists",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return failJSON(c, err)
	}

	var founder models.User
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		org := models.Organization{
			Name:        req.OrganizationName,
			CompanyCode: req.CompanyCode,
			Industry:    req.Industry,
			Address:     req.Address,
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		founder = models.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        strings.ToLower(req.Email),
			PasswordHash: hashedPassword,
			Role:         models.RoleFounder,
			Status:       models.UserStatusActive,
			CompanyCode:  req.CompanyCode,
		}
		return tx.Create(&founder).Error
	})
	if err != nil {
		return failJSON(c, err)
	}

	token, err := utils.GenerateJWT(founder.ID, founder.Email, founder.Role, founder.CompanyCode)
	if err != nil {
		return failJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Organization registered successfully",
		"token":   token,
		"user": SessionUser{
			ID:          founder.ID,
			FirstName:   founder.FirstName,
			LastName:    founder.LastName,
			Role:        founder.Role,
			CompanyCode: founder.CompanyCode,
		},
	})
}

func (ac *AuthController) validateRegistration(req *RegisterOrganizationRequest) error {
	if strings.TrimSpace(req.OrganizationName) == "" {
		return fiber.NewError(400, "Organization name is required")
	}
	if len(strings.TrimSpace(req.CompanyCode)) < 3 {
		return fiber.NewError(400, "Company code must be at least 3 characters")
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return fiber.NewError(400, "Founder name is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return fiber.NewError(400, "A valid email is required")
	}
	if len(req.Password) < 6 {
		return fiber.NewError(400, "Password must be at least 6 characters")
	}
	return nil
}
