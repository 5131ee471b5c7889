package handlers

import (
	"github.com/manelteacher/spanish_classes/database"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/manelteacher/spanish_classes/timezones"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GetMyProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

type UpdateProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=150"`
	Country  string `json:"country,omitempty" validate:"omitempty,len=2"`
}

func UpdateMyProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Country != "" {
		if !timezones.IsSupported(req.Country) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported country code"})
		}
		user.Country = req.Country
		user.TimeZone = timezones.Lookup(req.Country)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}

// ListTeachers is the public teacher directory, with per-teacher class and
// active-schedule counts.
func ListTeachers(c *fiber.Ctx) error {
	var teachers []models.User
	if err := database.DB.Where("role = ?", models.RoleTeacher).Order("username asc").Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve teachers"})
	}

	out := make([]fiber.Map, 0, len(teachers))
	for i := range teachers {
		t := &teachers[i]

		var classCount int64
		database.DB.Model(&models.Class{}).Where("teacher_id = ?", t.ID).Count(&classCount)
		var scheduleCount int64
		database.DB.Model(&models.RecurringSchedule{}).Where("teacher_id = ? AND active = ?", t.ID, true).Count(&scheduleCount)

		out = append(out, fiber.Map{
			"id":               t.ID,
			"username":         t.Username,
			"email":            t.Email,
			"country":          t.Country,
			"timezone":         t.TimeZone,
			"classes_count":    classCount,
			"active_schedules": scheduleCount,
		})
	}

	return c.JSON(out)
}

func ListCountries(c *fiber.Ctx) error {
	return c.JSON(timezones.Countries())
}

func ListTimezones(c *fiber.Ctx) error {
	return c.JSON(timezones.Zones())
}
