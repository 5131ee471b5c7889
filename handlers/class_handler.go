package handlers

import (
	"github.com/manelteacher/spanish_classes/database"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateClassRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=100"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" validate:"required"`
}

// CreateClass lets a teacher publish a bookable class.
func CreateClass(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	duration, err := models.ParseDuration(req.DurationMinutes)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	class := models.Class{
		TeacherID:       teacherID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: duration,
	}
	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(fiber.StatusCreated).JSON(class)
}

// ListClasses is public. An optional ?teacher_id= query narrows the listing to
// one teacher's classes.
func ListClasses(c *fiber.Ctx) error {
	query := database.DB.Preload("Teacher").Order("created_at desc")

	if raw := c.Query("teacher_id"); raw != "" {
		teacherID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
		}
		query = query.Where("teacher_id = ?", teacherID)
	}

	var classes []models.Class
	if err := query.Find(&classes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve classes"})
	}

	return c.JSON(classes)
}

func GetClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	var class models.Class
	if err := database.DB.Preload("Teacher").First(&class, "id = ?", classID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	return c.JSON(class)
}

type UpdateClassRequest struct {
	Title           string  `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
}

// UpdateClass lets the owning teacher edit a class.
func UpdateClass(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var class models.Class
	if err := database.DB.First(&class, "id = ?", classID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	if class.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own classes"})
	}

	if req.Title != "" {
		class.Title = req.Title
	}
	if req.Description != nil {
		class.Description = *req.Description
	}
	if req.DurationMinutes != 0 {
		duration, err := models.ParseDuration(req.DurationMinutes)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		class.DurationMinutes = duration
	}

	if err := database.DB.Save(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}

	return c.JSON(class)
}

// DeleteClass removes a class, as long as no booking references it.
func DeleteClass(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	var class models.Class
	if err := database.DB.First(&class, "id = ?", classID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	if class.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own classes"})
	}

	var bookingCount int64
	database.DB.Model(&models.Booking{}).Where("class_id = ?", classID).Count(&bookingCount)
	if bookingCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Class has bookings and cannot be deleted"})
	}

	if err := database.DB.Delete(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete class"})
	}

	return c.JSON(fiber.Map{"message": "Class deleted"})
}
