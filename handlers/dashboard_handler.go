package handlers

import (
	"time"

	"github.com/manelteacher/spanish_classes/database"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GetDashboard summarizes the caller's side of the marketplace: balances and
// upcoming classes for a student, booking counts and schedule load for a
// teacher.
func GetDashboard(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if role == models.RoleTeacher {
		return teacherDashboard(c, &user)
	}
	return studentDashboard(c, &user)
}

func studentDashboard(c *fiber.Ctx, user *models.User) error {
	now := time.Now().UTC()

	var pending, completed int64
	database.DB.Model(&models.Booking{}).Where("student_id = ? AND status = ?", user.ID, models.BookingPending).Count(&pending)
	database.DB.Model(&models.Booking{}).Where("student_id = ? AND status IN ?", user.ID, []string{models.BookingCompleted, models.BookingValidated}).Count(&completed)

	var upcoming []models.Booking
	database.DB.Preload("Class.Teacher").
		Where("student_id = ? AND status IN ? AND start_time > ?", user.ID, models.LiveStatuses(), now).
		Order("start_time asc").Limit(10).Find(&upcoming)

	return c.JSON(fiber.Map{
		"role":     models.RoleStudent,
		"timezone": user.TimeZone,
		"balances": fiber.Map{
			"25min": user.Balance25Min,
			"50min": user.Balance50Min,
			"80min": user.Balance80Min,
			"total": user.TotalBalance(),
		},
		"pending_bookings":  pending,
		"classes_taken":     completed,
		"upcoming_bookings": upcoming,
	})
}

func teacherDashboard(c *fiber.Ctx, user *models.User) error {
	now := time.Now().UTC()

	var classCount, scheduleCount int64
	database.DB.Model(&models.Class{}).Where("teacher_id = ?", user.ID).Count(&classCount)
	database.DB.Model(&models.RecurringSchedule{}).Where("teacher_id = ? AND active = ?", user.ID, true).Count(&scheduleCount)

	var pending, taught int64
	database.DB.Model(&models.Booking{}).
		Joins("JOIN classes ON classes.id = bookings.class_id").
		Where("classes.teacher_id = ? AND bookings.status = ?", user.ID, models.BookingPending).
		Count(&pending)
	database.DB.Model(&models.Booking{}).
		Joins("JOIN classes ON classes.id = bookings.class_id").
		Where("classes.teacher_id = ? AND bookings.status IN ?", user.ID, []string{models.BookingCompleted, models.BookingValidated}).
		Count(&taught)

	var upcoming []models.Booking
	database.DB.Preload("Class").Preload("Student").
		Joins("JOIN classes ON classes.id = bookings.class_id").
		Where("classes.teacher_id = ? AND bookings.status IN ? AND bookings.start_time > ?",
			user.ID, models.LiveStatuses(), now).
		Order("bookings.start_time asc").Limit(10).Find(&upcoming)

	return c.JSON(fiber.Map{
		"role":              models.RoleTeacher,
		"classes":           classCount,
		"active_schedules":  scheduleCount,
		"pending_bookings":  pending,
		"classes_taught":    taught,
		"upcoming_bookings": upcoming,
	})
}
