package handlers

import (
	"errors"
	"time"

	"github.com/manelteacher/spanish_classes/database"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/manelteacher/spanish_classes/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
}

// validateScheduleRule enforces the invariants every availability rule must
// hold: parseable clocks, end after start and a supported class length.
func validateScheduleRule(req *ScheduleRequest) error {
	start, err := models.MinutesOfClock(req.StartTime)
	if err != nil {
		return err
	}
	end, err := models.MinutesOfClock(req.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return errors.New("end_time must be after start_time")
	}
	if _, err := models.ParseDuration(end - start); err != nil {
		return err
	}
	return nil
}

// CreateSchedule adds a weekly availability rule for the calling teacher. A
// rule that overlaps one of the teacher's active rules on the same day is
// rejected.
func CreateSchedule(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateScheduleRule(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	schedule := models.RecurringSchedule{
		TeacherID: teacherID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
	}

	var existing []models.RecurringSchedule
	if err := database.DB.Where("teacher_id = ? AND day_of_week = ? AND active = ?", teacherID, req.DayOfWeek, true).Find(&existing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check existing schedules"})
	}
	for i := range existing {
		if schedule.Overlaps(&existing[i]) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Schedule overlaps an existing rule on the same day"})
		}
	}

	if err := database.DB.Create(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Identical schedule already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create schedule"})
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// GetMySchedules lists the calling teacher's rules, active and inactive.
func GetMySchedules(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var schedules []models.RecurringSchedule
	if err := database.DB.Where("teacher_id = ?", teacherID).Order("day_of_week asc, start_time asc").Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve schedules"})
	}

	return c.JSON(schedules)
}

type UpdateScheduleRequest struct {
	DayOfWeek *int   `json:"day_of_week,omitempty" validate:"omitempty,min=0,max=6"`
	StartTime string `json:"start_time,omitempty" validate:"omitempty,len=5"`
	EndTime   string `json:"end_time,omitempty" validate:"omitempty,len=5"`
	Active    *bool  `json:"active,omitempty"`
}

// UpdateSchedule edits one of the calling teacher's rules. The merged rule is
// re-validated exactly like a new one.
func UpdateSchedule(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var schedule models.RecurringSchedule
	if err := database.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}
	if schedule.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own schedules"})
	}

	if req.DayOfWeek != nil {
		schedule.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != "" {
		schedule.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		schedule.EndTime = req.EndTime
	}
	if req.Active != nil {
		schedule.Active = *req.Active
	}

	merged := ScheduleRequest{DayOfWeek: schedule.DayOfWeek, StartTime: schedule.StartTime, EndTime: schedule.EndTime}
	if err := validateScheduleRule(&merged); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if schedule.Active {
		var existing []models.RecurringSchedule
		if err := database.DB.Where("teacher_id = ? AND day_of_week = ? AND active = ? AND id <> ?", teacherID, schedule.DayOfWeek, true, schedule.ID).Find(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check existing schedules"})
		}
		for i := range existing {
			if schedule.Overlaps(&existing[i]) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Schedule overlaps an existing rule on the same day"})
			}
		}
	}

	if err := database.DB.Save(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update schedule"})
	}

	return c.JSON(schedule)
}

// DeleteSchedule removes a rule. Existing bookings are untouched; only future
// expansion stops offering the rule's slots.
func DeleteSchedule(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	var schedule models.RecurringSchedule
	if err := database.DB.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}
	if schedule.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own schedules"})
	}

	if err := database.DB.Delete(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete schedule"})
	}

	return c.JSON(fiber.Map{"message": "Schedule deleted"})
}

// expandTeacherAvailability projects the teacher's active rules over the next
// four weeks, rendered in the viewer's timezone, with slots already taken by a
// pending or accepted booking dropped.
func expandTeacherAvailability(c *fiber.Ctx, teacher, viewer *models.User) error {
	var schedules []models.RecurringSchedule
	if err := database.DB.Where("teacher_id = ? AND active = ?", teacher.ID, true).Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve schedules"})
	}

	now := time.Now().UTC()
	horizonEnd := now.AddDate(0, 0, 7*services.HorizonWeeks)

	var bookedTimes []time.Time
	if err := database.DB.Model(&models.Booking{}).
		Joins("JOIN classes ON classes.id = bookings.class_id").
		Where("classes.teacher_id = ? AND bookings.status IN ? AND bookings.start_time >= ? AND bookings.start_time < ?",
			teacher.ID, models.LiveStatuses(), now, horizonEnd).
		Pluck("bookings.start_time", &bookedTimes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve bookings"})
	}

	slots := services.ExpandSchedules(schedules, now, services.HorizonWeeks, teacher.Location(), viewer.Location(), bookedTimes)

	// Rules whose first occurrence in the current week already passed still
	// expand to that past instant; keep only what can actually be booked.
	upcoming := slots[:0]
	for _, s := range slots {
		if s.StartUTC.After(now) {
			upcoming = append(upcoming, s)
		}
	}

	return c.JSON(fiber.Map{
		"teacher_id":      teacher.ID,
		"viewer_timezone": viewer.TimeZone,
		"slots":           upcoming,
	})
}

// GetTeacherAvailability is the viewer-facing expansion for one teacher.
func GetTeacherAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	viewerID, _ := uuid.Parse(claims["user_id"].(string))

	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ? AND role = ?", teacherID, models.RoleTeacher).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var viewer models.User
	if err := database.DB.First(&viewer, "id = ?", viewerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return expandTeacherAvailability(c, &teacher, &viewer)
}

// GetMyAvailability shows a teacher their own upcoming bookable slots.
func GetMyAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return expandTeacherAvailability(c, &teacher, &teacher)
}
