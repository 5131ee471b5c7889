package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/manelteacher/spanish_classes/database"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/manelteacher/spanish_classes/notifications"
	"github.com/manelteacher/spanish_classes/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errClassNotFound   = errors.New("class not found")
	errStudentNotFound = errors.New("student not found")
	errSlotInPast      = errors.New("start time must be in the future")
	errOwnClass        = errors.New("teachers cannot book their own classes")
	errSlotTaken       = errors.New("slot is already booked")
	errNotParticipant  = errors.New("booking does not involve you")
	errBadTransition   = errors.New("booking status does not allow this change")
)

type CreateBookingRequest struct {
	ClassID   string `json:"class_id" validate:"required,uuid4"`
	StartTime string `json:"start_time" validate:"required"`
}

// CreateBooking reserves a slot on a class. A student's booking starts pending
// and immediately consumes one credit of the class's duration. A teacher
// booking their own class blocks the slot: it starts accepted and touches no
// balance. Either way the slot's exact UTC start may hold at most one live
// booking per class.
func CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	callerRole := claims["role"].(string)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	classID, _ := uuid.Parse(req.ClassID)
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_time must be RFC3339"})
	}
	startTime = startTime.UTC()

	var booking models.Booking
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var class models.Class
		if err := tx.First(&class, "id = ?", classID).Error; err != nil {
			return errClassNotFound
		}

		if !startTime.After(time.Now().UTC()) {
			return errSlotInPast
		}

		status := models.BookingPending
		if callerRole == models.RoleTeacher {
			if class.TeacherID != callerID {
				return errNotParticipant
			}
			status = models.BookingAccepted
		} else if class.TeacherID == callerID {
			return errOwnClass
		}

		if status == models.BookingPending {
			var student models.User
			if err := tx.First(&student, "id = ?", callerID).Error; err != nil {
				return errStudentNotFound
			}
			if err := student.DebitClass(class.DurationMinutes); err != nil {
				return err
			}
			if err := tx.Save(&student).Error; err != nil {
				return err
			}
		}

		var live int64
		if err := tx.Model(&models.Booking{}).
			Where("class_id = ? AND start_time = ? AND status IN ?", classID, startTime, models.LiveStatuses()).
			Count(&live).Error; err != nil {
			return err
		}
		if live > 0 {
			return errSlotTaken
		}

		booking = models.Booking{
			ClassID:   classID,
			StudentID: callerID,
			StartTime: startTime,
			EndTime:   startTime.Add(time.Duration(class.DurationMinutes.Minutes()) * time.Minute),
			Status:    status,
		}
		return tx.Create(&booking).Error
	})

	if txErr != nil {
		var balanceErr *models.InsufficientBalanceError
		switch {
		case errors.Is(txErr, errClassNotFound), errors.Is(txErr, errStudentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": txErr.Error()})
		case errors.Is(txErr, errSlotInPast), errors.Is(txErr, errOwnClass):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": txErr.Error()})
		case errors.Is(txErr, errNotParticipant):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": txErr.Error()})
		case errors.As(txErr, &balanceErr):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": txErr.Error()})
		case errors.Is(txErr, errSlotTaken), errors.Is(txErr, gorm.ErrDuplicatedKey):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errSlotTaken.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	database.DB.Preload("Class.Teacher").Preload("Student").First(&booking, "id = ?", booking.ID)
	go notifyBookingEvent(&booking, "booking-created", fmt.Sprintf("New booking for %s", booking.Class.Title))

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings lists bookings from the caller's side of the table: a
// student's own bookings, or every booking on the teacher's classes. An
// optional ?status= query filters by status.
func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))
	callerRole := claims["role"].(string)

	query := database.DB.Preload("Class.Teacher").Preload("Student").Order("start_time asc")
	if callerRole == models.RoleTeacher {
		query = query.Joins("JOIN classes ON classes.id = bookings.class_id").Where("classes.teacher_id = ?", callerID)
	} else {
		query = query.Where("student_id = ?", callerID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("bookings.status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve bookings"})
	}

	return c.JSON(bookings)
}

// loadBookingForParticipant fetches a booking and checks the caller is its
// student or the teacher of its class.
func loadBookingForParticipant(bookingID, callerID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := database.DB.Preload("Class.Teacher").Preload("Student").First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	if booking.StudentID != callerID && booking.Class.TeacherID != callerID {
		return nil, errNotParticipant
	}
	return &booking, nil
}

// CancelBooking moves a booking to cancelled. The consumed credit goes back to
// the student unless the booking already reached completed or validated.
func CancelBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := loadBookingForParticipant(bookingID, callerID)
	if err != nil {
		if errors.Is(err, errNotParticipant) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if !booking.CanBeCancelled() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errBadTransition.Error()})
	}

	// Teacher self-bookings never debited a credit, so there is nothing to
	// reverse.
	refund := booking.RefundsOnRelease() && booking.StudentID != booking.Class.TeacherID
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if refund {
			var student models.User
			if err := tx.First(&student, "id = ?", booking.StudentID).Error; err != nil {
				return err
			}
			student.CreditClasses(booking.Class.DurationMinutes, 1)
			if err := tx.Save(&student).Error; err != nil {
				return err
			}
		}
		booking.Status = models.BookingCancelled
		return tx.Save(booking).Error
	})
	if txErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	go notifyBookingEvent(booking, "booking-cancelled", fmt.Sprintf("Booking for %s was cancelled", booking.Class.Title))

	return c.JSON(booking)
}

type RescheduleBookingRequest struct {
	StartTime string `json:"start_time" validate:"required"`
}

// RescheduleBooking moves a pending booking to a new future slot.
func RescheduleBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req RescheduleBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_time must be RFC3339"})
	}
	startTime = startTime.UTC()

	booking, err := loadBookingForParticipant(bookingID, callerID)
	if err != nil {
		if errors.Is(err, errNotParticipant) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if !booking.CanBeRescheduled() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errBadTransition.Error()})
	}
	if !startTime.After(time.Now().UTC()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errSlotInPast.Error()})
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var live int64
		if err := tx.Model(&models.Booking{}).
			Where("class_id = ? AND start_time = ? AND status IN ? AND id <> ?",
				booking.ClassID, startTime, models.LiveStatuses(), booking.ID).
			Count(&live).Error; err != nil {
			return err
		}
		if live > 0 {
			return errSlotTaken
		}

		booking.StartTime = startTime
		booking.EndTime = startTime.Add(time.Duration(booking.Class.DurationMinutes.Minutes()) * time.Minute)
		return tx.Save(booking).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errSlotTaken) || errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errSlotTaken.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reschedule booking"})
	}

	go notifyBookingEvent(booking, "booking-rescheduled", fmt.Sprintf("Booking for %s was rescheduled", booking.Class.Title))

	return c.JSON(booking)
}

type ChangeBookingStatusRequest struct {
	Status  string  `json:"status" validate:"required,oneof=accepted rejected completed validated"`
	Comment *string `json:"comment,omitempty"`
}

// ChangeBookingStatus drives the teacher-side transitions: accept or reject a
// pending booking, mark an accepted one completed, validate a completed one.
// Rejecting refunds the student's credit.
func ChangeBookingStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	callerID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req ChangeBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := loadBookingForParticipant(bookingID, callerID)
	if err != nil {
		if errors.Is(err, errNotParticipant) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.Class.TeacherID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the teacher can change the booking status"})
	}

	if !booking.CanTransitionTo(req.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errBadTransition.Error()})
	}

	refund := req.Status == models.BookingRejected && booking.RefundsOnRelease() &&
		booking.StudentID != booking.Class.TeacherID
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if refund {
			var student models.User
			if err := tx.First(&student, "id = ?", booking.StudentID).Error; err != nil {
				return err
			}
			student.CreditClasses(booking.Class.DurationMinutes, 1)
			if err := tx.Save(&student).Error; err != nil {
				return err
			}
		}
		booking.Status = req.Status
		if req.Comment != nil {
			booking.TeacherComment = req.Comment
		}
		return tx.Save(booking).Error
	})
	if txErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	go notifyBookingEvent(booking, "booking-status-changed", fmt.Sprintf("Booking for %s is now %s", booking.Class.Title, booking.Status))

	return c.JSON(booking)
}

// notifyBookingEvent pushes a realtime event to both participants and emails
// the student. It runs from a goroutine; failures are only logged downstream.
func notifyBookingEvent(booking *models.Booking, event, message string) {
	payload := fiber.Map{
		"booking_id": booking.ID,
		"status":     booking.Status,
		"start_time": booking.StartTime,
		"message":    message,
	}
	realtime.Notify(event, payload, booking.StudentID, booking.Class.TeacherID)

	if booking.Student.Email != "" {
		notifications.SendEmail(
			booking.Student.Username,
			booking.Student.Email,
			message,
			fmt.Sprintf("<p>%s</p><p>Class starts at %s (UTC).</p>", message, booking.StartTime.Format(time.RFC1123)),
		)
	}
}
