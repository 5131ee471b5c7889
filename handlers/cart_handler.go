package handlers

import (
	"errors"

	"github.com/manelteacher/spanish_classes/database"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPrices is the public price table for class credits.
func ListPrices(c *fiber.Ctx) error {
	out := make([]fiber.Map, 0, 3)
	for _, d := range models.Durations() {
		out = append(out, fiber.Map{
			"duration_minutes": d.Minutes(),
			"unit_price_eur":   d.UnitPriceEUR(),
		})
	}
	return c.JSON(out)
}

// getOrCreateCart returns the caller's cart, creating an empty one on first
// use.
func getOrCreateCart(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := database.DB.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := database.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func cartResponse(cart *models.Cart) fiber.Map {
	items := make([]fiber.Map, 0, len(cart.Items))
	for i := range cart.Items {
		it := &cart.Items[i]
		items = append(items, fiber.Map{
			"id":               it.ID,
			"duration_minutes": it.DurationMinutes.Minutes(),
			"quantity":         it.Quantity,
			"unit_price_eur":   it.UnitPriceEUR(),
			"subtotal_eur":     it.SubtotalEUR(),
		})
	}
	return fiber.Map{
		"id":             cart.ID,
		"items":          items,
		"total_eur":      cart.TotalEUR(),
		"total_quantity": cart.TotalQuantity(),
	}
}

func GetMyCart(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	cart, err := getOrCreateCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cart"})
	}
	return c.JSON(cartResponse(cart))
}

type CartItemRequest struct {
	DurationMinutes int `json:"duration_minutes" validate:"required"`
	Quantity        int `json:"quantity" validate:"required,min=1,max=100"`
}

// AddCartItem adds credits of one duration to the cart. Adding a duration
// already present increases that line's quantity.
func AddCartItem(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CartItemRequest
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

	cart, err := getOrCreateCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cart"})
	}

	var item models.CartItem
	err = database.DB.Where("cart_id = ? AND duration_minutes = ?", cart.ID, duration).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{CartID: cart.ID, DurationMinutes: duration, Quantity: req.Quantity}
		err = database.DB.Create(&item).Error
	} else if err == nil {
		item.Quantity += req.Quantity
		err = database.DB.Save(&item).Error
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update cart"})
	}

	database.DB.Preload("Items").First(cart, "id = ?", cart.ID)
	return c.JSON(cartResponse(cart))
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=100"`
}

func UpdateCartItem(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cart"})
	}

	var item models.CartItem
	if err := database.DB.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
	}
	item.Quantity = req.Quantity
	if err := database.DB.Save(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update cart"})
	}

	database.DB.Preload("Items").First(cart, "id = ?", cart.ID)
	return c.JSON(cartResponse(cart))
}

func RemoveCartItem(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cart"})
	}

	result := database.DB.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update cart"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
	}

	database.DB.Preload("Items").First(cart, "id = ?", cart.ID)
	return c.JSON(cartResponse(cart))
}

func ClearCart(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	cart, err := getOrCreateCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cart"})
	}
	if err := database.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear cart"})
	}

	cart.Items = nil
	return c.JSON(cartResponse(cart))
}
