package service

import (
	"net/http"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
)

var (
	ErrNotLoggedIn     = errx.Unauthorized(http.StatusUnauthorized, "not_logged_in", "Please log in")
	ErrProductNotFound = errx.NotFound("product_not_found", "Product not found")
	ErrAddressNotFound = errx.NotFound("address_not_found", "Address not found")
	ErrAddressFields   = errx.Validation("address_incomplete", "Please fill all fields")
	ErrEmptyCart       = errx.Validation("empty_cart", "Your cart is empty. Please add items before placing an order.")
	ErrNoAddress       = errx.Validation("no_address", "Please select a delivery address before placing your order.")
	ErrBadSelection    = errx.Validation("invalid_address_selection", "Unknown address selection")
	ErrNoDraft         = errx.State("no_order", "No order found. Please go back to cart.", "/cart")

	ErrPaymentFields = errx.Validation("payment_incomplete", "Please fill in all payment details")
	ErrCardNumber    = errx.Validation("invalid_card_number", "Invalid card number. Please enter a valid one.")
	ErrCardExpiry    = errx.Validation("invalid_expiry_date", "Invalid expiry date. The card may be expired or the format is incorrect.")
	ErrCardCVV       = errx.Validation("invalid_cvv", "Please enter a valid 3-digit CVV")

	ErrNoImages      = errx.Validation("images_required", "Upload at least one image")
	ErrTooManyImages = errx.Validation("too_many_images", "You can upload a maximum of 4 images.")
	ErrProductFields = errx.Validation("product_incomplete", "Name and description are required")
	ErrBadCategory   = errx.Validation("invalid_category", "Unknown product category")
	ErrBadPrice      = errx.Validation("invalid_price", "Price must be a positive number")
	ErrBadOfferPrice = errx.Validation("invalid_offer_price", "Offer price must be a non-negative number")
	ErrBadQuantity   = errx.Validation("invalid_quantity", "Quantity must be a whole number")
)
