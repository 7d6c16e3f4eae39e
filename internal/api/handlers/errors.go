package handlers

import (
	"errors"
	"strconv"
	"time"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2"
)

var (
	badRequestErrors = []error{
		domain.ErrParseUUID,
		domain.ErrInvalidWidget,
		domain.ErrInvalidClaimStatus,
		domain.ErrFoodNotClaimable,
		domain.ErrClaimAlreadyRequested,
		domain.ErrWasteNotCollectable,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidExpiryTime,
		domain.ErrInvalidSortField,
		storage.ErrFileTypeNotAllowed,
	}

	notFoundErrors = []error{
		domain.ErrFoodNotFound,
		domain.ErrWasteNotFound,
		domain.ErrClaimNotFound,
		domain.ErrUserNotFound,
	}
)

// statusFor maps a service error to the HTTP status it is reported with.
func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return fiber.StatusNotFound
		}
	}
	if errors.Is(err, domain.ErrJobAlreadyRunning) {
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func queryInt(c *fiber.Ctx, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// queryTime parses an RFC 3339 timestamp or a plain date. Missing or
// unparsable values yield nil.
func queryTime(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func queryTimeOrZero(c *fiber.Ctx, keys ...string) time.Time {
	for _, key := range keys {
		if t := queryTime(c, key); t != nil {
			return *t
		}
	}
	return time.Time{}
}
