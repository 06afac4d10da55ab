package utils

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParsePage reads ?page and ?pageSize, clamping the size to 1..50.
func ParsePage(c *fiber.Ctx) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	size, _ = strconv.Atoi(c.Query("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 50 {
		size = 10
	}
	return
}

// Pages is the number of pages needed for total rows.
func Pages(total int64, size int) int {
	return int(math.Ceil(float64(total) / float64(size)))
}
