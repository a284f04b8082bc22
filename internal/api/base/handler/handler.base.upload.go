package basehdl

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v3"
)

// OptionalFile returns the uploaded file of field, nil when the request has none.
func OptionalFile(c fiber.Ctx, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	return fh
}
