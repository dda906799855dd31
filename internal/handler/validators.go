package handler

import (
	"sync"

	"ticketboard/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the ticket_status, ticket_priority and workspace_role binding tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("ticket_status", func(fl validator.FieldLevel) bool {
			return model.Status(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("ticket_priority", func(fl validator.FieldLevel) bool {
			return model.Priority(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("workspace_role", func(fl validator.FieldLevel) bool {
			return model.Role(fl.Field().String()).Valid()
		})
	})
}
