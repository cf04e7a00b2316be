package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"homelink_backend/internal/models"
)

var tierCodePattern = regexp.MustCompile(`^[A-Z][A-Z_]{2,29}$`)

func registerCustomRules(v *validator.Validate) {
	// payout_method: the two channels the payout processor supports.
	_ = v.RegisterValidation("payout_method", func(fl validator.FieldLevel) bool {
		return models.PayoutMethod(fl.Field().String()).Valid()
	})

	// tier_code: shape check only; existence is a catalog lookup.
	_ = v.RegisterValidation("tier_code", func(fl validator.FieldLevel) bool {
		return tierCodePattern.MatchString(fl.Field().String())
	})
}
