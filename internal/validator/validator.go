package validator

import (
	"github.com/go-playground/validator/v10"

	"daybook/model"
)

// IsMood 校验情绪值是否在允许集合内（空值由 omitempty 处理）
func IsMood(fl validator.FieldLevel) bool {
	return model.IsAllowedMood(fl.Field().String())
}

// IsPrivacy validates the privacy_level form value.
func IsPrivacy(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == model.PrivacyPrivate || v == model.PrivacyPublic
}
