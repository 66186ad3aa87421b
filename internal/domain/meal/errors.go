package meal

import "github.com/ItamarS3917/smart-food-manager/pkg/apperrors"

// Domain errors for meal operations

var (
	ErrEmptyName       = apperrors.InvalidArgument("meal name cannot be empty")
	ErrInvalidServings = apperrors.InvalidArgument("number of servings must be positive")
	ErrNilIngredient   = apperrors.InvalidArgument("cannot add nil ingredient")
	ErrUnknownType     = apperrors.InvalidArgument("unknown meal type")
	ErrUnknownStatus   = apperrors.InvalidArgument("unknown meal status")
)
