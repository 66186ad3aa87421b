package recipe

import "github.com/ItamarS3917/smart-food-manager/pkg/apperrors"

// Domain errors for recipe operations

var (
	ErrEmptyName         = apperrors.InvalidArgument("recipe name cannot be empty")
	ErrInvalidServings   = apperrors.InvalidArgument("number of servings must be positive")
	ErrNilIngredient     = apperrors.InvalidArgument("cannot add nil ingredient")
	ErrInvalidStepOrder  = apperrors.InvalidArgument("step order must be positive")
	ErrStepNotFound      = apperrors.InvalidArgument("no step with the given order")
	ErrUnknownDifficulty = apperrors.InvalidArgument("unknown difficulty level")
)
