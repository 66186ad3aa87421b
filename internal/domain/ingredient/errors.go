package ingredient

import "github.com/ItamarS3917/smart-food-manager/pkg/apperrors"

// Domain errors for ingredient operations

var (
	ErrEmptyName          = apperrors.InvalidArgument("ingredient name cannot be empty")
	ErrNegativeQuantity   = apperrors.InvalidArgument("ingredient quantity cannot be negative")
	ErrNegativePrice      = apperrors.InvalidArgument("ingredient unit price cannot be negative")
	ErrNegativeNutrient   = apperrors.InvalidArgument("nutritional value cannot be negative")
	ErrInvalidScaleFactor = apperrors.InvalidArgument("scale factor must be positive")
	ErrUnknownUnit        = apperrors.InvalidArgument("unknown measurement unit")
	ErrIncompatibleUnits  = apperrors.InvalidArgument("cannot convert between units of different dimensions")
)
