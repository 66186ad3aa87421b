package ingredient

// Unit represents a unit of measurement. The numeric values are part of the
// wire format and must stay stable.
type Unit int

const (
	UnitGram Unit = iota
	UnitKilogram
	UnitMilliliter
	UnitLiter
	UnitPiece
	UnitTeaspoon
	UnitTablespoon
	UnitCup
	UnitOunce
	UnitPound
)

// unitCodes maps every unit to its short code. The table is exhaustive over
// all Unit values; ParseUnit uses the reverse mapping.
var unitCodes = map[Unit]string{
	UnitGram:       "g",
	UnitKilogram:   "kg",
	UnitMilliliter: "ml",
	UnitLiter:      "l",
	UnitPiece:      "pc",
	UnitTeaspoon:   "tsp",
	UnitTablespoon: "tbsp",
	UnitCup:        "cup",
	UnitOunce:      "oz",
	UnitPound:      "lb",
}

var codeUnits = func() map[string]Unit {
	m := make(map[string]Unit, len(unitCodes))
	for u, code := range unitCodes {
		m[code] = u
	}
	return m
}()

// lowStockThresholds holds the per-unit quantity at or below which an
// ingredient counts as low stock. Units without an entry are never low.
var lowStockThresholds = map[Unit]float64{
	UnitGram:       100.0,
	UnitKilogram:   0.1,
	UnitMilliliter: 100.0,
	UnitLiter:      0.1,
	UnitPiece:      2.0,
}

// unitDimension groups units that measure the same physical quantity.
type unitDimension int

const (
	dimensionMass unitDimension = iota
	dimensionVolume
	dimensionCount
)

// unitScale holds each unit's dimension and its factor relative to the
// dimension's base unit (gram, milliliter, piece).
var unitScale = map[Unit]struct {
	dimension unitDimension
	factor    float64
}{
	UnitGram:       {dimensionMass, 1},
	UnitKilogram:   {dimensionMass, 1000},
	UnitOunce:      {dimensionMass, 28.3495},
	UnitPound:      {dimensionMass, 453.592},
	UnitMilliliter: {dimensionVolume, 1},
	UnitLiter:      {dimensionVolume, 1000},
	UnitTeaspoon:   {dimensionVolume, 4.92892},
	UnitTablespoon: {dimensionVolume, 14.7868},
	UnitCup:        {dimensionVolume, 236.588},
	UnitPiece:      {dimensionCount, 1},
}

// Code returns the short code for the unit
func (u Unit) Code() (string, error) {
	code, ok := unitCodes[u]
	if !ok {
		return "", ErrUnknownUnit
	}
	return code, nil
}

// String implements fmt.Stringer; unknown values render as "unknown"
func (u Unit) String() string {
	if code, ok := unitCodes[u]; ok {
		return code
	}
	return "unknown"
}

// Valid reports whether the unit is a known measurement unit
func (u Unit) Valid() bool {
	_, ok := unitCodes[u]
	return ok
}

// ParseUnit converts a short code back to a Unit
func ParseUnit(code string) (Unit, error) {
	u, ok := codeUnits[code]
	if !ok {
		return 0, ErrUnknownUnit
	}
	return u, nil
}

// ConvertUnit converts a value between two units of the same dimension.
// Converting across dimensions (e.g. grams to milliliters) fails.
func ConvertUnit(value float64, from, to Unit) (float64, error) {
	fromScale, ok := unitScale[from]
	if !ok {
		return 0, ErrUnknownUnit
	}
	toScale, ok := unitScale[to]
	if !ok {
		return 0, ErrUnknownUnit
	}
	if fromScale.dimension != toScale.dimension {
		return 0, ErrIncompatibleUnits
	}
	return value * fromScale.factor / toScale.factor, nil
}
