package meal

// Type categorizes a meal by time of day. The numeric values are part of the
// wire format and must stay stable.
type Type int

const (
	TypeBreakfast Type = iota
	TypeLunch
	TypeDinner
	TypeSnack
)

var typeNames = map[Type]string{
	TypeBreakfast: "breakfast",
	TypeLunch:     "lunch",
	TypeDinner:    "dinner",
	TypeSnack:     "snack",
}

var namedTypes = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String implements fmt.Stringer; unknown values render as "unknown"
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether the type is a known meal type
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType converts a name back to a Type
func ParseType(name string) (Type, error) {
	t, ok := namedTypes[name]
	if !ok {
		return 0, ErrUnknownType
	}
	return t, nil
}

// Status tracks a meal through its planning workflow. Any status may be set
// directly; the progression is conventional, not a guarded state machine.
type Status int

const (
	StatusPlanned Status = iota
	StatusShopping
	StatusPreparing
	StatusReady
	StatusConsumed
)

var statusNames = map[Status]string{
	StatusPlanned:   "planned",
	StatusShopping:  "shopping",
	StatusPreparing: "preparing",
	StatusReady:     "ready",
	StatusConsumed:  "consumed",
}

var namedStatuses = func() map[string]Status {
	m := make(map[string]Status, len(statusNames))
	for s, name := range statusNames {
		m[name] = s
	}
	return m
}()

// String implements fmt.Stringer; unknown values render as "unknown"
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether the status is a known workflow state
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus converts a name back to a Status
func ParseStatus(name string) (Status, error) {
	s, ok := namedStatuses[name]
	if !ok {
		return 0, ErrUnknownStatus
	}
	return s, nil
}
