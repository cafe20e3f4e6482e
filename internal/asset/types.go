package asset

import "fmt"

// Kind represents a category of template asset (component, hook, util, etc.)
type Kind struct {
	Key   string
	Label string
	Dir   string
}

var (
	KindComponent = Kind{
		Key:   "component",
		Label: "Component",
		Dir:   "components",
	}
	KindHook = Kind{
		Key:   "hook",
		Label: "Hook",
		Dir:   "hooks",
	}
	KindUtil = Kind{
		Key:   "util",
		Label: "Util",
		Dir:   "utils",
	}
	KindLayout = Kind{
		Key:   "layout",
		Label: "Layout",
		Dir:   "layouts",
	}
	KindProvider = Kind{
		Key:   "provider",
		Label: "Provider",
		Dir:   "providers",
	}
)

// IsValid checks if the kind is one of the known kinds
func (k Kind) IsValid() bool {
	for _, known := range AllKinds() {
		if k.Key == known.Key {
			return true
		}
	}
	return false
}

// String returns the string representation (key) of the kind
func (k Kind) String() string {
	return k.Key
}

// FromString creates a Kind from a key or directory name.
// Unknown values produce a Kind that is not valid.
func FromString(s string) Kind {
	switch s {
	case "component", "components":
		return KindComponent
	case "hook", "hooks":
		return KindHook
	case "util", "utils":
		return KindUtil
	case "layout", "layouts":
		return KindLayout
	case "provider", "providers":
		return KindProvider
	default:
		return Kind{Key: s}
	}
}

// Parse is like FromString but fails on unknown kinds
func Parse(s string) (Kind, error) {
	k := FromString(s)
	if !k.IsValid() {
		return Kind{}, fmt.Errorf("unknown asset kind %q (expected one of: component, hook, util, layout, provider)", s)
	}
	return k, nil
}

// MarshalText implements encoding.TextMarshaler for TOML/JSON serialization
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Key), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML/JSON deserialization
func (k *Kind) UnmarshalText(text []byte) error {
	*k = FromString(string(text))
	return nil
}

// AllKinds returns every kind in the order update walks them
func AllKinds() []Kind {
	return []Kind{
		KindComponent,
		KindHook,
		KindUtil,
		KindLayout,
		KindProvider,
	}
}

// Key identifies one asset of one kind, used for visited sets and results
type Key struct {
	Kind Kind
	Name string
}

func (k Key) String() string {
	return k.Kind.Key + "/" + k.Name
}
