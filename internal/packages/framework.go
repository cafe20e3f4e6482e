package packages

// Framework is the web framework a consumer project is built on
type Framework string

const (
	FrameworkNext    Framework = "next"
	FrameworkVite    Framework = "vite"
	FrameworkReact   Framework = "react"
	FrameworkUnknown Framework = "unknown"
)

// Label is the human-readable framework name
func (f Framework) Label() string {
	switch f {
	case FrameworkNext:
		return "Next.js"
	case FrameworkVite:
		return "Vite"
	case FrameworkReact:
		return "React"
	default:
		return "Unknown"
	}
}

// DetectFramework infers the framework from declared dependencies
func DetectFramework(m *Manifest) Framework {
	if m == nil {
		return FrameworkUnknown
	}
	for _, f := range []Framework{FrameworkNext, FrameworkVite, FrameworkReact} {
		if _, ok := m.Version(string(f)); ok {
			return f
		}
	}
	return FrameworkUnknown
}
