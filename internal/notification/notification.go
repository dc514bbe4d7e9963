package notification

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

type Location string

const (
	LocationTop         Location = "top"
	LocationTopRight    Location = "top right"
	LocationTopLeft     Location = "top left"
	LocationBottom      Location = "bottom"
	LocationBottomRight Location = "bottom right"
	LocationBottomLeft  Location = "bottom left"
	LocationLeft        Location = "left"
	LocationRight       Location = "right"
	LocationCenter      Location = "center"
)

const DefaultTimeout = 3000 // ms

type Options struct {
	Message    string
	Type       Type
	Timeout    int
	Location   Location
	Closable   bool
	Persistent bool
}

type State struct {
	Show       bool
	Message    string
	Color      string
	Icon       string
	Timeout    int
	Location   Location
	Closable   bool
	Persistent bool
}

// Notifier holds the single visible notification.
type Notifier struct {
	state State
}

func NewNotifier() *Notifier {
	return &Notifier{state: State{Timeout: DefaultTimeout, Location: LocationTopRight, Closable: true}}
}

// Show replaces the current notification. Zero-valued options fall back to
// an info toast in the top right corner with the default timeout.
func (n *Notifier) Show(opts Options) State {
	if opts.Type == "" {
		opts.Type = TypeInfo
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Location == "" {
		opts.Location = LocationTopRight
	}
	if opts.Persistent {
		opts.Closable = true
	}

	n.state = State{
		Show:       true,
		Message:    opts.Message,
		Color:      Color(opts.Type),
		Icon:       Icon(opts.Type),
		Timeout:    opts.Timeout,
		Location:   opts.Location,
		Closable:   opts.Closable,
		Persistent: opts.Persistent,
	}
	return n.state
}

func (n *Notifier) Success(message string) State {
	return n.Show(Options{Message: message, Type: TypeSuccess, Closable: true})
}

func (n *Notifier) Error(message string) State {
	return n.Show(Options{Message: message, Type: TypeError, Closable: true, Timeout: 2 * DefaultTimeout})
}

func (n *Notifier) Warning(message string) State {
	return n.Show(Options{Message: message, Type: TypeWarning, Closable: true})
}

func (n *Notifier) Info(message string) State {
	return n.Show(Options{Message: message, Type: TypeInfo, Closable: true})
}

// Hide keeps the last message but marks it invisible.
func (n *Notifier) Hide() {
	n.state.Show = false
}

func (n *Notifier) Current() State {
	return n.state
}

// Color maps a type to its theme color.
func Color(t Type) string {
	switch t {
	case TypeSuccess:
		return "success"
	case TypeError:
		return "error"
	case TypeWarning:
		return "warning"
	default:
		return "info"
	}
}

// Icon is the emoji prefix used in chat replies.
func Icon(t Type) string {
	switch t {
	case TypeSuccess:
		return "✅"
	case TypeError:
		return "❌"
	case TypeWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// Text renders the state as a single chat line.
func (s State) Text() string {
	return s.Icon + " " + s.Message
}
