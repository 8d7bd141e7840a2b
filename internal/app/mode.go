package app

import "win98todo/internal/easteregg"

// ModeKind names the single overlay or menu the window shows.
type ModeKind int

const (
	ModeNone ModeKind = iota
	ModeFileMenu
	ModeEditMenu
	ModeViewMenu
	ModeAbout
	ModeCalculator
	ModeNews
	ModeEasterEgg
)

func (k ModeKind) String() string {
	switch k {
	case ModeFileMenu:
		return "file-menu"
	case ModeEditMenu:
		return "edit-menu"
	case ModeViewMenu:
		return "view-menu"
	case ModeAbout:
		return "about"
	case ModeCalculator:
		return "calculator"
	case ModeNews:
		return "news"
	case ModeEasterEgg:
		return "easter-egg"
	}
	return "none"
}

// Mode is the UI mode. Reveal is set only when Kind is ModeEasterEgg.
type Mode struct {
	Kind   ModeKind
	Reveal easteregg.Kind
}

// IsMenu reports whether a drop-down menu is open.
func (m Mode) IsMenu() bool {
	switch m.Kind {
	case ModeFileMenu, ModeEditMenu, ModeViewMenu:
		return true
	}
	return false
}

func (m Mode) String() string {
	if m.Kind == ModeEasterEgg {
		return m.Kind.String() + "(" + m.Reveal.String() + ")"
	}
	return m.Kind.String()
}

func easterEgg(k easteregg.Kind) Mode {
	return Mode{Kind: ModeEasterEgg, Reveal: k}
}
