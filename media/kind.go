package media

import (
	"fmt"
	"strings"
)

// Kind is a logical asset category.
type Kind int

const (
	KindTheme Kind = iota
	KindWheel
	KindSpecial
	KindVideo
	KindComponent
	KindFrontend
)

var kindNames = [...]string{
	KindTheme:     "theme",
	KindWheel:     "wheel",
	KindSpecial:   "special",
	KindVideo:     "video",
	KindComponent: "component",
	KindFrontend:  "frontend",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a kind name such as "wheel" to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("media: unknown asset kind %q", s)
}

// extensions lists the file extensions tried for a kind, in preference order.
func (k Kind) extensions() []string {
	switch k {
	case KindTheme:
		return []string{".zip"}
	case KindWheel, KindFrontend:
		return []string{".png"}
	case KindSpecial:
		return []string{".swf", ".png"}
	case KindVideo:
		return []string{".flv", ".mp4"}
	}
	return nil
}
