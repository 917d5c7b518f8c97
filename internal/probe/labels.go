package probe

import (
	"errors"
	"fmt"
)

// Label identifies one electrode segment
type Label struct {
	Text   string
	HasGap bool
	// Slot is the vertical position index inside the assembly
	Slot int
}

// DefaultLabels returns the four electrodes of a directional lead
func DefaultLabels() []Label {
	return []Label{
		{Text: "1", HasGap: false, Slot: 0},
		{Text: "2A", HasGap: true, Slot: 1},
		{Text: "3A", HasGap: true, Slot: 2},
		{Text: "4", HasGap: false, Slot: 3},
	}
}

// ValidateLabels checks that labels are non-empty with unique slots
func ValidateLabels(labels []Label) error {
	if len(labels) == 0 {
		return errors.New("no labels")
	}
	slots := make(map[int]string, len(labels))
	for i, l := range labels {
		if l.Text == "" {
			return fmt.Errorf("label %d: empty text", i)
		}
		if l.Slot < 0 {
			return fmt.Errorf("label %q: negative slot %d", l.Text, l.Slot)
		}
		if other, ok := slots[l.Slot]; ok {
			return fmt.Errorf("label %q: slot %d already used by %q", l.Text, l.Slot, other)
		}
		slots[l.Slot] = l.Text
	}
	return nil
}
