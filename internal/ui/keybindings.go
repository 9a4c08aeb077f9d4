package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

// isQuit matches the quit keys usable while no text field has focus.
func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isForceQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter")
}

func isSpace(msg tea.KeyMsg) bool {
	return isKey(msg, " ")
}

func isSave(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+s")
}

func isNextField(msg tea.KeyMsg) bool {
	return isKey(msg, "tab", "down")
}

func isPrevField(msg tea.KeyMsg) bool {
	return isKey(msg, "shift+tab", "up")
}

func isConfirm(msg tea.KeyMsg) bool {
	return isKey(msg, "y", "Y")
}

func isDeny(msg tea.KeyMsg) bool {
	return isKey(msg, "n", "N") || isBack(msg)
}

// tabIndexForKey maps "1".."9" to a tab. With onForm set only the alt
// variants count, so digits can still be typed into fields.
func tabIndexForKey(msg tea.KeyMsg, onForm bool) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	if onForm && !msg.Alt {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	idx := int(r - '1')
	if idx >= tabCount {
		return 0, false
	}
	return idx, true
}
