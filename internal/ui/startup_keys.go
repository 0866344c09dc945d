package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds simulated key presses to the model before the
// program starts. Each token mixes literal text and <Key> names, for example
// "fire<Down><CR>". A leading backslash makes the whole token literal.
func ApplyStartupKeys(m *Model, keys []string) {
	if m == nil {
		return
	}
	for _, msg := range ParseStartupKeys(keys) {
		if m.Done() {
			return
		}
		m.Update(msg)
	}
}

// ParseStartupKeys converts startup key tokens into key press messages.
// Unknown <Key> names are dropped.
func ParseStartupKeys(keys []string) []tea.KeyPressMsg {
	var msgs []tea.KeyPressMsg
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if literal, ok := strings.CutPrefix(token, `\`); ok {
			msgs = append(msgs, textKeys(literal)...)
			continue
		}
		for _, seg := range parseTokenSegments(token) {
			if !seg.isKey {
				msgs = append(msgs, textKeys(seg.text)...)
				continue
			}
			if msg, ok := keyMsgFromToken(seg.text); ok {
				msgs = append(msgs, msg)
			}
		}
	}
	return msgs
}

func textKeys(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits "<Tab>vi<CR>" into key and text segments. An
// unterminated "<" is literal text.
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for remaining != "" {
		start := strings.Index(remaining, "<")
		if start == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if start > 0 {
			segments = append(segments, tokenSegment{text: remaining[:start]})
		}
		end := strings.Index(remaining[start:], ">")
		if end == -1 {
			segments = append(segments, tokenSegment{text: remaining[start:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[start : start+end+1], isKey: true})
		remaining = remaining[start+end+1:]
	}
	return segments
}

// keyMsgFromToken parses a single <Key> token such as <Esc>, <CR>, <Tab>,
// <BS>, <Up>, <Down>, <Space> or a control chord like <C-n>.
func keyMsgFromToken(token string) (tea.KeyPressMsg, bool) {
	inner, ok := strings.CutPrefix(token, "<")
	if !ok {
		return tea.KeyPressMsg{}, false
	}
	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return tea.KeyPressMsg{}, false
	}
	switch strings.ToLower(inner) {
	case "esc", "escape", "c-[":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "cr", "enter", "return":
		return tea.KeyPressMsg{Code: tea.KeyEnter}, true
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}, true
	case "s-tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, true
	case "bs", "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}, true
	case "space":
		return tea.KeyPressMsg{Code: ' ', Text: " "}, true
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}, true
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}, true
	case "lt":
		return tea.KeyPressMsg{Code: '<', Text: "<"}, true
	}
	lower := strings.ToLower(inner)
	if chord, ok := strings.CutPrefix(lower, "c-"); ok && len([]rune(chord)) == 1 {
		return tea.KeyPressMsg{Code: []rune(chord)[0], Mod: tea.ModCtrl}, true
	}
	return tea.KeyPressMsg{}, false
}
