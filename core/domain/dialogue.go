// ABOUTME: Dialogue script model and the parser that turns raw generated text into lines
// ABOUTME: Lines that do not match "<Speaker>: <text>" are dropped, never fatal

package domain

import (
	"regexp"
	"strings"
)

// Speaker identifies one of the two podcast hosts
type Speaker string

const (
	SpeakerA Speaker = "A"
	SpeakerB Speaker = "B"
)

// DialogueLine is a single spoken turn of the script
type DialogueLine struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Tolerates markdown emphasis and an optional "Host" prefix around the speaker tag,
// e.g. "**A:** text" or "Host B: text".
var dialogueLinePattern = regexp.MustCompile(`^[*_\s]*(?:(?i:host|speaker)\s+)?([AB])[*_\s]*:[*_\s]*(.+?)\s*$`)

// ParseDialogue splits a raw script into dialogue lines. It returns the parsed
// lines in order together with the number of non-blank lines that were dropped.
func ParseDialogue(script string) ([]DialogueLine, int) {
	var lines []DialogueLine
	dropped := 0

	for _, raw := range strings.Split(script, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		m := dialogueLinePattern.FindStringSubmatch(raw)
		if m == nil {
			dropped++
			continue
		}

		text := strings.TrimSpace(strings.Trim(m[2], "*_"))
		if text == "" {
			dropped++
			continue
		}

		lines = append(lines, DialogueLine{
			Speaker: Speaker(m[1]),
			Text:    text,
		})
	}

	return lines, dropped
}
