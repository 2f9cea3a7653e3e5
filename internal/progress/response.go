package progress

import (
	"encoding/json"
	"strings"
)

// Response is a submitted answer. Single, judge and blank questions
// carry free text; multiple-choice carries an ordered letter sequence.
// On the wire the two shapes are a JSON string and a JSON array, and
// both must round-trip so exports stay compatible across devices.
type Response struct {
	Text    string
	Letters []string
	Multi   bool
}

// TextResponse builds a Response for single/judge/blank questions.
func TextResponse(text string) Response {
	return Response{Text: text}
}

// LetterResponse builds a Response for multiple-choice questions.
func LetterResponse(letters ...string) Response {
	if letters == nil {
		letters = []string{}
	}
	return Response{Letters: letters, Multi: true}
}

// String renders the response for display: the raw text, or the
// letters joined ("AC").
func (r Response) String() string {
	if r.Multi {
		return strings.Join(r.Letters, "")
	}
	return r.Text
}

// MarshalJSON writes a string or an array depending on the variant.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Multi {
		letters := r.Letters
		if letters == nil {
			letters = []string{}
		}
		return json.Marshal(letters)
	}
	return json.Marshal(r.Text)
}

// UnmarshalJSON accepts either shape. Anything else decodes to an
// empty response rather than failing the whole state.
func (r *Response) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Response{Text: s}
		return nil
	}
	var letters []string
	if err := json.Unmarshal(data, &letters); err == nil {
		*r = Response{Letters: letters, Multi: true}
		return nil
	}
	*r = Response{}
	return nil
}
