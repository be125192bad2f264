package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is a recorded answer: an integer for scale questions, a string
// otherwise. The zero Value is empty.
type Value struct {
	num   int
	str   string
	isNum bool
}

// ScaleValue returns a numeric answer.
func ScaleValue(n int) Value {
	return Value{num: n, isNum: true}
}

// TextValue returns a string answer.
func TextValue(s string) Value {
	return Value{str: s}
}

// Int returns the numeric answer, if v holds one.
func (v Value) Int() (int, bool) {
	return v.num, v.isNum
}

// Empty reports whether v holds no answer. An empty string counts as empty;
// a numeric zero does not.
func (v Value) Empty() bool {
	return !v.isNum && v.str == ""
}

func (v Value) String() string {
	if v.isNum {
		return strconv.Itoa(v.num)
	}
	return v.str
}

// Score coerces v to an integer the way a lenient integer parse would:
// numbers score as themselves, strings by their leading integer, and
// anything else scores zero.
func (v Value) Score() int {
	if v.isNum {
		return v.num
	}
	return leadingInt(v.str)
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return []byte(strconv.Itoa(v.num)), nil
	}
	return json.Marshal(v.str)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer must be a string or integer: %w", err)
	}
	*v = ScaleValue(n)
	return nil
}

// Coerce converts raw user input into a Value for a question of type t.
// Scale answers must be integers in [ScaleMin, ScaleMax]; yes/no answers
// are normalized to "Yes" or "No"; text answers must be non-blank.
func Coerce(t QuestionType, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch t {
	case TypeScale:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("scale answer %q is not a number", raw)
		}
		if n < ScaleMin || n > ScaleMax {
			return Value{}, fmt.Errorf("scale answer %d out of range %d-%d", n, ScaleMin, ScaleMax)
		}
		return ScaleValue(n), nil
	case TypeYesNo:
		switch strings.ToLower(raw) {
		case "yes", "y":
			return TextValue("Yes"), nil
		case "no", "n":
			return TextValue("No"), nil
		}
		return Value{}, fmt.Errorf("answer %q must be Yes or No", raw)
	default:
		if raw == "" {
			return Value{}, fmt.Errorf("answer must not be empty")
		}
		return TextValue(raw), nil
	}
}
