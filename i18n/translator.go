// Package i18n localizes violation code messages for user-facing surfaces
// such as the CLI.
package i18n

// Translator retrieves localized messages for violation codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "allowed").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "missing_required":
			return "必須フィールドが不足しています"
		case "type_mismatch":
			return "型が不正です"
		case "out_of_range":
			return "数値が範囲外です"
		case "not_in_enum":
			return "許可されていない値です"
		case "empty_string":
			return "空文字は許可されていません"
		case "max_depth_exceeded":
			return "ネストが深すぎます"
		}
	default: // "en"
		switch code {
		case "missing_required":
			return "required field missing"
		case "type_mismatch":
			return "type mismatch"
		case "out_of_range":
			return "value out of range"
		case "not_in_enum":
			return "value not in enum"
		case "empty_string":
			return "empty string not allowed"
		case "max_depth_exceeded":
			return "nesting too deep"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
