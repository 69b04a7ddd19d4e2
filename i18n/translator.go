// Package i18n provides human labels for configuration error codes and the
// few fixed phrases the command line tool prints.
package i18n

import "strings"

// Translator retrieves localized messages for error codes.
// data provides optional values to embed in the message (for example,
// "layer" or "file").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"unknown_key":        "unknown key",
		"missing_key":        "missing key",
		"invalid_type":       "invalid type",
		"invalid_value":      "invalid value",
		"transformation":     "transformation failed",
		"context_extraction": "context extraction failed",
		"in_layer":           "in layer {layer}",
		"valid":              "{file} is valid",
		"invalid":            "{file} is invalid ({count} errors)",
		"not_readable":       "configuration could not be read",
	},
	"ja": {
		"unknown_key":        "未知のキーです",
		"missing_key":        "必須キーが不足しています",
		"invalid_type":       "型が不正です",
		"invalid_value":      "値が不正です",
		"transformation":     "変換に失敗しました",
		"context_extraction": "コンテキストの抽出に失敗しました",
		"in_layer":           "レイヤー {layer}",
		"valid":              "{file} は有効です",
		"invalid":            "{file} は無効です (エラー {count} 件)",
		"not_readable":       "設定を読み取れませんでした",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
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
