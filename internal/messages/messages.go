// Package messages holds the user-facing texts, keyed by locale.
package messages

import (
	"fmt"
	"strings"
)

// Locale selects the language of generated texts.
type Locale string

const (
	EN Locale = "en"
	JA Locale = "ja"
)

// ParseLocale falls back to EN for anything it does not know.
func ParseLocale(s string) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case JA:
		return JA
	default:
		return EN
	}
}

// Text is a message available in every supported locale.
type Text struct {
	EN string
	JA string
}

// In returns the text for l.
func (t Text) In(l Locale) string {
	if l == JA && t.JA != "" {
		return t.JA
	}
	return t.EN
}

var (
	MaintenanceTitle = Text{EN: "Under Maintenance", JA: "メンテナンス中"}

	SendLoggerError = Text{EN: "Send Logger Error", JA: "ログ送信エラー"}
	StopSubmission  = Text{EN: "Stop Submission", JA: "送信中止"}
	GuildMissing    = Text{
		EN: `"Guild" is missing, so I stopped submitting`,
		JA: `"Guild" が指定されていないため送信を中止しました`,
	}

	UserIsBot = Text{
		EN: "The user who fired the event was a Bot, so the process was aborted",
		JA: "イベントを発生させたユーザがBotだったので処理を中止しました",
	}

	Unknown = Text{
		EN: "An error of unknown cause has occurred",
		JA: "原因不明のエラーが発生しました",
	}

	GuildOnly = Text{
		EN: "This command can only be used in a server",
		JA: "このコマンドはサーバー内でのみ使用できます",
	}
	AdminOnly = Text{
		EN: "You need the Administrator permission to run this command",
		JA: "このコマンドの実行には管理者権限が必要です",
	}

	MaintenanceToggled = Text{EN: "Maintenance Toggled", JA: "メンテナンス切替"}
	MaintenanceStatus  = Text{EN: "Maintenance Status", JA: "メンテナンス状況"}
	NothingSuspended   = Text{EN: "Nothing is suspended", JA: "停止中の項目はありません"}
	CommandsRegistered = Text{EN: "Commands Registered", JA: "コマンド登録完了"}
	RegisterFailed     = Text{EN: "Command Registration Failed", JA: "コマンド登録失敗"}
)

// Toggled describes a suspension change. action may be empty.
func Toggled(event, action string, suspended bool) Text {
	state := Text{EN: "resumed", JA: "再開"}
	if suspended {
		state = Text{EN: "suspended", JA: "停止"}
	}
	if action != "" {
		return Text{
			EN: fmt.Sprintf("%q of %q %s", action, event, state.EN),
			JA: fmt.Sprintf("%qの%qを%sしました", event, action, state.JA),
		}
	}
	return Text{
		EN: fmt.Sprintf("%q %s", event, state.EN),
		JA: fmt.Sprintf("%qを%sしました", event, state.JA),
	}
}

// Maintenance builds the "under maintenance" notice. action may be empty, in which case
// the notice covers the whole event.
func Maintenance(event, action string) Text {
	if action != "" {
		return Text{
			EN: fmt.Sprintf("The %q set for the %q are currently under maintenance", action, event),
			JA: fmt.Sprintf("%qに設定されている%qは現在メンテナンス中です", event, action),
		}
	}
	return Text{
		EN: fmt.Sprintf("The %q is currently under maintenance", event),
		JA: fmt.Sprintf("%qは現在メンテナンス中です", event),
	}
}
