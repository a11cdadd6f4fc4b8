package logger

import (
	"fmt"
	"strings"

	"github.com/keshon/server-warden/pkg/util"
)

const (
	divider     = "----------------------------------"
	datetimeTpl = "YYYY/MM/DD/hh:mm:ss"
)

// emoji is chosen by the explicit status only, not by the level of the call.
func emoji(status Level) string {
	switch status {
	case LevelSuccess:
		return "✅"
	case LevelWarning:
		return "⚠️"
	case LevelError:
		return "🚨"
	default:
		return ""
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type fields struct {
	title, status, event, action, agent, message, datetime string
}

func (l *Logger) fields(level Level, opts Options) fields {
	title := opts.Title
	if title == "" {
		title = "No Title"
	}
	var action string
	if opts.Action != nil {
		action = opts.Action.String()
	}
	return fields{
		title:    emoji(opts.Status) + title,
		status:   effective(level, opts).String(),
		event:    orDash(string(opts.Event)),
		action:   orDash(action),
		agent:    orDash(opts.Agent),
		message:  orDash(opts.Message),
		datetime: util.FormatDateTpl(opts.Datetime.In(l.loc), datetimeTpl),
	}
}

// renderLocal builds the block written to the local sink.
func (l *Logger) renderLocal(level Level, actor Actor, opts Options) string {
	f := l.fields(level, opts)
	return strings.Join([]string{
		divider,
		f.title,
		"ActionUser: " + actor.ID,
		"ActionUserTag: " + orDash(actor.Tag),
		"Status: " + f.status,
		"EventName: " + f.event,
		"ActionName: " + f.action,
		"Agent: " + f.agent,
		"Message: " + f.message,
		"Datetime: " + f.datetime,
	}, "\n")
}

func inline(label string) string { return "`" + label + "`" }

// renderExternal builds the Discord message body: labels are inline code, the actor is a
// mention and the tag line is omitted.
func (l *Logger) renderExternal(level Level, actor Actor, opts Options) string {
	f := l.fields(level, opts)
	return strings.Join([]string{
		divider,
		f.title,
		fmt.Sprintf("%s: <@%s>", inline("ActionUser"), actor.ID),
		inline("Status") + ": " + f.status,
		inline("EventName") + ": " + f.event,
		inline("ActionName") + ": " + f.action,
		inline("Agent") + ": " + f.agent,
		inline("Message") + ": " + f.message,
		inline("Datetime") + ": " + f.datetime,
	}, "\n")
}
