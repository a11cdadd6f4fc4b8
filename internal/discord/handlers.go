package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-warden/internal/events"
	"github.com/keshon/server-warden/internal/logger"
	"github.com/keshon/server-warden/internal/maintenance"
	"github.com/keshon/server-warden/internal/messages"
)

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	defer b.guard(events.Ready)
	if r == nil || r.User == nil {
		return
	}
	if b.gate.Blocked(maintenance.Bare(events.Ready)) {
		return
	}
	if b.gate.Blocked(maintenance.ForAction(events.ReadyRegisterCommands, b.gateOptions(r.User, b.opts.GuildID))) {
		return
	}

	if err := b.registerCommands(s, r.User.ID); err != nil {
		b.log.Error(logger.ActorFromUser(r.User), logger.Options{
			Title:   messages.RegisterFailed.In(b.locale()),
			Status:  logger.LevelError,
			Event:   events.Ready,
			Action:  events.ReadyRegisterCommands,
			Message: err.Error(),
		})
		return
	}
	b.handled(events.ReadyRegisterCommands)

	entry := logger.Options{
		Title:   messages.CommandsRegistered.In(b.locale()),
		Status:  logger.LevelSuccess,
		Event:   events.Ready,
		Action:  events.ReadyRegisterCommands,
		Message: r.User.Username + " is running",
	}
	if b.opts.Mirror {
		entry.Delivery = &logger.Delivery{GuildID: b.opts.GuildID}
	}
	b.log.Success(logger.ActorFromUser(r.User), entry)
}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	defer b.guard(events.GuildMemberAdd)
	if m == nil || m.Member == nil || m.User == nil {
		return
	}
	if m.User.Bot {
		b.skipBot(events.GuildMemberAdd, m.User)
		return
	}
	opts := b.gateOptions(m.User, m.GuildID)
	if b.gate.Blocked(maintenance.ForEvent(events.GuildMemberAdd, opts)) {
		return
	}
	if b.gate.Blocked(maintenance.ForAction(events.GuildMemberAddWelcome, opts)) {
		return
	}
	b.handled(events.GuildMemberAddWelcome)
}

func (b *Bot) onGuildMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	defer b.guard(events.GuildMemberUpdate)
	if m == nil || m.Member == nil || m.User == nil {
		return
	}
	if m.User.Bot {
		b.skipBot(events.GuildMemberUpdate, m.User)
		return
	}
	opts := b.gateOptions(m.User, m.GuildID)
	if b.gate.Blocked(maintenance.ForEvent(events.GuildMemberUpdate, opts)) {
		return
	}
	if b.gate.Blocked(maintenance.ForAction(events.GuildMemberUpdateRoles, opts)) {
		return
	}
	b.handled(events.GuildMemberUpdateRoles)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer b.guard(events.MessageCreate)
	if m == nil || m.Message == nil || m.Author == nil {
		return
	}
	if m.Author.Bot || isSelf(s, m.Author.ID) {
		b.skipBot(events.MessageCreate, m.Author)
		return
	}
	opts := b.gateOptions(m.Author, m.GuildID)
	if b.gate.Blocked(maintenance.ForEvent(events.MessageCreate, opts)) {
		return
	}
	if b.gate.Blocked(maintenance.ForAction(events.MessageCreateReply, opts)) {
		return
	}
	b.handled(events.MessageCreateReply)
}

// onMessageDelete usually gets a partial payload without an author, so it is gated
// without attribution.
func (b *Bot) onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	defer b.guard(events.MessageDelete)
	if m == nil || m.Message == nil {
		return
	}
	if b.gate.Blocked(maintenance.Bare(events.MessageDelete)) {
		return
	}

	var author *discordgo.User
	if m.BeforeDelete != nil {
		author = m.BeforeDelete.Author
	}
	if b.gate.Blocked(maintenance.ForAction(events.MessageDeleteAudit, b.gateOptions(author, m.GuildID))) {
		return
	}
	b.handled(events.MessageDeleteAudit)
}

func reactionUser(r *discordgo.MessageReaction, member *discordgo.Member) *discordgo.User {
	if member != nil && member.User != nil {
		return member.User
	}
	if r.UserID == "" {
		return nil
	}
	return &discordgo.User{ID: r.UserID}
}

func (b *Bot) onMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	defer b.guard(events.MessageReactionAdd)
	if r == nil || r.MessageReaction == nil {
		return
	}
	u := reactionUser(r.MessageReaction, r.Member)
	if u == nil {
		return
	}
	if u.Bot || isSelf(s, u.ID) {
		b.skipBot(events.MessageReactionAdd, u)
		return
	}
	opts := b.gateOptions(u, r.GuildID)
	if b.gate.Blocked(maintenance.ForEvent(events.MessageReactionAdd, opts)) {
		return
	}
	if b.gate.Blocked(maintenance.ForAction(events.MessageReactionAddRole, opts)) {
		return
	}
	b.handled(events.MessageReactionAddRole)
}

func (b *Bot) onMessageReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	defer b.guard(events.MessageReactionRemove)
	if r == nil || r.MessageReaction == nil {
		return
	}
	u := reactionUser(r.MessageReaction, nil)
	if u == nil {
		return
	}
	if isSelf(s, u.ID) {
		b.skipBot(events.MessageReactionRemove, u)
		return
	}
	opts := b.gateOptions(u, r.GuildID)
	if b.gate.Blocked(maintenance.ForEvent(events.MessageReactionRemove, opts)) {
		return
	}
	if b.gate.Blocked(maintenance.ForAction(events.MessageReactionRemoveRole, opts)) {
		return
	}
	b.handled(events.MessageReactionRemoveRole)
}

func scheduledEventUser(e *discordgo.GuildScheduledEvent) *discordgo.User {
	if e.Creator != nil {
		return e.Creator
	}
	if e.CreatorID == "" {
		return nil
	}
	return &discordgo.User{ID: e.CreatorID}
}

// scheduledEvent gates the three scheduled event handlers, which share a shape.
func (b *Bot) scheduledEvent(event events.Name, action events.Action, e *discordgo.GuildScheduledEvent) {
	if e == nil {
		return
	}
	opts := b.gateOptions(scheduledEventUser(e), e.GuildID)
	if b.gate.Blocked(maintenance.ForEvent(event, opts)) {
		return
	}
	if b.gate.Blocked(maintenance.ForAction(action, opts)) {
		return
	}
	b.handled(action)
}

func (b *Bot) onGuildScheduledEventCreate(s *discordgo.Session, e *discordgo.GuildScheduledEventCreate) {
	defer b.guard(events.GuildScheduledEventCreate)
	if e == nil {
		return
	}
	b.scheduledEvent(events.GuildScheduledEventCreate, events.ScheduledEventCreateNotify, e.GuildScheduledEvent)
}

func (b *Bot) onGuildScheduledEventUpdate(s *discordgo.Session, e *discordgo.GuildScheduledEventUpdate) {
	defer b.guard(events.GuildScheduledEventUpdate)
	if e == nil {
		return
	}
	b.scheduledEvent(events.GuildScheduledEventUpdate, events.ScheduledEventUpdateNotify, e.GuildScheduledEvent)
}

func (b *Bot) onGuildScheduledEventDelete(s *discordgo.Session, e *discordgo.GuildScheduledEventDelete) {
	defer b.guard(events.GuildScheduledEventDelete)
	if e == nil {
		return
	}
	b.scheduledEvent(events.GuildScheduledEventDelete, events.ScheduledEventDeleteNotify, e.GuildScheduledEvent)
}
