package notifier

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/mannyandcelesti/rsvp-api/internal/models"
)

// DiscordNotifier posts admin alerts to a channel the couple watches.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyRSVP(ev Event, r models.RSVP, isUpdate bool) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	action := "New"
	if isUpdate {
		action = "Updated"
	}

	status := fmt.Sprintf("attending with a party of %d 🎉", r.GuestCount)
	if r.Attending != models.AttendingYes {
		status = "declined 😢"
	}

	guestStr := ""
	if len(r.Guests) > 0 {
		names := make([]string, len(r.Guests))
		for i, g := range r.Guests {
			names[i] = g.Name
		}
		guestStr = fmt.Sprintf("\n**Party:** %s", strings.Join(names, ", "))
	}

	message := fmt.Sprintf("💌 **%s %s RSVP**\n**Name:** %s\n**Email:** %s\n**Phone:** %s\n**Status:** %s%s",
		action,
		ev.Label,
		r.Name,
		r.Email,
		r.Phone,
		status,
		guestStr,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	return err
}
